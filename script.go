package sqlscript

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/vippsas/sqlscript/sqlparser"
)

// Options that affect file parsing etc; pass an empty struct to get
// default options.
type Options struct {
	// Rules select the dialect; the zero value is the generic dialect
	Rules sqlparser.Rules

	// Variables replace {{Name}} tokens when the scripts are run
	Variables map[string]string

	// if this is set, scripts that failed to parse are left out of the
	// result instead of failing the whole Include,
	// and it's up to the caller to know what one is doing..
	PartialParseResults bool
}

// Script is one parsed script file
type Script struct {
	File     sqlparser.FileRef
	Checksum string

	// Statements to execute, in order; delimiter redeclarations and
	// empty statements are already removed
	Statements []sqlparser.Statement

	variables map[string]string
}

type Scripts []Script

// Len is the total number of statements in all scripts
func (s Scripts) Len() (n int) {
	for _, script := range s {
		n += len(script.Statements)
	}
	return
}

// Load parses a single script
func Load(file sqlparser.FileRef, data []byte, opts Options) (Script, error) {
	statements, err := sqlparser.Parse(file, string(data), opts.Rules)
	if err != nil {
		return Script{}, err
	}
	return Script{
		File:       file,
		Checksum:   Checksum(data),
		Statements: statements,
		variables:  opts.Variables,
	}, nil
}

// Include loads every *.sql file in the given filesystems, e.g. SQL
// scripts included using the `embed` go feature. Scripts are returned
// filesystem by filesystem, and in lexical path order within each.
func Include(opts Options, fsys ...fs.FS) (result Scripts, err error) {
	var parseErrors []sqlparser.Error

	// We are being passed several *filesystems* here. It may be easy to pass in the same
	// directory twice but that should not be encouraged, so if we get the same hash from
	// two files, return an error.
	hashes := make(map[[32]byte]string)

	for fidx, f := range fsys {
		// WalkDir is in lexical order according to docs, so output should be stable
		err = fs.WalkDir(f, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			// Skip over any hidden directories; in particular .git
			if strings.HasPrefix(path, ".") && path != "." || strings.Contains(path, "/.") {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(strings.ToLower(path), ".sql") {
				return nil
			}

			buf, err := fs.ReadFile(f, path)
			if err != nil {
				return err
			}

			pathDesc := fmt.Sprintf("fs[%d]:%s", fidx, path)
			hash := sha256.Sum256(buf)
			if existingPathDesc, hashExists := hashes[hash]; hashExists {
				return fmt.Errorf("file %s has exact same contents as %s (possibly in different filesystems)",
					pathDesc, existingPathDesc)
			}
			hashes[hash] = pathDesc

			script, err := Load(sqlparser.FileRef(path), buf, opts)
			if err != nil {
				var perr sqlparser.Error
				if !errors.As(err, &perr) {
					return err
				}
				parseErrors = append(parseErrors, perr)
				return nil
			}
			result = append(result, script)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(parseErrors) > 0 && !opts.PartialParseResults {
		return nil, ScriptParseErrors{Errors: parseErrors}
	}
	return result, nil
}

func MustInclude(opts Options, fsys ...fs.FS) Scripts {
	result, err := Include(opts, fsys...)
	if err != nil {
		panic(err)
	}
	return result
}
