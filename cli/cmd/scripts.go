package cmd

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vippsas/sqlscript"
	"github.com/vippsas/sqlscript/internal/mapfs"
	"github.com/vippsas/sqlscript/sqlparser"
)

// scriptsFS is the files given on the command line, or the whole
// directory if none are given
func scriptsFS(files []string) (fs.FS, error) {
	if len(files) == 0 {
		return os.DirFS(directory), nil
	}
	m := make(mapfs.MapFS)
	for _, f := range files {
		if !filepath.IsAbs(f) {
			f = filepath.Join(directory, f)
		}
		if _, err := os.Stat(f); err != nil {
			return nil, err
		}
		if err := m.Add(f); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func loadScripts(rules sqlparser.Rules, variables map[string]string, files []string, partialParseResults bool) (sqlscript.Scripts, error) {
	fsys, err := scriptsFS(files)
	if err != nil {
		return nil, err
	}
	return sqlscript.Include(
		sqlscript.Options{
			Rules:               rules,
			Variables:           variables,
			PartialParseResults: partialParseResults,
		},
		fsys,
	)
}
