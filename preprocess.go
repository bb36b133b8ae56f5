package sqlscript

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"

	"github.com/vippsas/sqlscript/sqlparser"
)

// Checksum identifies the contents of a script, so that a changed script
// can be told apart from one that has already been run
func Checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

type lineNumberCorrection struct {
	inputLineNumber, extraLinesInOutput int
}

// Batch is a statement ready to be sent to the database, with variables
// replaced.
type Batch struct {
	StartPos  sqlparser.Pos
	Delimiter string
	Lines     string

	// lineNumberCorrections contains data that helps us map from errors in the `Lines`
	// SQL result and back to the original source file (pointed at by StartPos).
	// See comments in RelativeLineNumberInInput()
	lineNumberCorrections []lineNumberCorrection
}

// LineNumberInInput transforms an error line number when executing the batch,
// into an absolute line number in StartPos.File
func (b Batch) LineNumberInInput(outputline int) int {
	return b.RelativeLineNumberInInput(outputline) + b.StartPos.Line - 1
}

// RelativeLineNumberInInput maps a line number from the output of preprocessing
// (`outputline)` to a line number in the input of the pre-processing.
// PS: StartPos must be considered *in addition* to this transform.
func (b Batch) RelativeLineNumberInInput(outputline int) int {
	// See testcase for example
	// lineNumberCorrections has the number of extra lines each input line
	// ended up consuming in the output. Most lines are not mentioned; these
	// are the one that mapped 1:1, no extra lines.

	totalExtraLines := 0
	for _, c := range b.lineNumberCorrections {
		// refer to `c` as a "checkpoint" ... it's a point in the line number series
		checkpointLineNumberInOutput := c.inputLineNumber + totalExtraLines
		distanceToCheckpoint := outputline - checkpointLineNumberInOutput
		if distanceToCheckpoint < c.extraLinesInOutput {
			if distanceToCheckpoint < 0 {
				distanceToCheckpoint = 0
			}
			return outputline - totalExtraLines - distanceToCheckpoint
		}
		totalExtraLines += c.extraLinesInOutput
	}
	return outputline - totalExtraLines
}

var variableRegexp = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// lookup does case-insensitive matching of variable names
func lookup(vars map[string]string) func(name string) (string, bool) {
	folded := make(map[string]string, len(vars))
	for k, v := range vars {
		folded[strings.ToLower(k)] = v
	}
	return func(name string) (string, bool) {
		v, ok := folded[strings.ToLower(name)]
		return v, ok
	}
}

// Patch replaces {{Name}} tokens in sql with the value of the variable
// Name. Names are matched ignoring case, and tokens naming an unknown
// variable are left as they are.
func Patch(sql string, vars map[string]string) string {
	return PatchStatement(sqlparser.Statement{Value: sql}, vars).Lines
}

// PatchStatement does variable replacement on a statement. A value spanning
// several lines shifts the line numbers of the rest of the statement; the
// Batch keeps track of that so errors can be reported at the right line.
func PatchStatement(stmt sqlparser.Statement, vars map[string]string) (result Batch) {
	result.StartPos = stmt.Start
	result.Delimiter = stmt.Delimiter
	if len(vars) == 0 {
		result.Lines = stmt.Value
		return
	}
	get := lookup(vars)

	var w strings.Builder
	extraLines := make(map[int]int)
	last := 0
	for _, m := range variableRegexp.FindAllStringSubmatchIndex(stmt.Value, -1) {
		value, ok := get(stmt.Value[m[2]:m[3]])
		if !ok {
			continue
		}
		w.WriteString(stmt.Value[last:m[0]])
		w.WriteString(value)
		last = m[1]

		if newlineCount := strings.Count(value, "\n"); newlineCount > 0 {
			relativeLine := strings.Count(stmt.Value[:m[0]], "\n") + 1
			extraLines[relativeLine] += newlineCount
		}
	}
	w.WriteString(stmt.Value[last:])
	result.Lines = w.String()

	for line, extra := range extraLines {
		result.lineNumberCorrections = append(result.lineNumberCorrections, lineNumberCorrection{line, extra})
	}
	sort.Slice(result.lineNumberCorrections, func(i, j int) bool {
		return result.lineNumberCorrections[i].inputLineNumber < result.lineNumberCorrections[j].inputLineNumber
	})
	return
}

// Patched returns the statements of the script as batches, with vars
// layered on top of the variables the script was loaded with
func (s Script) Patched(vars map[string]string) []Batch {
	merged := make(map[string]string, len(s.variables)+len(vars))
	for k, v := range s.variables {
		merged[strings.ToLower(k)] = v
	}
	for k, v := range vars {
		merged[strings.ToLower(k)] = v
	}
	result := make([]Batch, 0, len(s.Statements))
	for _, stmt := range s.Statements {
		result = append(result, PatchStatement(stmt, merged))
	}
	return result
}
