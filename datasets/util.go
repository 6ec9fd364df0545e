package datasets

import (
	"bufio"
	"io"
	"strings"
)

const maxLineBytes = 4 * 1024 * 1024

// readRows calls fn with every non-blank physical line of r split on commas,
// along with its 1-based line number. Quotes carry no meaning here: a '"'
// never spans lines or protects a comma, so one line is always one row.
func readRows(r io.Reader, fn func(line int, record []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if err := fn(lineNo, strings.Split(line, ",")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// joinTail rebuilds a text field that was split on commas.
func joinTail(record []string, from int) string {
	return strings.Join(record[from:], ",")
}

func stripQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// window returns s[lo:hi] with both bounds clamped to len(s).
func window(s []string, lo, hi int) []string {
	if lo > len(s) {
		lo = len(s)
	}
	if hi > len(s) {
		hi = len(s)
	}
	if hi < lo {
		hi = lo
	}
	return s[lo:hi]
}
