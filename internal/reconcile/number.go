package reconcile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NNNNNNN-DD.AAAA.J.TR.OOOO with J fixed to 5 (labor justice).
var laborCaseNumber = regexp.MustCompile(`^\d{7}-\d{2}\.\d{4}\.5\.(\d{2})\.\d{4}$`)

// Normalize strips every non-digit character from a case number.
func Normalize(number string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
}

// ExtractTribunal returns the labor court code embedded in a formatted CNJ
// case number, e.g. "TRT3" for segment 03. Segment 00 is the TST. The second
// result is false when the input is not a labor-justice CNJ number.
func ExtractTribunal(formatted string) (string, bool) {
	m := laborCaseNumber.FindStringSubmatch(strings.TrimSpace(formatted))
	if m == nil {
		return "", false
	}

	code, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	if code == 0 {
		return "TST", true
	}
	return fmt.Sprintf("TRT%d", code), true
}
