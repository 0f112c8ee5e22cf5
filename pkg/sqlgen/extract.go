package sqlgen

import (
	"regexp"
	"strings"
)

var (
	sqlFenceOpen  = regexp.MustCompile("```sql\\s*")
	sqlFenceClose = regexp.MustCompile("```\\s*$")
)

// ExtractSQL normalizes raw model output into a bare SQL statement: markdown
// code fences are stripped, comment-only lines (--, #, /*) and blank lines
// are dropped, and the remaining lines keep their original line breaks.
func ExtractSQL(response string) string {
	sqlText := sqlFenceOpen.ReplaceAllString(response, "")
	sqlText = sqlFenceClose.ReplaceAllString(sqlText, "")
	sqlText = strings.TrimSpace(sqlText)

	var kept []string
	for _, line := range strings.Split(sqlText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" ||
			strings.HasPrefix(trimmed, "--") ||
			strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "/*") {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}
