package sqlgen

import (
	"fmt"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"
	"go.uber.org/zap"

	"github.com/askdata-labs/askdata-engine/pkg/logging"
)

// dangerousKeywords are scanned in every candidate. Only the read-only
// subset causes rejection, and only when read-only mode is enabled; the
// rest are logged as advisory findings.
var dangerousKeywords = []string{
	"DROP", "DELETE", "INSERT", "UPDATE", "CREATE", "ALTER",
	"TRUNCATE", "EXEC", "EXECUTE", "UNION", "SCRIPT", "JAVASCRIPT",
}

var readOnlyForbidden = map[string]bool{
	"DROP": true, "DELETE": true, "INSERT": true,
	"UPDATE": true, "TRUNCATE": true, "ALTER": true,
}

// Validator applies the static safety policy to extracted SQL candidates.
type Validator struct {
	logger *zap.Logger
}

// NewValidator creates a Validator.
func NewValidator(logger *zap.Logger) *Validator {
	return &Validator{logger: logger.Named("validator")}
}

// Validate checks a candidate against the safety policy and returns the
// rejection reason when it fails. Checks run in order: forbidden keywords
// (read-only mode only), SELECT presence, multiple-statement detection.
// Keyword matching is substring-based on the uppercased text, so a column
// named "updated_at" trips the UPDATE rule; that strictness is accepted for
// a safety gate.
func (v *Validator) Validate(sqlText string, readOnly bool) (bool, string) {
	upper := strings.ToUpper(sqlText)

	for _, keyword := range dangerousKeywords {
		if !strings.Contains(upper, keyword) {
			continue
		}
		if readOnly && readOnlyForbidden[keyword] {
			return false, fmt.Sprintf("Query contains forbidden keyword: %s. Read-only mode is enabled.", keyword)
		}
		v.logger.Warn("sensitive keyword in candidate",
			zap.String("keyword", keyword),
			zap.String("query", logging.SanitizeQuery(sqlText)))
	}

	if !strings.Contains(upper, "SELECT") {
		return false, "Query must start with SELECT"
	}

	if strings.Contains(upper, ";") && len(strings.Split(upper, ";")) > 2 {
		return false, "Multiple SQL statements not allowed"
	}

	// Advisory only: model output is not user input, but a fingerprint hit
	// is worth a log line.
	if found, fingerprint := libinjection.IsSQLi(sqlText); found {
		v.logger.Warn("injection fingerprint in candidate",
			zap.String("fingerprint", string(fingerprint)),
			zap.String("query", logging.SanitizeQuery(sqlText)))
	}

	return true, ""
}
