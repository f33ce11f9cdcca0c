package respond

import (
	"regexp"
)

// Database passwords embedded in a DSN must never reach logs or clients.
var dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	return dbPasswordPattern.ReplaceAllString(err.Error(), "://$1:****@")
}
