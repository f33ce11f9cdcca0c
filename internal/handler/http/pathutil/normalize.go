package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization.
var pathPatterns = []*PathPattern{
	// Entry routes with IDs (trailing slash already stripped)
	{Pattern: regexp.MustCompile(`^/edit/\d+$`), Template: "/edit/:id"},
	{Pattern: regexp.MustCompile(`^/delete/\d+$`), Template: "/delete/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /edit/123/) to template format (e.g., /edit/:id).
// Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/edit/123/")       // "/edit/:id"
//	NormalizePath("/delete/456/")     // "/delete/:id"
//	NormalizePath("/home/")           // "/home" (slash stripped, no template)
//	NormalizePath("/health")          // "/health" (unchanged)
//	NormalizePath("/metrics")         // "/metrics" (unchanged)
//	NormalizePath("/unknown/123")     // "/unknown/123" (no match, return original)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/edit/123/?x=1")   // "/edit/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// No match found, return original path. Static paths like /health and
	// /metrics pass through unchanged.
	return path
}
