package http

import (
	"net/http"
	"strings"

	"calorietracker/pkg/security/csp"
)

// CSPConfig selects Content-Security-Policy headers per request path.
// HTML pages and the JSON API carry different policies: the rendered
// templates need inline styles, the API allows nothing at all.
type CSPConfig struct {
	// Enabled controls whether CSP headers are applied at all.
	Enabled bool

	// DefaultPolicy is applied when no path prefix matches.
	DefaultPolicy *csp.CSPBuilder

	// PathPolicies maps path prefixes to specific policies.
	// The longest matching prefix wins.
	PathPolicies map[string]*csp.CSPBuilder

	// ReportOnly switches to Content-Security-Policy-Report-Only,
	// reporting violations without enforcing the policy.
	ReportOnly bool
}

// CSP returns a middleware that sets a Content-Security-Policy header
// on every response, chosen per path via the config.
func CSP(config CSPConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			policy := config.selectPolicy(r.URL.Path)
			if policy == nil {
				next.ServeHTTP(w, r)
				return
			}

			if config.ReportOnly {
				policy = policy.ReportOnly(true)
			}

			value := policy.Build()
			if value == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(policy.HeaderName(), value)
			next.ServeHTTP(w, r)
		})
	}
}

// selectPolicy returns the policy whose prefix is the longest match for
// the path, falling back to DefaultPolicy.
func (c CSPConfig) selectPolicy(path string) *csp.CSPBuilder {
	longest := ""
	var matched *csp.CSPBuilder

	for prefix, policy := range c.PathPolicies {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(longest) {
			longest = prefix
			matched = policy
		}
	}

	if matched != nil {
		return matched
	}
	return c.DefaultPolicy
}
