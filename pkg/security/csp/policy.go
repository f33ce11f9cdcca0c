// Package csp builds Content-Security-Policy header values.
//
// CSP is a security standard that helps prevent cross-site scripting (XSS),
// clickjacking, and other code injection attacks by specifying which sources
// are trusted for loading content.
package csp

import (
	"fmt"
	"strings"
)

// CSPBuilder provides a fluent interface for constructing Content-Security-Policy headers.
//
// Example Usage:
//
//	policy := NewCSPBuilder().
//	    DefaultSrc("'self'").
//	    StyleSrc("'self'", "'unsafe-inline'").
//	    Build()
//	// Returns: "default-src 'self'; style-src 'self' 'unsafe-inline'"
//
// Thread Safety: CSPBuilder is not thread-safe. Create separate instances for concurrent use.
type CSPBuilder struct {
	directives map[string][]string
	reportOnly bool
}

// NewCSPBuilder creates a new CSPBuilder with default empty directives.
func NewCSPBuilder() *CSPBuilder {
	return &CSPBuilder{
		directives: make(map[string][]string),
		reportOnly: false,
	}
}

// DefaultSrc sets the default-src directive.
//
// This directive serves as a fallback for other fetch directives.
// If a specific directive (like script-src) is not defined, the policy falls back to default-src.
//
// Common Source Values:
//   - "'self'": Allow resources from the same origin
//   - "'none'": Block all resources
//   - "'unsafe-inline'": Allow inline scripts/styles (not recommended)
//   - "https://example.com": Allow resources from specific domain
//   - "data:": Allow data: URIs
func (b *CSPBuilder) DefaultSrc(sources ...string) *CSPBuilder {
	b.directives["default-src"] = sources
	return b
}

// ScriptSrc sets the script-src directive.
//
// Controls which sources are allowed for JavaScript execution.
// This is one of the most important directives for preventing XSS attacks.
func (b *CSPBuilder) ScriptSrc(sources ...string) *CSPBuilder {
	b.directives["script-src"] = sources
	return b
}

// StyleSrc sets the style-src directive.
//
// Controls which sources are allowed for stylesheets (CSS).
func (b *CSPBuilder) StyleSrc(sources ...string) *CSPBuilder {
	b.directives["style-src"] = sources
	return b
}

// ImgSrc sets the img-src directive.
//
// Controls which sources are allowed for images.
func (b *CSPBuilder) ImgSrc(sources ...string) *CSPBuilder {
	b.directives["img-src"] = sources
	return b
}

// FontSrc sets the font-src directive.
//
// Controls which sources are allowed for fonts.
func (b *CSPBuilder) FontSrc(sources ...string) *CSPBuilder {
	b.directives["font-src"] = sources
	return b
}

// ConnectSrc sets the connect-src directive.
//
// Controls which URLs can be loaded using script interfaces (fetch,
// XMLHttpRequest, WebSocket, EventSource).
func (b *CSPBuilder) ConnectSrc(sources ...string) *CSPBuilder {
	b.directives["connect-src"] = sources
	return b
}

// FrameAncestors sets the frame-ancestors directive.
//
// Controls which sources can embed this page in <frame>, <iframe>, <object>,
// or <embed>. This helps prevent clickjacking attacks. "'none'" prevents all
// framing and is the recommended value for most applications.
func (b *CSPBuilder) FrameAncestors(sources ...string) *CSPBuilder {
	b.directives["frame-ancestors"] = sources
	return b
}

// FormAction sets the form-action directive.
//
// Controls which URLs can be used as the action of HTML form submissions.
func (b *CSPBuilder) FormAction(sources ...string) *CSPBuilder {
	b.directives["form-action"] = sources
	return b
}

// BaseUri sets the base-uri directive.
//
// Controls which URLs can be used in a document's <base> element.
// This prevents attackers from changing the base URL of relative URLs.
func (b *CSPBuilder) BaseUri(sources ...string) *CSPBuilder {
	b.directives["base-uri"] = sources
	return b
}

// ObjectSrc sets the object-src directive.
//
// Controls which sources are allowed for <object>, <embed>, and <applet>
// elements. It's recommended to set this to 'none' for security.
func (b *CSPBuilder) ObjectSrc(sources ...string) *CSPBuilder {
	b.directives["object-src"] = sources
	return b
}

// ReportOnly sets whether the policy should be in report-only mode.
//
// In report-only mode, violations are reported but not enforced.
// This is useful for testing CSP policies before enforcing them.
func (b *CSPBuilder) ReportOnly(enabled bool) *CSPBuilder {
	b.reportOnly = enabled
	return b
}

// Build generates the CSP header value string.
//
// Directives are joined with semicolons, and sources within each directive
// are space-separated.
//
// Example:
//
//	policy := NewCSPBuilder().
//	    DefaultSrc("'self'").
//	    StyleSrc("'self'", "'unsafe-inline'").
//	    Build()
//	// Returns: "default-src 'self'; style-src 'self' 'unsafe-inline'"
func (b *CSPBuilder) Build() string {
	if len(b.directives) == 0 {
		return ""
	}

	// Order matters for readability, so we'll use a consistent order
	directiveOrder := []string{
		"default-src",
		"script-src",
		"style-src",
		"img-src",
		"font-src",
		"connect-src",
		"frame-ancestors",
		"form-action",
		"base-uri",
		"object-src",
	}

	var parts []string
	for _, directive := range directiveOrder {
		if sources, exists := b.directives[directive]; exists && len(sources) > 0 {
			directiveString := fmt.Sprintf("%s %s", directive, strings.Join(sources, " "))
			parts = append(parts, directiveString)
		}
	}

	return strings.Join(parts, "; ")
}

// HeaderName returns the appropriate CSP header name based on report-only mode.
//
// Returns "Content-Security-Policy-Report-Only" if report-only mode is
// enabled, "Content-Security-Policy" for enforcement mode.
func (b *CSPBuilder) HeaderName() string {
	if b.reportOnly {
		return "Content-Security-Policy-Report-Only"
	}
	return "Content-Security-Policy"
}

// HTMLPolicy returns a CSP policy for the server-rendered pages.
//
// The pages use inline styles and same-origin form posts, and load no
// external scripts:
//   - Styles: same origin plus inline (page templates carry a <style> block)
//   - Scripts: same origin only
//   - Forms: submit to the same origin only
//   - Framing: blocked entirely
//
// Example:
//
//	policy := HTMLPolicy().Build()
//	w.Header().Set("Content-Security-Policy", policy)
func HTMLPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'self'").
		ScriptSrc("'self'").
		StyleSrc("'self'", "'unsafe-inline'").
		ImgSrc("'self'", "data:").
		FontSrc("'self'").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseUri("'self'").
		FormAction("'self'").
		ObjectSrc("'none'")
}

// StrictPolicy returns a strict CSP policy for API endpoints.
//
// This policy is highly restrictive and suitable for JSON API endpoints
// that don't serve HTML content. It blocks most content types and only
// allows same-origin connections.
func StrictPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'none'").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseUri("'self'").
		FormAction("'self'")
}
