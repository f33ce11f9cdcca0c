package pathutil_test

import (
	"fmt"

	"calorietracker/internal/handler/http/pathutil"
)

// ExampleNormalizePath demonstrates how path normalization works
// to prevent metrics label cardinality explosion.
func ExampleNormalizePath() {
	// Every entry ID would otherwise create a unique path label.
	fmt.Println(pathutil.NormalizePath("/edit/123/"))
	fmt.Println(pathutil.NormalizePath("/edit/456/"))
	fmt.Println(pathutil.NormalizePath("/delete/789/"))

	// Output:
	// /edit/:id
	// /edit/:id
	// /delete/:id
}

// ExampleNormalizePath_static demonstrates that static endpoints remain unchanged.
func ExampleNormalizePath_static() {
	fmt.Println(pathutil.NormalizePath("/health"))
	fmt.Println(pathutil.NormalizePath("/metrics"))
	fmt.Println(pathutil.NormalizePath("/home/"))

	// Output:
	// /health
	// /metrics
	// /home
}

// ExampleNormalizePath_queryParameters demonstrates that query parameters are stripped.
func ExampleNormalizePath_queryParameters() {
	fmt.Println(pathutil.NormalizePath("/edit/123/?page=1"))
	fmt.Println(pathutil.NormalizePath("/health?format=json"))

	// Output:
	// /edit/:id
	// /health
}
