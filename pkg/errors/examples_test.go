package errors_test

import (
	"fmt"

	"github.com/agentstation/scrub/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	// Create a not found error
	err := &errors.NotFoundError{
		Resource: "column",
		ID:       "loyalty_points",
	}

	// Check error type
	if errors.IsNotFound(err) {
		fmt.Println("Resource not found")
	}

	// Output: Resource not found
}

// Example_aPIError demonstrates enrichment API error handling.
func Example_aPIError() {
	err := &errors.APIError{
		Provider:   "gemini",
		StatusCode: 429,
		Message:    "Rate limit exceeded",
	}

	switch err.StatusCode {
	case 429:
		fmt.Println("Rate limited - retry later")
	case 401:
		fmt.Println("Authentication failed")
	case 500:
		fmt.Println("Server error")
	}

	// Output: Rate limited - retry later
}

// Example_fillError shows how per-field enrichment failures are represented.
func Example_fillError() {
	err := errors.NewFillError("gemini", "email", "8c2f1a", errors.ErrNoFill)

	// A fill failure degrades to "left missing", never to a pipeline error
	if errors.IsNoFill(err) {
		fmt.Println("Field left missing")
	}

	// Output: Field left missing
}

// Example_errorWrapping demonstrates error wrapping patterns.
func Example_errorWrapping() {
	// Original error
	originalErr := fmt.Errorf("connection refused")

	// Wrap with IO error
	ioErr := errors.WrapIO("open", "customers.csv", originalErr)

	// Wrap with parse error
	_ = &errors.ParseError{
		Format:  "csv",
		File:    "customers.csv",
		Message: "failed to read input",
		Err:     ioErr,
	}

	fmt.Println("Input error occurred")

	// Output: Input error occurred
}

// Example_validationError shows input validation errors.
func Example_validationError() {
	iterations := 0
	if iterations <= 0 {
		err := &errors.ValidationError{
			Field:   "max_iterations",
			Value:   iterations,
			Message: "must be positive",
		}
		fmt.Println(err.Error())
	}

	// Output: validation failed for field max_iterations: must be positive
}

// Example_errorChaining shows chained error handling.
func Example_errorChaining() {
	baseErr := &errors.NotFoundError{
		Resource: "file",
		ID:       "customers.csv",
	}

	parseErr := &errors.ParseError{
		Format:  "csv",
		File:    "customers.csv",
		Message: "failed to read input",
		Err:     baseErr,
	}

	// Check through the chain using standard library semantics
	if parseErr.Err != nil {
		if _, ok := parseErr.Err.(*errors.NotFoundError); ok {
			fmt.Println("File not found in parse chain")
		}
	}

	// Output: File not found in parse chain
}
