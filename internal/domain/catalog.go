package domain

// ErrorCategory groups error types, e.g. "Hardware", "Network".
type ErrorCategory struct {
	ID   string
	Name string
}

// ErrorType is a concrete failure kind within a category, e.g. "Printer Jam".
type ErrorType struct {
	ID         string
	Name       string
	CategoryID string
}
