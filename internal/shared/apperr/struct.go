package apperr

type Kind string

type AppError struct {
	Kind      Kind
	PublicMsg string            // safe to show to the API caller
	Fields    map[string]string // per-field validation errors (optional)
	Detail    string            // raw upstream detail attached to the response (gateway errors)
	Err       error             // internal error, for logs only
}
