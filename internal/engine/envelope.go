package engine

import "net/http"

// Outcome discriminates the two envelope shapes.
type Outcome string

const (
	OutcomeFile  Outcome = "file"
	OutcomeError Outcome = "error"
)

// Envelope is the one shape the web layer serializes, for both successes
// and failures.
type Envelope struct {
	Outcome Outcome

	// File outcome fields. The consumer owns the file at Path and removes it
	// once the response is written.
	Path        string
	Filename    string
	ContentType string

	// Error outcome fields.
	Kind    ErrorKind
	Message string
	Status  int
}

// Build wraps a dispatcher outcome. Exactly one of result and opErr is set.
func Build(result *ConversionResult, opErr *OperationError) Envelope {
	if opErr != nil {
		return Envelope{
			Outcome: OutcomeError,
			Kind:    opErr.Kind,
			Message: opErr.Message,
			Status:  StatusFor(opErr.Kind),
		}
	}
	return Envelope{
		Outcome:     OutcomeFile,
		Path:        result.Path,
		Filename:    result.Filename,
		ContentType: result.ContentType,
	}
}

// StatusFor is the single place an error kind maps to an HTTP status. The
// historical copies of this app each hard-coded their own inconsistent
// codes; every response now goes through this table.
func StatusFor(kind ErrorKind) int {
	switch kind {
	case KindBadInput, KindUnsupportedOption:
		return http.StatusBadRequest
	case KindMissingDependency:
		return http.StatusNotImplemented
	case KindProcessingFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
