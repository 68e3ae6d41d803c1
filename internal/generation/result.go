package generation

// Source records where a generated value came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Reason explains why a fallback was used. It is empty for AI results.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonDisabled      Reason = "disabled"
	ReasonProviderError Reason = "provider_error"
	ReasonTimeout       Reason = "timeout"
	ReasonEmptyResponse Reason = "empty_response"
	ReasonInvalidJSON   Reason = "invalid_json"
	ReasonShapeMismatch Reason = "shape_mismatch"
)

// Result is either an AI value or a fallback value with the reason and
// underlying cause.
type Result[T any] struct {
	Value  T
	Source Source
	Reason Reason
	Err    error
}

// Generated reports whether Value came from the provider.
func (r Result[T]) Generated() bool {
	return r.Source == SourceAI
}

func aiResult[T any](v T) Result[T] {
	return Result[T]{Value: v, Source: SourceAI}
}

func fallbackResult[T any](v T, reason Reason, err error) Result[T] {
	return Result[T]{Value: v, Source: SourceFallback, Reason: reason, Err: err}
}
