package scheduler

import "errors"

// Failure taxonomy for the AI path. Every one of these is absorbed at the
// orchestrator boundary and converted into a deterministic fallback; none of
// them reach the caller as a request failure.
var (
	// ErrMissingCredential means no API key is configured. No network call
	// is attempted and no rate-limit wait is paid.
	ErrMissingCredential = errors.New("AI API key not configured")

	// ErrTransport wraps any network or API error from the model call.
	ErrTransport = errors.New("AI API call failed")

	// ErrEmptyResponse means the model returned no usable text.
	ErrEmptyResponse = errors.New("empty response from AI API")

	// ErrNoJSONFound means the response text contains no JSON object.
	ErrNoJSONFound = errors.New("no valid JSON found in AI response")

	// ErrMalformedJSON means the extracted object failed to parse.
	ErrMalformedJSON = errors.New("failed to parse JSON from AI response")

	// ErrUnexpectedSchema means the parsed JSON does not look like an
	// optimized schedule.
	ErrUnexpectedSchema = errors.New("AI response does not match the schedule schema")
)

// failureReason maps a taxonomy error to a short metric label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	case errors.Is(err, ErrNoJSONFound):
		return "no_json"
	case errors.Is(err, ErrMalformedJSON):
		return "malformed_json"
	case errors.Is(err, ErrUnexpectedSchema):
		return "unexpected_schema"
	default:
		return "internal"
	}
}
