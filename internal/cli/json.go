package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"

	"github.com/ferromon/ferro/internal/errors"
)

// JSONEnvelope wraps command output in a consistent structure for
// machine parsing. All --json output uses this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigInvalid      = "CONFIG_INVALID"
	ErrCodeMetricsUnavailable = "METRICS_UNAVAILABLE"
	ErrCodeScanFailed         = "SCAN_FAILED"
	ErrCodeNotATerminal       = "NOT_A_TERMINAL"
	ErrCodeUnknown            = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: true, Data: data})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: false, Error: ErrorToJSON(err)})
}

func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts an error to a JSONError with code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	out := &JSONError{Code: ErrCodeUnknown, Message: err.Error()}

	var ferr *errors.Error
	if stderrors.As(err, &ferr) {
		out.Message = ferr.Message
		out.Suggestion = ferr.Suggestion
		switch ferr.Code {
		case errors.ErrConfig:
			out.Code = ErrCodeConfigInvalid
		case errors.ErrMetrics:
			out.Code = ErrCodeMetricsUnavailable
		case errors.ErrScan:
			out.Code = ErrCodeScanFailed
		case errors.ErrTerm:
			out.Code = ErrCodeNotATerminal
		}
	}
	return out
}
