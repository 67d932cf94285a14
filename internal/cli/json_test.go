package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferromon/ferro/internal/errors"
)

func TestWriteJSONSuccess(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSONSuccess(&buf, map[string]string{"status": "ok"})
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	assert.Equal(t, map[string]interface{}{"status": "ok"}, env.Data)
}

func TestWriteJSONFromError(t *testing.T) {
	var buf bytes.Buffer
	ferr := errors.New(errors.ErrConfig, "Bad config", "Fix the YAML")
	require.NoError(t, WriteJSONFromError(&buf, ferr))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeConfigInvalid, env.Error.Code)
	assert.Equal(t, "Bad config", env.Error.Message)
	assert.Equal(t, "Fix the YAML", env.Error.Suggestion)
}

func TestErrorToJSONCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"config", errors.New(errors.ErrConfig, "x", ""), ErrCodeConfigInvalid},
		{"metrics", errors.New(errors.ErrMetrics, "x", ""), ErrCodeMetricsUnavailable},
		{"scan", errors.New(errors.ErrScan, "x", ""), ErrCodeScanFailed},
		{"terminal", errors.New(errors.ErrTerm, "x", ""), ErrCodeNotATerminal},
		{"plain error", stderrors.New("boom"), ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ErrorToJSON(tt.err)
			require.NotNil(t, out)
			assert.Equal(t, tt.code, out.Code)
		})
	}
}

func TestErrorToJSONWrappedError(t *testing.T) {
	inner := errors.New(errors.ErrScan, "Scan blew up", "Try a smaller target")
	wrapped := stderrors.Join(stderrors.New("outer"), inner)

	out := ErrorToJSON(wrapped)
	require.NotNil(t, out)
	assert.Equal(t, ErrCodeScanFailed, out.Code)
	assert.Equal(t, "Scan blew up", out.Message)
}

func TestErrorToJSONNil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}
