package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatterText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Success("all good"))
	assert.Equal(t, "all good\n", buf.String())

	buf.Reset()
	require.NoError(t, f.Error("AUTH_FAILED", "invalid credentials"))
	assert.Equal(t, "Error [AUTH_FAILED]: invalid credentials\n", buf.String())
}

func TestOutputFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Success(map[string]any{"user_id": "brocoder1"}))
	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)

	buf.Reset()
	require.NoError(t, f.Error("NOT_FOUND", "spot not found"))
	resp = CLIResponse{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestExitError(t *testing.T) {
	inner := errors.New("boom")
	err := WrapExitError(ExitCommandError, "failed to open token store", inner)
	assert.Equal(t, "failed to open token store: boom", err.Error())
	assert.ErrorIs(t, err, inner)

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}
