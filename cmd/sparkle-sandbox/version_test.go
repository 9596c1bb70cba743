package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand_Properties(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.NotNil(t, versionCmd.Flags().Lookup("json"))
}

func TestVersionOutput_JSONShape(t *testing.T) {
	output, err := json.Marshal(VersionOutput{Version: "1.2.3", GitCommit: "abc123"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.2.3","git_commit":"abc123"}`, string(output))
}
