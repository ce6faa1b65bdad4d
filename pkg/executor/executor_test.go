package executor

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestExecute(t *testing.T) {
	requireBinary(t, "echo")

	out, err := New().Execute(context.Background(), "echo", "hello")

	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestExecuteWithInput(t *testing.T) {
	requireBinary(t, "cat")

	out, err := New().ExecuteWithInput(context.Background(), "from stdin", "cat")

	require.NoError(t, err)
	assert.Equal(t, "from stdin", out)
}

func TestExecuteFailure(t *testing.T) {
	requireBinary(t, "sh")

	_, err := New().Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
