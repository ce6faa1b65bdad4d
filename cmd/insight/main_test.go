package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCommandConfig points the command backend at a shell that always replies "ok".
func writeCommandConfig(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
backend: command
command:
  binary: sh
  args: ["-c", "cat >/dev/null; echo ok"]
chunking:
  size: 512
  max_tokens: -1
logging:
  level: error
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInteractiveSession(t *testing.T) {
	cfg := writeCommandConfig(t)

	out, err := runCLI(t, "Who killed Baahubali?\nExit\n", "--config", cfg)

	require.NoError(t, err)
	// The built-in document is longer than 512 words, so it yields two chunks.
	assert.True(t, strings.HasPrefix(out, "Summary: ok ok\n"), out)
	assert.Contains(t, out, "You can now ask a question about the text (or type 'exit' to stop): Answer: ok\n")
}

func TestSummarizeCommandWritesReport(t *testing.T) {
	cfg := writeCommandConfig(t)
	doc := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(doc, []byte("a short note"), 0644))
	outDir := t.TempDir()

	out, err := runCLI(t, "", "--config", cfg, "summarize", doc, "--out", outDir)

	require.NoError(t, err)
	assert.Equal(t, "Summary: ok\n", out)
	assert.FileExists(t, filepath.Join(outDir, "notes.md"))
}

func TestAskCommand(t *testing.T) {
	cfg := writeCommandConfig(t)

	out, err := runCLI(t, "", "--config", cfg, "ask", "Who", "is", "Devasena?")

	require.NoError(t, err)
	assert.Equal(t, "Answer: ok\n", out)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := loadConfig(&flags{
		configPath: filepath.Join(t.TempDir(), "missing.yaml"),
		chunkSize:  64,
		logLevel:   "debug",
	})
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Chunking.Size)
	assert.Equal(t, "debug", cfg.Logging.Level)

	_, err = loadConfig(&flags{
		configPath: filepath.Join(t.TempDir(), "missing.yaml"),
		backend:    "gemini",
	})
	assert.Error(t, err)
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	dirs := []string{filepath.Join(base, "in"), filepath.Join(base, "out", "processed")}

	require.NoError(t, ensureDirectories(dirs...))

	for _, d := range dirs {
		assert.DirExists(t, d)
	}
}
