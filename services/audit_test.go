package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "phishing_websites.txt")
	audit, err := OpenAuditLog(path)
	require.NoError(t, err)

	require.NoError(t, audit.Append("badsite.com"))
	require.NoError(t, audit.Append("http://x.com/a\nb"))
	require.NoError(t, audit.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "badsite.com\nhttp://x.com/a b\n", string(data))
}

func TestAuditLogAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.txt")
	require.NoError(t, os.WriteFile(path, []byte("old.com\n"), 0o644))

	audit, err := OpenAuditLog(path)
	require.NoError(t, err)
	require.NoError(t, audit.Append("new.com"))
	require.NoError(t, audit.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old.com\nnew.com\n", string(data))
}

func TestAuditLogClosed(t *testing.T) {
	audit, err := OpenAuditLog(filepath.Join(t.TempDir(), "audit.txt"))
	require.NoError(t, err)
	require.NoError(t, audit.Close())
	assert.Error(t, audit.Append("late.com"))
	assert.NoError(t, audit.Close())
}

func TestOpenAuditLogEmptyPath(t *testing.T) {
	_, err := OpenAuditLog("")
	assert.Error(t, err)
}
