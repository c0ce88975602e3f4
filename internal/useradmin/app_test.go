package useradmin

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPassword(t *testing.T, password string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) {
		return []byte(password), nil
	}
}

func storeArgs(t *testing.T) []string {
	t.Helper()
	return []string{"-b", "file", "-f", filepath.Join(t.TempDir(), "users.json")}
}

func TestRun_RequiresCommand(t *testing.T) {
	var out bytes.Buffer
	app := &App{Out: &out}

	err := app.Run(context.Background(), storeArgs(t))
	assert.Error(t, err)
}

func TestRun_CreateListDelete(t *testing.T) {
	stubPassword(t, "s3cret1")

	var out bytes.Buffer
	app := &App{Out: &out}
	args := storeArgs(t)
	ctx := context.Background()

	err := app.Run(ctx, append([]string{"-create", "-email", "alice@example.com", "-name", "Alice"}, args...))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "created alice@example.com")

	out.Reset()
	require.NoError(t, app.Run(ctx, append([]string{"-list"}, args...)))
	assert.Contains(t, out.String(), "alice@example.com")
	assert.Contains(t, out.String(), "1 user(s)")

	out.Reset()
	require.NoError(t, app.Run(ctx, append([]string{"-delete", "-email", "alice@example.com"}, args...)))
	assert.Contains(t, out.String(), "deleted alice@example.com")

	out.Reset()
	require.NoError(t, app.Run(ctx, append([]string{"-list"}, args...)))
	assert.Contains(t, out.String(), "0 user(s)")
}

func TestRun_CreateRequiresEmail(t *testing.T) {
	var out bytes.Buffer
	app := &App{Out: &out}

	err := app.Run(context.Background(), append([]string{"-create"}, storeArgs(t)...))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "-email"))
}

func TestRun_DeleteUnknownEmail(t *testing.T) {
	var out bytes.Buffer
	app := &App{Out: &out}

	err := app.Run(context.Background(), append([]string{"-delete", "-email", "ghost@example.com"}, storeArgs(t)...))
	assert.Error(t, err)
}
