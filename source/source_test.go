package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAll(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"unix newlines", "a\nb\nc\n", []string{"a", "b", "c"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"crlf", "Hi {{name}}\r\n{% endif %}\r\n", []string{"Hi {{name}}", "{% endif %}"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadAll(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanner_LineNumber(t *testing.T) {
	sc := NewScanner(strings.NewReader("first\nsecond\n"))

	require.True(t, sc.Scan())
	assert.Equal(t, 1, sc.LineNumber())
	assert.Equal(t, "first", sc.Text())

	require.True(t, sc.Scan())
	assert.Equal(t, 2, sc.LineNumber())

	assert.False(t, sc.Scan())
	assert.NoError(t, sc.Err())
}

func TestScanner_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	got, err := ReadAll(strings.NewReader(long + "\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0], len(long))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("<h1>Title</h1>\nHi {{name}}!\n"), 0o600))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"<h1>Title</h1>", "Hi {{name}}!"}, got)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case line, ok := <-ch:
		require.True(t, ok, "channel closed")
		return line
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for line")
		return ""
	}
}

func appendTo(t *testing.T, path, text string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString(text)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestTailer(t *testing.T) {
	modes := map[string][]TailOption{
		"watch":   nil,
		"polling": {WithPolling(), WithPollInterval(10 * time.Millisecond)},
	}

	for name, opts := range modes {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "live.tmpl")
			require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0o600))

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			ch, err := NewTailer(path, opts...).Tail(ctx)
			require.NoError(t, err)

			appendTo(t, path, "Hi {{name}}\npartial")
			assert.Equal(t, "Hi {{name}}", receive(t, ch))

			appendTo(t, path, " done\r\n")
			assert.Equal(t, "partial done", receive(t, ch))

			cancel()
			for range ch {
			}
		})
	}
}

func TestTailer_FromStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := NewTailer(path, WithFromStart(true), WithPolling()).Tail(ctx)
	require.NoError(t, err)

	assert.Equal(t, "one", receive(t, ch))
	assert.Equal(t, "two", receive(t, ch))
}

func TestTailer_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("first line\nsecond line\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := NewTailer(path, WithFromStart(true), WithPolling(), WithPollInterval(10*time.Millisecond)).Tail(ctx)
	require.NoError(t, err)

	assert.Equal(t, "first line", receive(t, ch))
	assert.Equal(t, "second line", receive(t, ch))

	// Shorter than what was read, so the file is read again from the top.
	require.NoError(t, os.WriteFile(path, []byte("new\n"), 0o600))
	assert.Equal(t, "new", receive(t, ch))

	appendTo(t, path, "more\n")
	assert.Equal(t, "more", receive(t, ch))
}

func TestTailer_MissingFile(t *testing.T) {
	_, err := NewTailer(filepath.Join(t.TempDir(), "nope")).Tail(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTailer_ClosesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.tmpl")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := NewTailer(path, WithPolling()).Tail(ctx)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
