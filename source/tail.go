package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is how often a Tailer checks the file when it
// cannot use fsnotify.
const DefaultPollInterval = 100 * time.Millisecond

// Tailer follows a file and emits each complete line appended to it.
type Tailer struct {
	path      string
	fromStart bool
	poll      time.Duration
	noWatch   bool
}

// TailOption configures a Tailer.
type TailOption func(*Tailer)

// WithFromStart emits the lines already in the file before following it.
func WithFromStart(fromStart bool) TailOption {
	return func(t *Tailer) {
		t.fromStart = fromStart
	}
}

// WithPollInterval sets the polling interval used without fsnotify.
func WithPollInterval(d time.Duration) TailOption {
	return func(t *Tailer) {
		if d > 0 {
			t.poll = d
		}
	}
}

// WithPolling disables fsnotify and always polls.
func WithPolling() TailOption {
	return func(t *Tailer) {
		t.noWatch = true
	}
}

// NewTailer creates a Tailer for path.
func NewTailer(path string, opts ...TailOption) *Tailer {
	t := &Tailer{
		path: path,
		poll: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Path returns the file being followed.
func (t *Tailer) Path() string {
	return t.path
}

// Tail opens the file and starts following it. Lines are sent in file
// order; a trailing line without a newline is held until the newline
// arrives. The channel is closed when ctx is cancelled.
//
// If the file shrinks, it is treated as truncated and read again from the
// beginning.
func (t *Tailer) Tail(ctx context.Context) (<-chan string, error) {
	file, err := os.Open(t.path)
	if err != nil {
		return nil, fmt.Errorf("open tailed file: %w", err)
	}

	offset := int64(0)
	if !t.fromStart {
		offset, err = file.Seek(0, io.SeekEnd)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("seek to end: %w", err)
		}
	}

	// The watcher is registered before returning so that no write made
	// after Tail returns can be missed.
	var watcher *fsnotify.Watcher
	if !t.noWatch {
		watcher = t.newWatcher()
	}

	ch := make(chan string, 100)
	f := &follower{file: file, reader: bufio.NewReader(file), offset: offset, out: ch}

	go func() {
		defer close(ch)
		defer file.Close()

		if !f.drain(ctx) {
			if watcher != nil {
				watcher.Close()
			}
			return
		}

		if watcher == nil {
			t.tailPolling(ctx, f)
			return
		}
		defer watcher.Close()
		t.tailWithWatcher(ctx, f, watcher)
	}()

	return ch, nil
}

// newWatcher watches the file's directory and returns nil when fsnotify
// cannot be used.
func (t *Tailer) newWatcher() *fsnotify.Watcher {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Debug("fsnotify unavailable, polling", "path", t.path, "error", err)
		return nil
	}
	if err := watcher.Add(filepath.Dir(t.path)); err != nil {
		slog.Debug("could not watch directory, polling", "path", t.path, "error", err)
		watcher.Close()
		return nil
	}
	return watcher
}

func (t *Tailer) tailWithWatcher(ctx context.Context, f *follower, watcher *fsnotify.Watcher) {
	baseName := filepath.Base(t.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != baseName || !event.Has(fsnotify.Write) {
				continue
			}
			if !f.drain(ctx) {
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", slog.String("path", t.path), slog.Any("error", err))
		}
	}
}

func (t *Tailer) tailPolling(ctx context.Context, f *follower) {
	ticker := time.NewTicker(t.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !f.drain(ctx) {
				return
			}
		}
	}
}

// follower tracks the read position and any partial line in the file.
type follower struct {
	file    *os.File
	reader  *bufio.Reader
	offset  int64
	pending strings.Builder
	out     chan<- string
}

// drain sends every complete line available. It returns false if ctx was
// cancelled while sending.
func (f *follower) drain(ctx context.Context) bool {
	if info, err := f.file.Stat(); err == nil && info.Size() < f.offset {
		if _, err := f.file.Seek(0, io.SeekStart); err == nil {
			f.offset = 0
			f.pending.Reset()
			f.reader.Reset(f.file)
		}
	}

	for {
		chunk, err := f.reader.ReadString('\n')
		f.offset += int64(len(chunk))
		f.pending.WriteString(chunk)

		if strings.HasSuffix(chunk, "\n") {
			line := strings.TrimSuffix(f.pending.String(), "\n")
			line = strings.TrimSuffix(line, "\r")
			f.pending.Reset()
			select {
			case f.out <- line:
			case <-ctx.Done():
				return false
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Warn("read tailed file", slog.Any("error", err))
			}
			return true
		}
	}
}
