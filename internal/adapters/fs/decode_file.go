package fs

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vu2ptt/upload-to-rbn/internal/ports"
)

// File implements ports.DecodeSource by reading the receiver's decode log
// line by line. In follow mode it keeps reading as the receiver appends,
// waking on fsnotify write events with a poll-interval fallback for
// filesystems that do not deliver them.
type File struct {
	path         string
	follow       bool
	pollInterval time.Duration
	logger       ports.Logger

	f       *os.File
	r       *bufio.Reader
	watcher *fsnotify.Watcher

	// partial carries an incomplete trailing line between reads in
	// follow mode until the receiver finishes writing it.
	partial strings.Builder
}

// Option configures a File.
type Option func(*File)

// WithFollow enables follow mode.
func WithFollow(pollInterval time.Duration) Option {
	return func(f *File) {
		f.follow = true
		f.pollInterval = pollInterval
	}
}

// WithLogger sets the logger.
func WithLogger(logger ports.Logger) Option {
	return func(f *File) {
		f.logger = logger
	}
}

// NewFile creates a decode source for the given path.
func NewFile(path string, opts ...Option) *File {
	f := &File{
		path:         filepath.Clean(path),
		pollInterval: 500 * time.Millisecond,
		logger:       noopLogger{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Open opens the decode file and, in follow mode, starts the directory
// watcher. A watcher setup failure is not fatal; the source degrades to
// polling.
func (f *File) Open(ctx context.Context) error {
	file, err := os.Open(f.path)
	if err != nil {
		return err
	}
	f.f = file
	f.r = bufio.NewReader(file)

	if f.follow {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			f.logger.Warn("decode file watcher unavailable, falling back to polling", ports.Err(err))
			return nil
		}
		// Watch the directory rather than the file so rotation by
		// rename-and-recreate still produces events.
		if err := watcher.Add(filepath.Dir(f.path)); err != nil {
			f.logger.Warn("decode file watch failed, falling back to polling", ports.Err(err))
			watcher.Close()
			return nil
		}
		f.watcher = watcher
	}

	return nil
}

// Next returns the next complete decode line. At end of file it returns
// io.EOF in one-shot mode, or blocks for more data in follow mode.
func (f *File) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	for {
		chunk, err := f.r.ReadString('\n')
		f.partial.WriteString(chunk)

		if err == nil {
			return f.takeLine(), nil
		}
		if !errors.Is(err, io.EOF) {
			return "", err
		}

		if !f.follow {
			// A final line without a terminator still counts.
			if f.partial.Len() > 0 {
				return f.takeLine(), nil
			}
			return "", io.EOF
		}

		if err := f.wait(ctx); err != nil {
			return "", err
		}
	}
}

// takeLine drains the partial buffer and strips the line terminator.
func (f *File) takeLine() string {
	line := strings.TrimRight(f.partial.String(), "\r\n")
	f.partial.Reset()
	return line
}

// wait blocks until the decode file grows, the poll interval elapses or
// the context is canceled.
func (f *File) wait(ctx context.Context) error {
	timer := time.NewTimer(f.pollInterval)
	defer timer.Stop()

	for {
		if f.watcher == nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		case event, ok := <-f.watcher.Events:
			if !ok {
				f.watcher = nil
				continue
			}
			if filepath.Clean(event.Name) != f.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			return nil
		case werr, ok := <-f.watcher.Errors:
			if !ok {
				f.watcher = nil
				continue
			}
			f.logger.Warn("decode file watcher error", ports.Err(werr))
		}
	}
}

// Close releases the file and watcher.
func (f *File) Close() error {
	var err error
	if f.watcher != nil {
		err = f.watcher.Close()
		f.watcher = nil
	}
	if f.f != nil {
		if cerr := f.f.Close(); err == nil {
			err = cerr
		}
		f.f = nil
	}
	return err
}

// noopLogger avoids nil checks when no logger is configured.
type noopLogger struct{}

func (noopLogger) Debug(msg string, fields ...ports.Field) {}
func (noopLogger) Info(msg string, fields ...ports.Field)  {}
func (noopLogger) Warn(msg string, fields ...ports.Field)  {}
func (noopLogger) Error(msg string, fields ...ports.Field) {}
