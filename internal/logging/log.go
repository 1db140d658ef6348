package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string
	// File enables size-based rotation into the given path instead of stdout.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// InitLogger installs a LineHandler on the apex default logger and returns
// a closer for the underlying writer.
func InitLogger(opts Options) (io.Closer, error) {
	level := strings.ToLower(opts.Level)
	if level == "" {
		level = "info"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	var out io.WriteCloser = nopCloser{os.Stdout}
	if opts.File != "" {
		out = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			Compress:   true,
		}
	}

	log.SetHandler(NewLineHandler(out))
	log.SetLevel(parsed)
	return out, nil
}

// LineHandler writes "timestamp L message key=value ..." lines.
type LineHandler struct {
	mu  sync.Mutex
	out io.Writer
}

func NewLineHandler(out io.Writer) *LineHandler {
	return &LineHandler{out: out}
}

// HandleLog implements the log.Handler interface
func (h *LineHandler) HandleLog(e *log.Entry) error {
	var b strings.Builder
	b.WriteString(e.Timestamp.Format(time.RFC3339))
	b.WriteByte(' ')
	b.WriteString(strings.ToUpper(e.Level.String())[:1])
	b.WriteByte(' ')
	b.WriteString(e.Message)

	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
