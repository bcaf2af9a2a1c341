package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// palette holds the escape sequences used for each part of a line. The
// plain palette is all empty strings.
type palette struct {
	reset, dim, bold       string
	debug, info, warn, err string
}

var (
	colorPalette = palette{
		reset: "\033[0m",
		dim:   "\033[2m",
		bold:  "\033[1m",
		debug: "\033[36m",
		info:  "\033[32m",
		warn:  "\033[33m",
		err:   "\033[31m",
	}
	plainPalette = palette{}
)

// groupedAttr is an attribute together with the groups open when it was added.
type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

// TerminalHandler formats log records as human readable terminal output.
//
// Output format:
//
//	15:04:05.000 INF rendering range range=1-Intro start=1 end=119
type TerminalHandler struct {
	writer  io.Writer
	level   slog.Leveler
	palette palette
	attrs   []groupedAttr
	groups  []string
	mu      *sync.Mutex
}

func newTerminalHandler(w io.Writer, level slog.Leveler, color bool) *TerminalHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	p := plainPalette
	if color {
		p = colorPalette
	}
	return &TerminalHandler{
		writer:  w,
		level:   level,
		palette: p,
		mu:      &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats a log record and writes it as a single line.
func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	p := h.palette
	var buf bytes.Buffer
	buf.Grow(256)

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf.WriteString(p.dim + ts.Format("15:04:05.000") + p.reset + " ")
	buf.WriteString(p.levelColor(r.Level) + levelLabel(r.Level) + p.reset + " ")
	buf.WriteString(p.bold + r.Message + p.reset)

	for _, ga := range h.attrs {
		p.appendAttr(&buf, ga.attr, ga.groups)
	}
	r.Attrs(func(a slog.Attr) bool {
		p.appendAttr(&buf, a, h.groups)
		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

// WithAttrs returns a new handler with attrs appended to every record.
func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]groupedAttr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, groupedAttr{groups: h.groups, attr: a})
	}
	return &next
}

// WithGroup returns a new handler that prefixes subsequent attribute keys
// with name.
func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append(make([]string, 0, len(h.groups)+1), h.groups...), name)
	return &next
}

func levelLabel(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DBG"
	case level < slog.LevelWarn:
		return "INF"
	case level < slog.LevelError:
		return "WRN"
	default:
		return "ERR"
	}
}

func (p palette) levelColor(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return p.debug
	case level < slog.LevelWarn:
		return p.info
	case level < slog.LevelError:
		return p.warn
	default:
		return p.err
	}
}

func (p palette) appendAttr(buf *bytes.Buffer, a slog.Attr, groups []string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		prefix := groups
		if a.Key != "" {
			prefix = append(append(make([]string, 0, len(groups)+1), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			p.appendAttr(buf, ga, prefix)
		}
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(p.dim)
	for _, g := range groups {
		buf.WriteString(g)
		buf.WriteByte('.')
	}
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	buf.WriteString(p.reset)
	if _, isErr := a.Value.Any().(error); isErr {
		buf.WriteString(p.err + formatAttrValue(a.Value) + p.reset)
		return
	}
	buf.WriteString(formatAttrValue(a.Value))
}

func formatAttrValue(v slog.Value) string {
	s := v.String()
	if err, ok := v.Any().(error); ok {
		s = err.Error()
	} else if v.Kind() != slog.KindString {
		return s
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"\\=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
