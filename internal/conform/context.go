// Package conform verifies that an accessibility provider exposes correct
// structure, text-range navigation, text attributes and error conditions.
//
// Every verifier takes a *Context, which owns the step counter, the comment
// log and the discrepancies collected while a scenario runs.
package conform

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Context is the per-scenario state shared by the verifiers. It is not safe
// for concurrent use.
type Context struct {
	logger        *slog.Logger
	rec           *recorder
	steps         int
	discrepancies []string
}

// NewContext returns a Context that logs through logger. Every message at
// info level or above is also kept as a comment for the scenario result.
func NewContext(logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rec := &recorder{}
	return &Context{
		logger: slog.New(&commentHandler{next: logger.Handler(), rec: rec}),
		rec:    rec,
	}
}

// Logger returns the scenario logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Step starts a numbered test step.
func (c *Context) Step(format string, args ...any) {
	c.steps++
	c.logger.Info(fmt.Sprintf(format, args...), "step", c.steps)
}

// Comment adds a line to the scenario log.
func (c *Context) Comment(format string, args ...any) {
	c.logger.Info(fmt.Sprintf(format, args...))
}

// Discrepancy records a non-fatal verification failure.
func (c *Context) Discrepancy(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.discrepancies = append(c.discrepancies, msg)
	c.logger.Warn(msg, "discrepancy", len(c.discrepancies))
}

// Record adds err as a discrepancy.
func (c *Context) Record(err error) {
	c.Discrepancy("%s", err)
}

func (c *Context) Steps() int              { return c.steps }
func (c *Context) Comments() []string      { return slices.Clone(c.rec.lines) }
func (c *Context) Discrepancies() []string { return slices.Clone(c.discrepancies) }

// Err returns a *Report of every recorded discrepancy, or nil.
func (c *Context) Err() error {
	if len(c.discrepancies) == 0 {
		return nil
	}
	return &Report{Discrepancies: slices.Clone(c.discrepancies)}
}

// Report aggregates the discrepancies of one scenario run.
type Report struct {
	Discrepancies []string
}

func (r *Report) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d discrepancies found:", len(r.Discrepancies))
	for _, d := range r.Discrepancies {
		b.WriteString("\n  - ")
		b.WriteString(d)
	}
	return b.String()
}

type recorder struct {
	lines []string
}

// commentHandler copies records into a recorder before passing them on.
type commentHandler struct {
	next  slog.Handler
	rec   *recorder
	attrs []slog.Attr
}

func (h *commentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo || h.next.Enabled(ctx, level)
}

func (h *commentHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelInfo {
		h.rec.lines = append(h.rec.lines, h.format(r))
	}
	if h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}
	return nil
}

func (h *commentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &commentHandler{
		next:  h.next.WithAttrs(attrs),
		rec:   h.rec,
		attrs: append(slices.Clip(h.attrs), attrs...),
	}
}

func (h *commentHandler) WithGroup(name string) slog.Handler {
	return &commentHandler{next: h.next.WithGroup(name), rec: h.rec, attrs: h.attrs}
}

func (h *commentHandler) format(r slog.Record) string {
	var b strings.Builder
	if r.Level >= slog.LevelWarn {
		b.WriteString(r.Level.String())
		b.WriteString(": ")
	}
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		if a.Key == "step" {
			return true
		}
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	if v, ok := stepOf(r); ok {
		return fmt.Sprintf("[%d] %s", v, b.String())
	}
	return b.String()
}

func stepOf(r slog.Record) (int64, bool) {
	var step int64
	found := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "step" {
			step, found = a.Value.Int64(), true
			return false
		}
		return true
	})
	return step, found
}
