package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"
	"go.trai.ch/shake/internal/ui/output"
	"go.trai.ch/shake/internal/ui/style"
)

// Attribute keys rendered specially by PrettyHandler.
const (
	// TargetKey names the test target a record is about. It is printed in front of the message.
	TargetKey = "target"
	// HashKey carries a content hash, printed in its short form.
	HashKey = "hash"
)

const shortHashLen = 12

// PrettyHandler is a slog.Handler producing human-readable, colored lines.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to w, or to stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message
	var icon string
	var color termenv.Color

	switch {
	case r.Level >= slog.LevelError:
		icon = style.Cross
		color = termenv.RGBColor(string(style.Red))
	case r.Level >= slog.LevelWarn:
		icon = style.Warning
		color = termenv.RGBColor(string(style.Yellow))
	default:
		color = termenv.RGBColor(string(style.Slate))
	}

	var target string
	attrParts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	addAttr := func(attr slog.Attr) {
		switch {
		case attr.Key == TargetKey && h.group == "":
			target = attr.Value.String()
			return
		case attr.Key == HashKey:
			attr = slog.String(attr.Key, shortHash(attr.Value.String()))
		}
		attrParts = append(attrParts, formatAttr(h.group, attr))
	}
	for _, attr := range h.attrs {
		addAttr(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		addAttr(attr)
		return true
	})

	if target != "" {
		msg = withTarget(msg, target)
	}
	if len(attrParts) > 0 {
		msg += " " + strings.Join(attrParts, " ")
	}

	if icon != "" {
		msg = icon + " " + msg
	}

	styled := h.out.String(msg).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
		group: h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: name,
	}
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}

// withTarget prefixes msg with the target. Continuation lines are shifted by the same
// width so multi-line error reports stay aligned.
func withTarget(msg, target string) string {
	prefix := "[" + target + "] "
	pad := strings.Repeat(" ", utf8.RuneCountInString(prefix))

	lines := strings.Split(msg, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return prefix + strings.Join(lines, "\n")
}

func shortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}
