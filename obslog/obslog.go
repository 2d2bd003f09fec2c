// Package obslog defines docspell-wide logging helpers built on log/slog:
// context-carried structured attributes, redaction of sensitive values
// before they reach a handler, and a per-run correlation ID.
package obslog

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/oklog/ulid/v2"
)

type attrsKey struct{}

// sensitiveKeys are the env-style key substrings redacted by Redact.
var sensitiveKeys = []string{"TOKEN", "SECRET", "PASSWORD", "KEY"}

// Redact scrubs "KEY=value"-shaped strings whose key matches a small
// deny-list, so a traced environment dump never leaks a credential.
func Redact(arr []string) []string {
	ret := make([]string, 0, len(arr))
	for _, s := range arr {
		key, _, ok := strings.Cut(s, "=")
		if ok && isSensitiveKey(key) {
			ret = append(ret, key+"=[REDACTED]")
		} else {
			ret = append(ret, s)
		}
	}
	return ret
}

func isSensitiveKey(key string) bool {
	upper := strings.ToUpper(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(upper, s) {
			return true
		}
	}
	return false
}

// WithAttrs returns a context carrying add in addition to any attributes
// already attached to ctx.
func WithAttrs(ctx context.Context, add ...slog.Attr) context.Context {
	attrs := slices.Clone(Attrs(ctx))
	attrs = append(attrs, add...)
	return context.WithValue(ctx, attrsKey{}, attrs)
}

// Attrs returns the attributes attached to ctx by WithAttrs, if any.
func Attrs(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return attrs
}

// AttrsWrap wraps h so that every record it handles is augmented with the
// calling context's attributes.
func AttrsWrap(h slog.Handler) slog.Handler {
	return &augmentHandler{Handler: h}
}

type augmentHandler struct {
	slog.Handler
}

func (h *augmentHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(Attrs(ctx)...)
	return h.Handler.Handle(ctx, r)
}

// RunID generates a new, time-sortable correlation ID for one invocation,
// to be attached to the root context via WithAttrs so every log line for
// that run can be grouped.
func RunID() string {
	return ulid.Make().String()
}
