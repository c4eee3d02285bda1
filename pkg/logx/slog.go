package logx

import (
	"fmt"
	"log/slog"

	"github.com/lmittmann/tint"
)

// Error renders an error attribute the way the tint handler highlights it.
var Error = tint.Err //nolint:gochecknoglobals

// Stringer evaluates value.String eagerly, so it is safe for values that may
// be mutated after the log call.
func Stringer(name string, value fmt.Stringer) slog.Attr {
	return slog.String(name, value.String())
}
