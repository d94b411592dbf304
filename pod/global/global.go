package global

import (
	"github.com/rs/zerolog"
)

// Logger is replaced by initialize at startup; the no-op default keeps
// library-style use (tests) quiet.
var Logger = zerolog.Nop()
