package malloc

// logging functions.

import (
	"fmt"

	"github.com/intuitivelabs/slog"
)

const name = "malloc"

const (
	pDBG   = "DBG: " + name + ": "
	pWARN  = "WARNING: " + name + ": "
	pERR   = "ERROR: " + name + ": "
	pBUG   = "BUG: " + name + ": "
	pPANIC = name + ": "
)

// Log is the package-wide log, a single exported slog.Log that callers
// can reconfigure (level, destination).
var Log slog.Log = slog.New(slog.LDBG, slog.LbackTraceS|slog.LlocInfoS,
	slog.LStdErr)

// WARN logs a warning-level message.
func WARN(f string, a ...interface{}) {
	Log.LLog(slog.LWARN, 1, pWARN, f, a...)
}

// ERR logs an error-level message.
func ERR(f string, a ...interface{}) {
	Log.LLog(slog.LERR, 1, pERR, f, a...)
}

// BUG logs a bug-level message without panicking.
func BUG(f string, a ...interface{}) {
	Log.LLog(slog.LBUG, 1, pBUG, f, a...)
}

// PANIC logs a bug-level message and panics. Reserved for invariant
// violations detected mid-operation, where continuing would corrupt the
// heap.
func PANIC(f string, a ...interface{}) {
	s := fmt.Sprintf(pPANIC+f, a...)
	Log.LLog(slog.LBUG, 1, "", "%s", s)
	panic(s)
}
