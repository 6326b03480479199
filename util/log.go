package util

import (
	"io"
	"log"
	"os"
)

var (
	flagEnableTrace bool = false
	tracer               = log.New(os.Stderr, "zen: ", log.LstdFlags|log.Lmicroseconds)
)

func EnableTrace() {
	flagEnableTrace = true
}

func DisableTrace() {
	flagEnableTrace = false
}

func TraceEnabled() bool {
	return flagEnableTrace
}

// SetTraceOutput redirects trace lines. Tests use it to capture them.
func SetTraceOutput(w io.Writer) {
	tracer.SetOutput(w)
}

func Trace(format string, v ...interface{}) {
	if flagEnableTrace {
		tracer.Printf(format, v...)
	}
}
