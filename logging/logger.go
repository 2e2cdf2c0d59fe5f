package logging

import (
	"io"

	"github.com/phuslu/log"
)

func CreateDebugLogger() *log.Logger {
	return &log.Logger{
		Level:  log.DebugLevel,
		Caller: 0,
		Writer: &log.ConsoleWriter{
			ColorOutput:    false,
			EndWithMessage: true,
		},
	}
}

// CreateSilentLogger discards everything. Meant for tests and for callers
// embedding the cache that do not want its debug output.
func CreateSilentLogger() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Caller: 0,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}
