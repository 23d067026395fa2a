// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// traceLog reports block allocations and releases, never per-element work.
// It is disabled unless GO_VECTOR_LOG_LEVEL names a zerolog level.
var traceLog = newTraceLogger()

func newTraceLogger() zerolog.Logger {
	lvl := zerolog.Disabled
	if s := os.Getenv("GO_VECTOR_LOG_LEVEL"); s != "" {
		if parsed, err := zerolog.ParseLevel(s); err == nil {
			lvl = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC822}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func traceAlloc(slots int, bytes uintptr) {
	traceLog.Trace().Int("slots", slots).Uint64("bytes", uint64(bytes)).Msg("block allocated")
}

func traceRelease(slots int) {
	traceLog.Trace().Int("slots", slots).Msg("block released")
}
