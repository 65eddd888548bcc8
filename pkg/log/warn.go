package log

import (
	"os"

	"github.com/rs/zerolog"

	harnesserr "github.com/snowdj/evalharness/pkg/errors"
)

// InstallZerologWarnSink routes pkg/errors warnings into a zerolog logger.
// Warning types that implement zerolog.LogObjectMarshaler are embedded as
// structured objects; anything else is logged by message.
func InstallZerologWarnSink() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	harnesserr.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.EmbedObject(obj).Msg("harness warning")
			return
		}
		ev.Err(warning).Msg("harness warning")
	})
}
