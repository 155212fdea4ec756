package logbuf

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewTestZapSink returns a ZapSink over a debug-level console logger.
func NewTestZapSink() *ZapSink {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return NewZapSink(zap.New(consoleCore))
}
