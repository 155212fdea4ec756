package logbuf

import (
	"context"

	"go.uber.org/zap"
)

// Sink is the collaborator a flush hands drained messages to.
//
// Consume receives messages in emission order and must not reorder them.
// A non-nil error is an effect-context failure of the flushing chain; the
// buffer's own behavior (filtering, persistence) is entirely the sink's
// concern.
type Sink interface {
	Consume(ctx context.Context, msgs []Message) error
}

// ZapSink forwards drained messages to a zap.Logger.
// Level filtering, if any, is left to the logger's core.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink wraps logger as a Sink.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

func (zs *ZapSink) Consume(_ context.Context, msgs []Message) error {
	for _, msg := range msgs {
		fields := make([]zap.Field, 0, len(msg.Fields))
		for k, v := range msg.Fields {
			fields = append(fields, zap.String(k, v))
		}

		switch msg.Level {
		case LevelInfo:
			zs.logger.Info(msg.Text, fields...)
		case LevelWarn:
			zs.logger.Warn(msg.Text, fields...)
		case LevelError:
			zs.logger.Error(msg.Text, fields...)
		case LevelDebug:
			zs.logger.Debug(msg.Text, fields...)
		default:
			zs.logger.Info(msg.Text, fields...)
		}
	}
	return nil
}

// Close syncs the underlying logger. Call it when the sink is no longer needed.
func (zs *ZapSink) Close() {
	if err := zs.logger.Sync(); err != nil {
		zs.logger.Warn("failed to sync logger", zap.Error(err))
	}
}

// CollectSink records every consumed message in order. Test collaborator.
type CollectSink struct {
	Consumed []Message
	Calls    int
}

func (cs *CollectSink) Consume(_ context.Context, msgs []Message) error {
	cs.Calls++
	cs.Consumed = append(cs.Consumed, msgs...)
	return nil
}
