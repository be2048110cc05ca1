package consumer

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader a consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Outcome tells the loop what to do with the offset of a handled message.
type Outcome int

const (
	// Commit marks the message done.
	Commit Outcome = iota
	// Retry handles the same message again after a backoff.
	Retry
)

const (
	maxHandleAttempts = 5
	retryBackoff      = 500 * time.Millisecond
)

type HandlerFunc func(ctx context.Context, msg kafkago.Message) (Outcome, error)

// Run fetches messages until ctx is cancelled. Poison messages should be
// returned with Commit and an error so they are logged and skipped.
func Run(ctx context.Context, reader MessageReader, name string, handle HandlerFunc, logger *zap.Logger) {
	log := logger.Named("kafka.consumer." + name)
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if !handleWithRetry(ctx, msg, handle, log) {
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// handleWithRetry returns false only when ctx was cancelled mid-retry, in
// which case the offset must stay uncommitted.
func handleWithRetry(ctx context.Context, msg kafkago.Message, handle HandlerFunc, log *zap.Logger) bool {
	for attempt := 1; ; attempt++ {
		outcome, err := handle(ctx, msg)
		if err != nil {
			log.Error("handle message failed",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		if outcome != Retry {
			return true
		}
		if attempt >= maxHandleAttempts {
			log.Warn("giving up on message", zap.Int64("offset", msg.Offset))
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
