package notifier

//go:generate mockgen -package=mocks -destination=mocks/mock_sink.go github.com/KirkDiggler/similarium/internal/notifier Sink

import (
	"context"
	"errors"

	"github.com/KirkDiggler/similarium/internal/models"
	"github.com/rs/zerolog"
)

// Sink receives the events produced by game operations
type Sink interface {
	// Publish delivers events in order
	Publish(ctx context.Context, events []*models.Event) error
}

// multiSink fans events out to several sinks
type multiSink struct {
	sinks []Sink
}

// Multi returns a sink publishing to every given sink. All sinks are tried
// even when one fails; the errors are joined.
func Multi(sinks ...Sink) Sink {
	kept := make([]Sink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			kept = append(kept, sink)
		}
	}
	return &multiSink{sinks: kept}
}

// Publish implements Sink
func (m *multiSink) Publish(ctx context.Context, events []*models.Event) error {
	if len(events) == 0 {
		return nil
	}

	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Publish(ctx, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// logSink writes one structured log line per event
type logSink struct {
	logger zerolog.Logger
}

// NewLog creates a sink that logs events
func NewLog(logger zerolog.Logger) Sink {
	return &logSink{
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

// Publish implements Sink
func (l *logSink) Publish(ctx context.Context, events []*models.Event) error {
	for _, event := range events {
		entry := l.logger.Info().
			Str("event", string(event.Type)).
			Str("game_id", event.GameID).
			Str("channel_id", event.ChannelID)

		if event.UserID != "" {
			entry = entry.Str("user_id", event.UserID)
		}
		if event.Bucket != 0 {
			entry = entry.Int("bucket", event.Bucket)
		}
		if event.Guess != nil {
			entry = entry.Int("rank", event.Guess.Rank).Int("sequence", event.Guess.Sequence)
		}

		entry.Msg(event.Message)
	}
	return nil
}
