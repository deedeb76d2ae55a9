package attendance

import (
	"context"
	"log"

	"rollcall/internal/queue"
)

// Summarizer recomputes cached daily summaries for dates announced on the queue.
type Summarizer struct {
	store Store
	cache Cache
}

// NewSummarizer creates a summarizer. A nil cache makes Refresh compute and discard.
func NewSummarizer(store Store, cache Cache) *Summarizer {
	if cache == nil {
		cache = noCache{}
	}
	return &Summarizer{store: store, cache: cache}
}

// Refresh recomputes and caches the summary for date.
func (s *Summarizer) Refresh(ctx context.Context, date string) (Summary, error) {
	return refreshSummary(ctx, s.store, s.cache, date)
}

// Run consumes q until ctx ends or the queue closes.
func (s *Summarizer) Run(ctx context.Context, q queue.Queue) error {
	messages, err := q.Consume(ctx)
	if err != nil {
		return err
	}
	for msg := range messages {
		if msg.Topic != TopicAttendance || msg.Payload == "" {
			continue
		}
		sum, err := s.Refresh(ctx, msg.Payload)
		if err != nil {
			log.Printf("summary for %s failed: %v", msg.Payload, err)
			continue
		}
		log.Printf("summary for %s: %d present, %d absent", sum.Date, sum.Present, sum.Absent)
	}
	return nil
}
