package attendance

import (
	"context"
	"fmt"
	"log"

	"rollcall/internal/apperror"
	"rollcall/internal/auth"
	"rollcall/internal/metrics"
	"rollcall/internal/queue"
)

// TopicAttendance marks queue messages whose payload is a date whose records changed.
const TopicAttendance = "attendance"

// Store is the ledger persistence.
type Store interface {
	Upsert(ctx context.Context, rec Record) (inserted bool, version int64, err error)
	Get(ctx context.Context, rollNum, date string) (*Record, error)
	DailySummary(ctx context.Context, date string) (Summary, error)
}

// Publisher announces changed dates to background workers.
type Publisher interface {
	Publish(ctx context.Context, msg queue.Message) error
}

// Service is the attendance ledger.
type Service struct {
	store Store
	cache Cache
	pub   Publisher
}

// NewService creates a ledger. cache and pub may be nil.
func NewService(store Store, cache Cache, pub Publisher) *Service {
	if cache == nil {
		cache = noCache{}
	}
	return &Service{store: store, cache: cache, pub: pub}
}

// Submit upserts every record in order. The batch is validated up front but not written
// atomically: when a write fails, earlier records stay applied and the rest are skipped.
func (s *Service) Submit(ctx context.Context, records []Record) error {
	valid := make([]Record, len(records))
	for i, rec := range records {
		v, err := rec.validate(i)
		if err != nil {
			return err
		}
		valid[i] = v
	}

	var dates []string
	seen := make(map[string]bool)
	defer func() { s.announce(ctx, dates) }()

	for _, rec := range valid {
		inserted, version, err := s.store.Upsert(ctx, rec)
		if err != nil {
			return fmt.Errorf("upsert attendance %s/%s: %w", rec.RollNum, rec.Date, err)
		}
		if inserted {
			metrics.AttendanceUpserts.WithLabelValues("inserted").Inc()
		} else {
			metrics.AttendanceUpserts.WithLabelValues("updated").Inc()
		}
		if err := s.cache.PutStatus(ctx, rec.RollNum, rec.Date, rec.Status, version); err != nil {
			log.Printf("attendance cache write %s/%s failed: %v", rec.RollNum, rec.Date, err)
		}
		if !seen[rec.Date] {
			seen[rec.Date] = true
			dates = append(dates, rec.Date)
		}
	}

	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		log.Printf("attendance: %d records submitted by %s", len(valid), claims.Username)
	}
	return nil
}

// GetForDate returns the status stored for (rollNum, date); a missing record means Absent.
func (s *Service) GetForDate(ctx context.Context, rollNum, date string) (Status, error) {
	if rollNum == "" || date == "" {
		return "", apperror.NewValidation("rollnum and date are required.")
	}
	if st, ok, err := s.cache.Status(ctx, rollNum, date); err != nil {
		metrics.CacheLookups.WithLabelValues("status", "error").Inc()
		log.Printf("attendance cache read %s/%s failed: %v", rollNum, date, err)
	} else if ok {
		metrics.CacheLookups.WithLabelValues("status", "hit").Inc()
		return st, nil
	} else {
		metrics.CacheLookups.WithLabelValues("status", "miss").Inc()
	}

	rec, err := s.store.Get(ctx, rollNum, date)
	if err != nil {
		return "", fmt.Errorf("get attendance: %w", err)
	}
	st, version := Absent, int64(0)
	if rec != nil {
		st, version = rec.Status, rec.Version
	}
	if err := s.cache.PutStatus(ctx, rollNum, date, st, version); err != nil {
		log.Printf("attendance cache write %s/%s failed: %v", rollNum, date, err)
	}
	return st, nil
}

// Summary returns present/absent counts for date.
func (s *Service) Summary(ctx context.Context, date string) (Summary, error) {
	if date == "" {
		return Summary{}, apperror.NewValidation("date is required.")
	}
	if sum, ok, err := s.cache.Summary(ctx, date); err != nil {
		metrics.CacheLookups.WithLabelValues("summary", "error").Inc()
		log.Printf("attendance summary cache read %s failed: %v", date, err)
	} else if ok {
		metrics.CacheLookups.WithLabelValues("summary", "hit").Inc()
		return sum, nil
	} else {
		metrics.CacheLookups.WithLabelValues("summary", "miss").Inc()
	}
	return refreshSummary(ctx, s.store, s.cache, date)
}

// announce drops the cached summaries of the changed dates and queues their recount.
func (s *Service) announce(ctx context.Context, dates []string) {
	for _, date := range dates {
		if err := s.cache.DropSummary(ctx, date); err != nil {
			log.Printf("attendance summary cache drop %s failed: %v", date, err)
		}
		if s.pub == nil {
			continue
		}
		if err := s.pub.Publish(ctx, queue.Message{Topic: TopicAttendance, Payload: date}); err != nil {
			log.Printf("queue publish for %s failed: %v", date, err)
		}
	}
}

func refreshSummary(ctx context.Context, store Store, cache Cache, date string) (Summary, error) {
	sum, err := store.DailySummary(ctx, date)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize attendance: %w", err)
	}
	if err := cache.SetSummary(ctx, sum); err != nil {
		log.Printf("attendance summary cache write %s failed: %v", date, err)
	}
	return sum, nil
}
