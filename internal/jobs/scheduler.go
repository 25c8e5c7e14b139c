package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

type QuotationExpirer interface {
	ExpireBefore(ctx context.Context, day time.Time) (int64, error)
}

type ExpiryRecorder interface {
	AddExpiredQuotations(n int64)
}

type Scheduler struct {
	scheduler  gocron.Scheduler
	quotations QuotationExpirer
	recorder   ExpiryRecorder
	interval   time.Duration
	timeout    time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

func NewScheduler(quotations QuotationExpirer, recorder ExpiryRecorder, interval time.Duration, log zerolog.Logger) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{
		scheduler:  scheduler,
		quotations: quotations,
		recorder:   recorder,
		interval:   interval,
		timeout:    time.Minute,
		now:        time.Now,
		log:        log.With().Str("component", "jobs").Logger(),
	}, nil
}

// Start registers the jobs and starts the scheduler. The expiry job also runs
// once immediately.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.runExpireQuotations),
		gocron.WithName("quotation-expiry"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule quotation expiry: %w", err)
	}

	s.scheduler.Start()
	s.log.Info().Dur("interval", s.interval).Msg("scheduler started")
	return nil
}

func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *Scheduler) runExpireQuotations() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.ExpireQuotations(ctx); err != nil {
		s.log.Error().Err(err).Msg("quotation expiry failed")
	}
}

// ExpireQuotations marks DRAFT and SENT quotations valid until before today as EXPIRED.
func (s *Scheduler) ExpireQuotations(ctx context.Context) (int64, error) {
	y, m, d := s.now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	expired, err := s.quotations.ExpireBefore(ctx, today)
	if err != nil {
		return 0, err
	}
	if s.recorder != nil {
		s.recorder.AddExpiredQuotations(expired)
	}
	if expired > 0 {
		s.log.Info().Int64("count", expired).Msg("quotations expired")
	}
	return expired, nil
}
