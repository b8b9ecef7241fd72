package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/cityinfo-aggregation/internal/cityinfo"
)

const probeTimeout = 10 * time.Second

// Prober checks upstream reachability.
type Prober interface {
	ProbeUpstream(ctx context.Context) error
}

// Scheduler periodically probes the upstream API and keeps the latest result.
type Scheduler struct {
	scheduler *gocron.Scheduler
	prober    Prober
	interval  time.Duration

	mu     sync.RWMutex
	status cityinfo.UpstreamStatus
}

// New creates a new Scheduler.
func New(interval time.Duration, prober Prober) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		prober:    prober,
		interval:  interval,
	}
}

// Start schedules the probe job and starts the underlying scheduler. The first
// probe runs immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Info().Msg("scheduler: upstream probe disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.probe)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Status returns the outcome of the most recent probe.
func (s *Scheduler) Status() cityinfo.UpstreamStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Scheduler) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	status := cityinfo.UpstreamStatus{
		Checked:   true,
		CheckedAt: time.Now().UTC(),
	}
	if err := s.prober.ProbeUpstream(ctx); err != nil {
		log.Warn().Err(err).Msg("scheduler: upstream probe failed")
		status.Error = err.Error()
	} else {
		status.Reachable = true
	}

	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}
