package service

import (
	"context"
	"fmt"
	"time"

	"wallet-atm/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SessionJanitor evicts idle sessions on a cron schedule.
type SessionJanitor struct {
	cron       *cron.Cron
	controller ports.SessionController
	ttl        time.Duration
	log        zerolog.Logger
}

// NewSessionJanitor registers the sweep under spec, e.g. "@every 5m".
func NewSessionJanitor(controller ports.SessionController, spec string, ttl time.Duration, log zerolog.Logger) (*SessionJanitor, error) {
	j := &SessionJanitor{
		cron:       cron.New(),
		controller: controller,
		ttl:        ttl,
		log:        log.With().Str("component", "session_janitor").Logger(),
	}
	if _, err := j.cron.AddFunc(spec, j.Sweep); err != nil {
		return nil, fmt.Errorf("register idle sweep %q: %w", spec, err)
	}
	return j, nil
}

func (j *SessionJanitor) Start() {
	j.cron.Start()
	j.log.Info().Dur("idle_ttl", j.ttl).Msg("Session janitor started")
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *SessionJanitor) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info().Msg("Session janitor stopped")
}

// Sweep runs one eviction pass.
func (j *SessionJanitor) Sweep() {
	evicted, err := j.controller.EvictIdle(context.Background(), j.ttl)
	if err != nil {
		j.log.Error().Err(err).Msg("Idle session sweep failed")
		return
	}
	if evicted > 0 {
		j.log.Info().Int("evicted", evicted).Msg("Idle sessions evicted")
	}
}
