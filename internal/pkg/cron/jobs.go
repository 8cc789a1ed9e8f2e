package cron

import (
	"context"
	"log/slog"
	"time"
)

// AbsenteeRunner posts the daily list of employees without a check-in.
type AbsenteeRunner interface {
	Run(ctx context.Context) error
}

// TokenPruner forgets revocations of admin tokens that have expired.
type TokenPruner interface {
	PruneRevoked(now time.Time) int
}

type CheckinJobs struct {
	absentees        AbsenteeRunner
	tokens           TokenPruner
	absenteeInterval time.Duration
}

func NewCheckinJobs(absentees AbsenteeRunner, tokens TokenPruner, absenteeInterval time.Duration) *CheckinJobs {
	return &CheckinJobs{
		absentees:        absentees,
		tokens:           tokens,
		absenteeInterval: absenteeInterval,
	}
}

func (j *CheckinJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("notify_absentees", j.absenteeInterval, j.NotifyAbsentees)
	scheduler.AddJob("prune_revoked_tokens", 1*time.Hour, j.PruneRevokedTokens)
}

func (j *CheckinJobs) NotifyAbsentees(ctx context.Context) error {
	return j.absentees.Run(ctx)
}

func (j *CheckinJobs) PruneRevokedTokens(ctx context.Context) error {
	if removed := j.tokens.PruneRevoked(time.Now()); removed > 0 {
		slog.Info("Cron: pruned revoked tokens", "count", removed)
	}
	return nil
}
