package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"leaveadmin/internal/platform/config"
)

const (
	JobDailyDigest   = "daily_email_digest"
	JobMonthlyLeaves = "monthly_leave_check"
	JobAnnualReset   = "annual_pool_reset"
)

// Service runs the daily notification jobs on a fixed wall-clock trigger.
// Job failures are recorded and logged, never propagated to callers.
type Service struct {
	DB    *pgxpool.Pool
	Cfg   config.Config
	queue chan job
	daily []job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config) *Service {
	return &Service{
		DB:    db,
		Cfg:   cfg,
		queue: make(chan job, 64),
	}
}

// RegisterDaily adds a job to the daily schedule. Must be called before Start.
func (s *Service) RegisterDaily(jobType string, run func(context.Context) (any, error)) {
	s.daily = append(s.daily, job{Type: jobType, Run: run})
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	go s.scheduleDaily(ctx)
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleDaily(ctx context.Context) {
	loc, err := time.LoadLocation(s.Cfg.DailyEmailTimeZone)
	if err != nil {
		slog.Warn("invalid daily email time zone, falling back to UTC", "tz", s.Cfg.DailyEmailTimeZone, "err", err)
		loc = time.UTC
	}

	for {
		now := time.Now().In(loc)
		next := NextDailyRun(now, s.Cfg.DailyEmailHour)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			for _, j := range s.daily {
				s.Enqueue(j.Type, j.Run)
			}
		}
	}
}

// NextDailyRun returns the next trigger at the given hour, local to now. If
// today's trigger has already passed, the run moves to tomorrow.
func NextDailyRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
