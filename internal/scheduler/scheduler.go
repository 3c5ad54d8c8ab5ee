// Package scheduler runs jobs on wall-clock policies: daily at a fixed
// time, every N minutes, or hourly at a fixed minute.
//
// A single loop polls at a fixed granularity and runs due jobs to
// completion, sequentially, before the next check. Jobs are assumed
// short-running; there is no queue and no overlap.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"fxsignal/internal/markethours"
)

const pollInterval = 5 * time.Second

// Job is a scheduled unit of work.
type Job struct {
	Name string
	Run  func(ctx context.Context)
	next func(after time.Time) time.Time

	due time.Time
}

// Scheduler runs registered jobs on their policies.
type Scheduler struct {
	jobs []*Job
	loc  *time.Location
	now  func() time.Time
	poll time.Duration
}

// New creates a Scheduler evaluating job times in loc.
func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = markethours.Dhaka
	}
	return &Scheduler{loc: loc, now: time.Now, poll: pollInterval}
}

// DailyAt registers a job that runs once per day at hour:minute.
func (s *Scheduler) DailyAt(hour, minute int, name string, run func(ctx context.Context)) {
	loc := s.loc
	s.add(&Job{
		Name: name,
		Run:  run,
		next: func(after time.Time) time.Time {
			t := after.In(loc)
			due := time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, loc)
			if !due.After(after) {
				due = due.AddDate(0, 0, 1)
			}
			return due
		},
	})
}

// Every registers a job that runs at a fixed interval.
func (s *Scheduler) Every(interval time.Duration, name string, run func(ctx context.Context)) {
	s.add(&Job{
		Name: name,
		Run:  run,
		next: func(after time.Time) time.Time { return after.Add(interval) },
	})
}

// HourlyAt registers a job that runs once per hour at the given minute.
func (s *Scheduler) HourlyAt(minute int, name string, run func(ctx context.Context)) {
	loc := s.loc
	s.add(&Job{
		Name: name,
		Run:  run,
		next: func(after time.Time) time.Time {
			t := after.In(loc)
			due := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, loc)
			if !due.After(after) {
				due = due.Add(time.Hour)
			}
			return due
		},
	})
}

func (s *Scheduler) add(j *Job) {
	j.due = j.next(s.now())
	s.jobs = append(s.jobs, j)
}

// Run polls until ctx is cancelled. Due jobs run sequentially; a panicking
// job is recovered and logged, never fatal to the loop.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runPending(ctx)
		}
	}
}

func (s *Scheduler) runPending(ctx context.Context) {
	now := s.now()
	for _, j := range s.jobs {
		if now.Before(j.due) {
			continue
		}
		s.runOne(ctx, j)
		j.due = j.next(now)
	}
}

func (s *Scheduler) runOne(ctx context.Context, j *Job) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("job panicked", "job", j.Name, "panic", r)
		}
	}()
	start := s.now()
	j.Run(ctx)
	slog.Debug("job done", "job", j.Name, "took", s.now().Sub(start))
}
