// Package jobs runs the periodic maintenance work: counter reconciliation
// and dashboard cache warmup.
package jobs

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"opsdash/internal/metrics"
	"opsdash/internal/models"

	"github.com/go-co-op/gocron/v2"
)

const (
	StatsReconcileJob  = "stats-reconcile"
	DashboardWarmupJob = "dashboard-warmup"
)

// Reconciler recomputes every user's stored counters.
type Reconciler interface {
	RecomputeAll(ctx context.Context) (int, error)
}

// SummaryRefresher rebuilds the cached dashboard summary.
type SummaryRefresher interface {
	Refresh(ctx context.Context) (*models.DashboardSummary, error)
}

type Intervals struct {
	StatsReconcile  time.Duration
	DashboardWarmup time.Duration
}

// JobScheduler owns a gocron scheduler. Every job runs in singleton mode so a
// slow run is never overlapped by the next tick.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	reconciler Reconciler
	dashboard  SummaryRefresher
	jobs       map[string]gocron.Job
	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewJobScheduler(reconciler Reconciler, dashboard SummaryRefresher, intervals Intervals) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	js := &JobScheduler{
		scheduler:  scheduler,
		reconciler: reconciler,
		dashboard:  dashboard,
		jobs:       make(map[string]gocron.Job),
		ctx:        ctx,
		cancel:     cancel,
	}

	if err := js.register(StatsReconcileJob, intervals.StatsReconcile, js.reconcileStats); err != nil {
		cancel()
		return nil, err
	}
	if err := js.register(DashboardWarmupJob, intervals.DashboardWarmup, js.warmDashboard); err != nil {
		cancel()
		return nil, err
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
	return js, nil
}

func (js *JobScheduler) register(name string, interval time.Duration, task func(context.Context) error) error {
	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.run(name, task)),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	js.mu.Lock()
	js.jobs[name] = job
	js.mu.Unlock()
	return nil
}

// run wraps a task with logging and the job run counter.
func (js *JobScheduler) run(name string, task func(context.Context) error) func() {
	return func() {
		start := time.Now()
		if err := task(js.ctx); err != nil {
			metrics.JobRuns.WithLabelValues(name, "error").Inc()
			log.Printf("JOBS: %s failed after %v: %v", name, time.Since(start), err)
			return
		}
		metrics.JobRuns.WithLabelValues(name, "success").Inc()
	}
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop cancels in-flight runs and waits for them to return.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	js.cancel()
	return js.scheduler.Shutdown()
}

// RunNow triggers a registered job outside its schedule.
func (js *JobScheduler) RunNow(name string) error {
	js.mu.RLock()
	job, ok := js.jobs[name]
	js.mu.RUnlock()
	if !ok {
		return gocron.ErrJobNotFound
	}
	return job.RunNow()
}

// JobNames lists the registered jobs in name order.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (js *JobScheduler) reconcileStats(ctx context.Context) error {
	n, err := js.reconciler.RecomputeAll(ctx)
	if err != nil {
		return err
	}
	log.Printf("JOBS: reconciled counters for %d users", n)
	return nil
}

func (js *JobScheduler) warmDashboard(ctx context.Context) error {
	_, err := js.dashboard.Refresh(ctx)
	return err
}
