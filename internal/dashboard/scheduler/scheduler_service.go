package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang-stock-sentiment/internal/dashboard/strategy"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService runs the background jobs on their cron schedules.
type SchedulerService interface {
	Register(spec string, timeout time.Duration, job strategy.JobExecutionStrategy) error
	// Start blocks until ctx is cancelled and the running jobs have returned.
	Start(ctx context.Context)
	// RunNow executes a job once, outside its schedule.
	RunNow(ctx context.Context, jobType entity.JobType) (string, error)
}

// FailureHook is called after a job run fails.
type FailureHook func(jobType entity.JobType, err error, result string)

// Option configures the scheduler service.
type Option func(*schedulerService)

// WithFailureHook registers hook to be called on every failed run.
func WithFailureHook(hook FailureHook) Option {
	return func(s *schedulerService) {
		s.onFailure = hook
	}
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(log *logger.Logger, opts ...Option) SchedulerService {
	adapter := cronLogger{log: log}
	s := &schedulerService{
		logger:     log,
		cronParser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		cron: cron.New(
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
		jobs:    make(map[entity.JobType]registeredJob),
		baseCtx: context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type registeredJob struct {
	job     strategy.JobExecutionStrategy
	timeout time.Duration
}

type schedulerService struct {
	logger     *logger.Logger
	cronParser cron.Parser
	cron       *cron.Cron

	onFailure FailureHook

	mu      sync.RWMutex
	jobs    map[entity.JobType]registeredJob
	baseCtx context.Context
}

// Register schedules job on the cron spec. Every run gets its own timeout.
func (s *schedulerService) Register(spec string, timeout time.Duration, job strategy.JobExecutionStrategy) error {
	schedule, err := s.cronParser.Parse(spec)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q for %s: %w", spec, job.GetType(), err)
	}

	s.mu.Lock()
	s.jobs[job.GetType()] = registeredJob{job: job, timeout: timeout}
	s.mu.Unlock()

	s.cron.Schedule(schedule, cron.FuncJob(func() {
		s.mu.RLock()
		ctx := s.baseCtx
		s.mu.RUnlock()
		_, _ = s.execute(ctx, job, timeout)
	}))

	s.logger.Info("Job scheduled",
		logger.StringField("job_type", string(job.GetType())),
		logger.StringField("cron", spec),
		logger.DurationField("timeout", timeout))
	return nil
}

func (s *schedulerService) Start(ctx context.Context) {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("Scheduler service started", logger.IntField("jobs", len(s.cron.Entries())))

	<-ctx.Done()
	s.logger.Info("Scheduler service stopping")
	<-s.cron.Stop().Done()
}

func (s *schedulerService) RunNow(ctx context.Context, jobType entity.JobType) (string, error) {
	s.mu.RLock()
	registered, ok := s.jobs[jobType]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("job %s is not registered", jobType)
	}
	return s.execute(ctx, registered.job, registered.timeout)
}

func (s *schedulerService) execute(ctx context.Context, job strategy.JobExecutionStrategy, timeout time.Duration) (result string, err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	started := time.Now()
	status := entity.StatusFailed
	err = fmt.Errorf("job %s panicked", job.GetType())

	utils.RunSafe(s.logger, func() {
		result, err = job.Execute(ctx)
		if err == nil {
			status = entity.StatusSuccess
		}
	})

	if err != nil {
		s.logger.Error("Job execution failed",
			logger.StringField("job_type", string(job.GetType())),
			logger.StringField("status", status),
			logger.DurationField("duration", time.Since(started)),
			logger.ErrorField(err))
		if s.onFailure != nil {
			utils.RunSafe(s.logger, func() { s.onFailure(job.GetType(), err, result) })
		}
		return result, err
	}

	s.logger.Info("Job executed",
		logger.StringField("job_type", string(job.GetType())),
		logger.StringField("status", status),
		logger.DurationField("duration", time.Since(started)),
		logger.StringField("result", result))
	return result, nil
}

// cronLogger adapts the service logger to cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
