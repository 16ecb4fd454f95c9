package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo-amir99/langswap-server-go/pkg/logger"
)

type countingJob struct {
	name  string
	runs  atomic.Int32
	err   error
	panic bool
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Execute(context.Context) error {
	j.runs.Add(1)
	if j.panic {
		panic("boom")
	}
	return j.err
}

func TestSchedulerRunsJobsUntilStopped(t *testing.T) {
	s := NewScheduler(logger.Discard())
	ok := &countingJob{name: "ok"}
	failing := &countingJob{name: "failing", err: errors.New("nope")}
	panicking := &countingJob{name: "panicking", panic: true}
	s.AddJob(ok, 5*time.Millisecond)
	s.AddJob(failing, 5*time.Millisecond)
	s.AddJob(panicking, 5*time.Millisecond)

	s.Start(context.Background())
	require.Eventually(t, func() bool {
		return ok.runs.Load() >= 2 && failing.runs.Load() >= 2 && panicking.runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := ok.runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, ok.runs.Load())
}

func TestRunOnce(t *testing.T) {
	s := NewScheduler(logger.Discard())
	job := &countingJob{name: "sweep"}
	s.AddJob(job, time.Hour)
	s.AddJob(&countingJob{name: "disabled"}, 0)

	require.NoError(t, s.RunOnce(context.Background(), "sweep"))
	assert.Equal(t, int32(1), job.runs.Load())

	assert.Error(t, s.RunOnce(context.Background(), "disabled"))
	assert.Error(t, s.RunOnce(context.Background(), "missing"))
}
