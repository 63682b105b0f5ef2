package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	name     string
	schedule string
	err      error
	runs     int
}

func (f *fakeJob) Name() string     { return f.name }
func (f *fakeJob) Schedule() string { return f.schedule }

func (f *fakeJob) Execute(context.Context) error {
	f.runs++
	return f.err
}

func TestRegisterAndRunByName(t *testing.T) {
	s := NewScheduler()
	hourly := &fakeJob{name: "hourly", schedule: "@every 1h"}
	manual := &fakeJob{name: "manual"}

	require.NoError(t, s.Register(hourly))
	require.NoError(t, s.Register(manual))
	assert.Equal(t, []string{"hourly", "manual"}, s.Jobs())

	require.NoError(t, s.RunByName(context.Background(), "manual"))
	assert.Equal(t, 1, manual.runs)
	assert.Equal(t, 0, hourly.runs)
}

func TestRegisterRejectsBadSchedule(t *testing.T) {
	s := NewScheduler()
	err := s.Register(&fakeJob{name: "broken", schedule: "every tuesday"})
	assert.Error(t, err)
	assert.Empty(t, s.Jobs())
}

func TestRunByNameErrors(t *testing.T) {
	s := NewScheduler()
	boom := errors.New("boom")
	require.NoError(t, s.Register(&fakeJob{name: "failing", err: boom}))

	assert.ErrorIs(t, s.RunByName(context.Background(), "failing"), boom)
	assert.Error(t, s.RunByName(context.Background(), "missing"))
}

func TestStartStop(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Register(&fakeJob{name: "hourly", schedule: "@every 1h"}))
	s.Start()
	s.Stop(context.Background())
}
