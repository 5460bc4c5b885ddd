package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStudyTrackerAccruesWholeMinutes(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tracker := &studyTracker{lastActivity: start}

	total := 0
	now := start
	for i := 0; i < 13; i++ {
		now = now.Add(defaultStudyTick)
		tracker.lastActivity = now // user stays active
		total += tracker.tick(now, defaultStudyTick, defaultStudyIdle)
	}

	// 13 ticks of 5s = 65s: one minute flushed, 5s carried over
	assert.Equal(t, 1, total)
	assert.Equal(t, 5*time.Second, tracker.accrued)
}

func TestStudyTrackerIdleStopsAccrual(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tracker := &studyTracker{lastActivity: start}

	now := start.Add(defaultStudyIdle)
	flushed := tracker.tick(now, defaultStudyTick, defaultStudyIdle)

	assert.Equal(t, 0, flushed)
	assert.Equal(t, time.Duration(0), tracker.accrued)
}

func TestStudyTrackerResumesAfterIdle(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tracker := &studyTracker{lastActivity: start, accrued: 30 * time.Second}

	// idle: the tick is lost but the accrued balance stays
	idle := start.Add(2 * time.Minute)
	assert.Equal(t, 0, tracker.tick(idle, defaultStudyTick, defaultStudyIdle))
	assert.Equal(t, 30*time.Second, tracker.accrued)

	// heartbeat arrives, accrual resumes
	tracker.lastActivity = idle
	assert.Equal(t, 0, tracker.tick(idle.Add(defaultStudyTick), defaultStudyTick, defaultStudyIdle))
	assert.Equal(t, 35*time.Second, tracker.accrued)
}

func TestStudyTrackerDrain(t *testing.T) {
	tracker := &studyTracker{accrued: 2*time.Minute + 40*time.Second}

	assert.Equal(t, 2, tracker.drain())
	assert.Equal(t, 40*time.Second, tracker.accrued)

	// remainder alone never flushes
	assert.Equal(t, 0, tracker.drain())
	assert.Equal(t, 40*time.Second, tracker.accrued)
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("STUDY_TICK_MS", "2500")
	assert.Equal(t, 2500*time.Millisecond, envDuration("STUDY_TICK_MS", defaultStudyTick))

	t.Setenv("STUDY_TICK_MS", "not-a-number")
	assert.Equal(t, defaultStudyTick, envDuration("STUDY_TICK_MS", defaultStudyTick))

	assert.Equal(t, defaultStudyIdle, envDuration("STUDY_UNSET_MS", defaultStudyIdle))
}
