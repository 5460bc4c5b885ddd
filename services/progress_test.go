package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agile-academy/academy_api/model"
	"github.com/agile-academy/academy_api/shared"
)

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"no lessons", 0, 0, 0},
		{"none complete", 0, 7, 0},
		{"all complete", 7, 7, 100},
		{"rounds up", 2, 3, 67},
		{"rounds down", 1, 3, 33},
		{"clamped above", 9, 7, 100},
		{"negative total", 3, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompletionPercentage(tt.completed, tt.total))
		})
	}
}

func TestLatestQuizScores(t *testing.T) {
	attempts := []model.UserQuizAttempt{
		{QuizID: "quiz-roles", Score: 50},
		{QuizID: "quiz-eventos", Score: 80},
		{QuizID: "quiz-roles", Score: 90},
	}

	latest := LatestQuizScores(attempts)

	assert.Len(t, latest, 2)
	assert.Equal(t, 90, latest["quiz-roles"])
	assert.Equal(t, 80, latest["quiz-eventos"])
}

func TestAverageScore(t *testing.T) {
	assert.Equal(t, 0, AverageScore(nil))
	assert.Equal(t, 85, AverageScore(map[string]int{"a": 90, "b": 80}))
	assert.Equal(t, 67, AverageScore(map[string]int{"a": 100, "b": 50, "c": 50}))
}

func day(d int, hour int) time.Time {
	return time.Date(2026, 3, d, hour, 0, 0, 0, time.UTC)
}

func TestStreakDays(t *testing.T) {
	tests := []struct {
		name       string
		timestamps []time.Time
		want       int
	}{
		{"no activity", nil, 0},
		{"single day", []time.Time{day(10, 9)}, 1},
		{"multiple entries same day", []time.Time{day(10, 9), day(10, 21)}, 1},
		{"three consecutive days", []time.Time{day(10, 9), day(11, 9), day(12, 9)}, 3},
		{"gap breaks streak", []time.Time{day(8, 9), day(10, 9), day(11, 9)}, 2},
		{"old activity ignored", []time.Time{day(1, 9), day(11, 9), day(12, 9)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StreakDays(tt.timestamps, DefaultStreakGapDays))
		})
	}
}

func TestStreakDaysCustomGap(t *testing.T) {
	// Mon and Wed: broken at 1.5 days, intact at 2.5
	timestamps := []time.Time{day(9, 9), day(11, 9)}

	assert.Equal(t, 1, StreakDays(timestamps, 1.5))
	assert.Equal(t, 2, StreakDays(timestamps, 2.5))
}

func TestBucketPointsByWeek(t *testing.T) {
	now := day(30, 12)

	events := []model.ActivityLog{
		{Points: 100, CreatedAt: now.Add(-2 * time.Hour)},                  // current week
		{Points: 50, CreatedAt: now.Add(-8 * 24 * time.Hour)},              // one week back
		{Points: 30, CreatedAt: now.Add(-8*24*time.Hour - 2*time.Hour)},    // same bucket
		{Points: 999, CreatedAt: now.Add(-7 * 7 * 24 * time.Hour)},         // outside window
	}

	buckets := BucketPointsByWeek(events, 6, now)

	assert.Len(t, buckets, 6)
	assert.Equal(t, "Semana 6", buckets[5].Label)
	assert.Equal(t, 100, buckets[5].Points)
	assert.Equal(t, 80, buckets[4].Points)
	assert.Equal(t, 0, buckets[0].Points)
}

func TestBucketPointsByWeekEmpty(t *testing.T) {
	buckets := BucketPointsByWeek(nil, 6, day(30, 12))

	assert.Len(t, buckets, 1)
	assert.Equal(t, "Sin datos", buckets[0].Label)
	assert.Equal(t, 0, buckets[0].Points)
}

func TestPerformanceLabel(t *testing.T) {
	assert.Equal(t, shared.PerformanceExcellent, PerformanceLabel(100))
	assert.Equal(t, shared.PerformanceExcellent, PerformanceLabel(80))
	assert.Equal(t, shared.PerformanceGood, PerformanceLabel(79))
	assert.Equal(t, shared.PerformanceGood, PerformanceLabel(60))
	assert.Equal(t, shared.PerformanceRegular, PerformanceLabel(59))
	assert.Equal(t, shared.PerformanceRegular, PerformanceLabel(0))
}

func TestLastQuizBars(t *testing.T) {
	attempts := []model.UserQuizAttempt{
		{QuizID: "q1", Score: 40},
		{QuizID: "q2", Score: 70},
		{QuizID: "q1", Score: 95},
		{QuizID: "q3", Score: 60},
	}

	bars := lastQuizBars(attempts, 6)

	assert.Len(t, bars, 3)
	assert.Equal(t, "q2", bars[0].QuizID)
	assert.Equal(t, 95, bars[1].Score)
	assert.Equal(t, "Quiz 1", bars[0].Title)
	assert.Equal(t, "Quiz 3", bars[2].Title)
}

func TestLastQuizBarsTruncates(t *testing.T) {
	attempts := []model.UserQuizAttempt{
		{QuizID: "q1", Score: 10},
		{QuizID: "q2", Score: 20},
		{QuizID: "q3", Score: 30},
	}

	bars := lastQuizBars(attempts, 2)

	assert.Len(t, bars, 2)
	assert.Equal(t, "q2", bars[0].QuizID)
	assert.Equal(t, "q3", bars[1].QuizID)
}
