package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/agile-academy/academy_api/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.UserProgress{},
		&model.UserLesson{},
		&model.UserQuizAttempt{},
		&model.UserCaseAttempt{},
		&model.UserGameScore{},
		&model.ActivityLog{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestGetOrCreateProgress(t *testing.T) {
	repo := NewProgressRepository(testDB(t))

	created, err := repo.GetOrCreateProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, 0, created.TotalPoints)

	again, err := repo.GetOrCreateProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

func TestAddPointsIncrements(t *testing.T) {
	repo := NewProgressRepository(testDB(t))

	_, err := repo.GetOrCreateProgress("user-1")
	require.NoError(t, err)

	require.NoError(t, repo.AddPoints("user-1", 100))
	require.NoError(t, repo.AddPoints("user-1", 50))

	progress, err := repo.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 150, progress.TotalPoints)
}

func TestAddStudyMinutesIncrements(t *testing.T) {
	repo := NewProgressRepository(testDB(t))

	_, err := repo.GetOrCreateProgress("user-1")
	require.NoError(t, err)

	require.NoError(t, repo.AddStudyMinutes("user-1", 3))
	require.NoError(t, repo.AddStudyMinutes("user-1", 2))

	progress, err := repo.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, progress.StudyTimeMinutes)
}

func TestCompleteLessonIdempotent(t *testing.T) {
	repo := NewProgressRepository(testDB(t))

	created, err := repo.CompleteLesson("user-1", "scrum-1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CompleteLesson("user-1", "scrum-1")
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.CountCompletedLessons("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetCompletedLessonIDs(t *testing.T) {
	repo := NewProgressRepository(testDB(t))

	for _, lessonID := range []string{"fundamentos-1", "scrum-1"} {
		_, err := repo.CompleteLesson("user-1", lessonID)
		require.NoError(t, err)
	}
	_, err := repo.CompleteLesson("user-2", "kanban-1")
	require.NoError(t, err)

	ids, err := repo.GetCompletedLessonIDs("user-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fundamentos-1", "scrum-1"}, ids)
}

func TestQuizAttemptsOrderedOldestFirst(t *testing.T) {
	repo := NewProgressRepository(testDB(t))
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	for i, score := range []int{50, 70, 90} {
		require.NoError(t, repo.CreateQuizAttempt(&model.UserQuizAttempt{
			UserID:      "user-1",
			QuizID:      "quiz-roles",
			Score:       score,
			Answers:     "[]",
			CompletedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	attempts, err := repo.GetQuizAttempts("user-1")
	require.NoError(t, err)
	require.Len(t, attempts, 3)
	assert.Equal(t, 50, attempts[0].Score)
	assert.Equal(t, 90, attempts[2].Score)
}
