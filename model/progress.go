package model

import "time"

// UserLesson marks a lesson as completed by a user. One row per
// (user, lesson); completing the same lesson twice is a no-op.
type UserLesson struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index:idx_user_lesson,unique"`
	LessonID    string `gorm:"index:idx_user_lesson,unique"`
	CompletedAt time.Time
}

// UserQuizAttempt is append-only. Retaking a quiz adds a new row; the
// newest row per quiz is the one that counts for averages.
type UserQuizAttempt struct {
	ID             string `gorm:"primaryKey"`
	UserID         string `gorm:"index"`
	QuizID         string `gorm:"index"`
	Score          int
	CorrectAnswers int
	TotalQuestions int
	Answers        string `gorm:"type:text"`
	CompletedAt    time.Time
}

type UserCaseAttempt struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index"`
	CaseID      string `gorm:"index"`
	TotalScore  int
	Decisions   string `gorm:"type:text"`
	CompletedAt time.Time
}

type UserGameScore struct {
	ID           string `gorm:"primaryKey"`
	UserID       string `gorm:"index"`
	GameID       string `gorm:"index"`
	Score        int
	PerfectScore bool
	CompletedAt  time.Time
}

type ActivityLog struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Action    string
	Item      string
	Type      string
	Points    int
	CreatedAt time.Time `gorm:"index"`
}

// UserProgress is the single per-user aggregate row. TotalPoints and
// StudyTimeMinutes only ever move through SQL-side increments so that
// concurrent sessions cannot overwrite each other's contributions.
type UserProgress struct {
	ID               string `gorm:"primaryKey"`
	UserID           string `gorm:"uniqueIndex"`
	OverallProgress  int
	AverageScore     int
	StudyTimeMinutes int
	TotalPoints      int
	MedalsCount      int
	CurrentStreak    int
	LastActivityAt   time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
