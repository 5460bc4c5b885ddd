package dto

import "time"

// ==================== PROGRESS DTOs ====================

type ProgressResponse struct {
	OverallProgress  int `json:"overall_progress"`
	AverageScore     int `json:"average_score"`
	StudyTimeMinutes int `json:"study_time_minutes"`
	TotalPoints      int `json:"total_points"`
	MedalsCount      int `json:"medals_count"`
	CurrentStreak    int `json:"current_streak"`
}

type CompleteLessonResponse struct {
	LessonID        string `json:"lesson_id"`
	AlreadyComplete bool   `json:"already_complete"`
	OverallProgress int    `json:"overall_progress"`
	PointsEarned    int    `json:"points_earned"`
}

type CompletedLessonsResponse struct {
	LessonIDs []string `json:"lesson_ids"`
}

// ==================== DASHBOARD DTOs ====================

type DashboardResponse struct {
	Progress       ProgressResponse `json:"progress"`
	RecentActivity []ActivityEntry  `json:"recent_activity"`
	QuizScores     []QuizScoreBar   `json:"quiz_scores"`
	WeeklyPoints   []WeeklyBucket   `json:"weekly_points"`
}

type ActivityEntry struct {
	Action    string    `json:"action"`
	Item      string    `json:"item,omitempty"`
	Type      string    `json:"type"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

type QuizScoreBar struct {
	QuizID string `json:"quiz_id"`
	Title  string `json:"title"`
	Score  int    `json:"score"`
}

type WeeklyBucket struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// ==================== STUDY TIME DTOs ====================

type HeartbeatResponse struct {
	Active         bool `json:"active"`
	AccruedSeconds int  `json:"accrued_seconds"`
	MinutesFlushed int  `json:"minutes_flushed"`
}
