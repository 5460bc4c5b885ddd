package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agile-academy/academy_api/model"
)

type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== PROGRESS ROW METHODS ====================

func (ds *ProgressRepository) GetProgress(userID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	if err := ds.db.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetOrCreateProgress returns the user's aggregate row, creating a zeroed
// one on first access.
func (ds *ProgressRepository) GetOrCreateProgress(userID string) (*model.UserProgress, error) {
	progress, err := ds.GetProgress(userID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id, _ := uuid.NewV7()
	progress = &model.UserProgress{
		ID:        id.String(),
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := ds.db.Create(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// AddPoints increments total_points in SQL so concurrent writers never
// lose each other's updates.
func (ds *ProgressRepository) AddPoints(userID string, points int) error {
	return ds.db.Model(&model.UserProgress{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_points":     gorm.Expr("total_points + ?", points),
			"last_activity_at": time.Now(),
			"updated_at":       time.Now(),
		}).Error
}

func (ds *ProgressRepository) AddStudyMinutes(userID string, minutes int) error {
	return ds.db.Model(&model.UserProgress{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"study_time_minutes": gorm.Expr("study_time_minutes + ?", minutes),
			"last_activity_at":   time.Now(),
			"updated_at":         time.Now(),
		}).Error
}

func (ds *ProgressRepository) UpdateOverallProgress(userID string, percent int) error {
	return ds.db.Model(&model.UserProgress{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"overall_progress": percent,
			"updated_at":       time.Now(),
		}).Error
}

func (ds *ProgressRepository) UpdateAverageScore(userID string, score int) error {
	return ds.db.Model(&model.UserProgress{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"average_score": score,
			"updated_at":    time.Now(),
		}).Error
}

func (ds *ProgressRepository) UpdateMedalsCount(userID string, medals int) error {
	return ds.db.Model(&model.UserProgress{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"medals_count": medals,
			"updated_at":   time.Now(),
		}).Error
}

func (ds *ProgressRepository) UpdateStreak(userID string, streak int) error {
	return ds.db.Model(&model.UserProgress{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"current_streak": streak,
			"updated_at":     time.Now(),
		}).Error
}

// ==================== LESSON COMPLETION METHODS ====================

// CompleteLesson records a lesson completion. Returns false when the
// lesson was already completed; the unique index makes a concurrent
// double-complete collapse into a single row.
func (ds *ProgressRepository) CompleteLesson(userID, lessonID string) (bool, error) {
	var existing model.UserLesson
	err := ds.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	id, _ := uuid.NewV7()
	row := model.UserLesson{
		ID:          id.String(),
		UserID:      userID,
		LessonID:    lessonID,
		CompletedAt: time.Now(),
	}
	if err := ds.db.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (ds *ProgressRepository) GetCompletedLessonIDs(userID string) ([]string, error) {
	var ids []string
	if err := ds.db.Model(&model.UserLesson{}).Where("user_id = ?", userID).
		Order("completed_at").Pluck("lesson_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (ds *ProgressRepository) CountCompletedLessons(userID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.UserLesson{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ==================== ATTEMPT METHODS ====================

func (ds *ProgressRepository) CreateQuizAttempt(attempt *model.UserQuizAttempt) error {
	if attempt.ID == "" {
		id, _ := uuid.NewV7()
		attempt.ID = id.String()
	}
	return ds.db.Create(attempt).Error
}

// GetQuizAttempts returns attempts oldest first, so the last row seen per
// quiz is the most recent one.
func (ds *ProgressRepository) GetQuizAttempts(userID string) ([]model.UserQuizAttempt, error) {
	var attempts []model.UserQuizAttempt
	if err := ds.db.Where("user_id = ?", userID).
		Order("completed_at").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (ds *ProgressRepository) CreateCaseAttempt(attempt *model.UserCaseAttempt) error {
	if attempt.ID == "" {
		id, _ := uuid.NewV7()
		attempt.ID = id.String()
	}
	return ds.db.Create(attempt).Error
}

func (ds *ProgressRepository) GetCaseAttempts(userID string) ([]model.UserCaseAttempt, error) {
	var attempts []model.UserCaseAttempt
	if err := ds.db.Where("user_id = ?", userID).
		Order("completed_at").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (ds *ProgressRepository) CreateGameScore(score *model.UserGameScore) error {
	if score.ID == "" {
		id, _ := uuid.NewV7()
		score.ID = id.String()
	}
	return ds.db.Create(score).Error
}

func (ds *ProgressRepository) GetGameScores(userID string) ([]model.UserGameScore, error) {
	var scores []model.UserGameScore
	if err := ds.db.Where("user_id = ?", userID).
		Order("completed_at").Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
