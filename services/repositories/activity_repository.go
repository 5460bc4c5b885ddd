package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agile-academy/academy_api/model"
)

type ActivityRepository struct {
	BaseRepository
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ActivityRepository) LogActivity(entry *model.ActivityLog) error {
	if entry.ID == "" {
		id, _ := uuid.NewV7()
		entry.ID = id.String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return ds.db.Create(entry).Error
}

func (ds *ActivityRepository) GetRecentActivity(userID string, limit int) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	if err := ds.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// GetActivityTimestamps returns every activity timestamp for the user,
// oldest first. Streak calculation works off this list.
func (ds *ActivityRepository) GetActivityTimestamps(userID string) ([]time.Time, error) {
	var timestamps []time.Time
	if err := ds.db.Model(&model.ActivityLog{}).Where("user_id = ?", userID).
		Order("created_at").Pluck("created_at", &timestamps).Error; err != nil {
		return nil, err
	}
	return timestamps, nil
}

// GetPointEvents returns point-carrying activity since the cutoff, for
// weekly bucketing.
func (ds *ActivityRepository) GetPointEvents(userID string, since time.Time) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	if err := ds.db.Where("user_id = ? AND points > 0 AND created_at >= ?", userID, since).
		Order("created_at").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
