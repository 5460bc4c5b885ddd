package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agile-academy/academy_api/model"
)

type ContentRepository struct {
	BaseRepository
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== LESSON METHODS ====================

func (ds *ContentRepository) CreateLesson(lesson *model.Lesson) (*model.Lesson, error) {
	if lesson.ID == "" {
		id, _ := uuid.NewV7()
		lesson.ID = id.String()
	}
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = time.Now()

	if err := ds.db.Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (ds *ContentRepository) GetLesson(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := ds.db.Where("id = ?", id).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (ds *ContentRepository) GetLessons() ([]model.Lesson, error) {
	var lessons []model.Lesson
	if err := ds.db.Order("section_id, sort_order").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (ds *ContentRepository) CountLessons() (int64, error) {
	var count int64
	if err := ds.db.Model(&model.Lesson{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ==================== QUIZ METHODS ====================

func (ds *ContentRepository) CreateQuiz(quiz *model.Quiz) (*model.Quiz, error) {
	if quiz.ID == "" {
		id, _ := uuid.NewV7()
		quiz.ID = id.String()
	}
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = time.Now()

	for i := range quiz.Questions {
		if quiz.Questions[i].ID == "" {
			id, _ := uuid.NewV7()
			quiz.Questions[i].ID = id.String()
		}
		quiz.Questions[i].QuizID = quiz.ID
	}

	if err := ds.db.Create(quiz).Error; err != nil {
		return nil, err
	}
	return quiz, nil
}

func (ds *ContentRepository) GetQuiz(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := ds.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).Where("id = ?", id).First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (ds *ContentRepository) GetQuizzes() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := ds.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// ==================== CASE METHODS ====================

func (ds *ContentRepository) CreateCase(c *model.CaseSimulation) (*model.CaseSimulation, error) {
	if c.ID == "" {
		id, _ := uuid.NewV7()
		c.ID = id.String()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	if err := ds.db.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (ds *ContentRepository) GetCase(id string) (*model.CaseSimulation, error) {
	var c model.CaseSimulation
	if err := ds.db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (ds *ContentRepository) GetCases() ([]model.CaseSimulation, error) {
	var cases []model.CaseSimulation
	if err := ds.db.Find(&cases).Error; err != nil {
		return nil, err
	}
	return cases, nil
}

// ==================== GAME METHODS ====================

func (ds *ContentRepository) CreateGame(game *model.DragDropGame) (*model.DragDropGame, error) {
	if game.ID == "" {
		id, _ := uuid.NewV7()
		game.ID = id.String()
	}
	game.CreatedAt = time.Now()
	game.UpdatedAt = time.Now()

	if err := ds.db.Create(game).Error; err != nil {
		return nil, err
	}
	return game, nil
}

func (ds *ContentRepository) GetGame(id string) (*model.DragDropGame, error) {
	var game model.DragDropGame
	if err := ds.db.Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (ds *ContentRepository) GetGames() ([]model.DragDropGame, error) {
	var games []model.DragDropGame
	if err := ds.db.Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// ==================== RESOURCE METHODS ====================

func (ds *ContentRepository) CreateResource(resource *model.Resource) (*model.Resource, error) {
	if resource.ID == "" {
		id, _ := uuid.NewV7()
		resource.ID = id.String()
	}
	resource.CreatedAt = time.Now()
	resource.UpdatedAt = time.Now()

	if err := ds.db.Create(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

func (ds *ContentRepository) GetResource(id string) (*model.Resource, error) {
	var resource model.Resource
	if err := ds.db.Where("id = ?", id).First(&resource).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

func (ds *ContentRepository) GetResources(resourceType string) ([]model.Resource, error) {
	var resources []model.Resource
	query := ds.db.Model(&model.Resource{})

	if resourceType != "" {
		query = query.Where("type = ?", resourceType)
	}

	if err := query.Order("type, id").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (ds *ContentRepository) UpdateResource(resource *model.Resource) error {
	resource.UpdatedAt = time.Now()
	if err := ds.db.Save(resource).Error; err != nil {
		return err
	}
	return nil
}
