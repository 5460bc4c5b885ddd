package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders. The content types are independent so order
// only matters for log readability.
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := NewLessonSeeder(s.db).SeedLessons(); err != nil {
		log.Printf("Lesson seeding failed: %v", err)
		return err
	}

	if err := NewQuizSeeder(s.db).SeedQuizzes(); err != nil {
		log.Printf("Quiz seeding failed: %v", err)
		return err
	}

	if err := NewGameSeeder(s.db).SeedGames(); err != nil {
		log.Printf("Game seeding failed: %v", err)
		return err
	}

	if err := NewCaseSeeder(s.db).SeedCases(); err != nil {
		log.Printf("Case seeding failed: %v", err)
		return err
	}

	if err := NewResourceSeeder(s.db).SeedResources(); err != nil {
		log.Printf("Resource seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}
