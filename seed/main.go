package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/agile-academy/academy_api/model"
	"github.com/agile-academy/academy_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, lessons, quizzes, games, cases, resources")
		dbPath   = flag.String("db", "", "SQLite database path (overrides DB_DATABASE env var)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := openDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Lesson{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.CaseSimulation{},
		&model.DragDropGame{},
		&model.Resource{},
	); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "lessons":
		if err := seeders.NewLessonSeeder(db).SeedLessons(); err != nil {
			log.Fatalf("Failed to seed lessons: %v", err)
		}
	case "quizzes":
		if err := seeders.NewQuizSeeder(db).SeedQuizzes(); err != nil {
			log.Fatalf("Failed to seed quizzes: %v", err)
		}
	case "games":
		if err := seeders.NewGameSeeder(db).SeedGames(); err != nil {
			log.Fatalf("Failed to seed games: %v", err)
		}
	case "cases":
		if err := seeders.NewCaseSeeder(db).SeedCases(); err != nil {
			log.Fatalf("Failed to seed cases: %v", err)
		}
	case "resources":
		if err := seeders.NewResourceSeeder(db).SeedResources(); err != nil {
			log.Fatalf("Failed to seed resources: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'lessons', 'quizzes', 'games', 'cases' or 'resources'", *seedType)
	}

	log.Println("Seeding finished")
}

func openDatabase(dbPath string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" && dbPath == "" {
		log.Println("Connecting to postgres")
		return gorm.Open(postgres.Open(dsn), config)
	}

	if dbPath == "" {
		dbPath = os.Getenv("DB_DATABASE")
		if dbPath == "" {
			dbPath = "academy.db"
		}
	}

	log.Printf("Connecting to sqlite database: %s", dbPath)
	return gorm.Open(sqlite.Open(dbPath), config)
}

func showHelp() {
	fmt.Println("Database seeder for the academy API")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  go run ./seed [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
