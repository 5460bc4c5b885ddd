package seeders

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/agile-academy/academy_api/model"
)

// GameSeeder loads the drag-drop games. Board data is free-form JSON
// interpreted by the client per game type.
type GameSeeder struct {
	db *gorm.DB
}

func NewGameSeeder(db *gorm.DB) *GameSeeder {
	return &GameSeeder{db: db}
}

func (s *GameSeeder) SeedGames() error {
	games := s.getGames()

	for _, game := range games {
		var existing model.DragDropGame
		if err := s.db.Where("id = ?", game.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&game).Error; err != nil {
					log.Printf("Error creating game %s: %v", game.Title, err)
					return err
				}
				log.Printf("Created game: %s", game.Title)
			} else {
				log.Printf("Error checking game %s: %v", game.Title, err)
				return err
			}
		} else {
			log.Printf("Game %s already exists, skipping", game.Title)
		}
	}

	log.Println("Game seeding completed successfully")
	return nil
}

func (s *GameSeeder) getGames() []model.DragDropGame {
	now := time.Now()

	return []model.DragDropGame{
		{
			ID:          "roles-match",
			Title:       "Empareja Roles con Responsabilidades",
			Description: "Arrastra cada responsabilidad al rol correcto",
			Difficulty:  "Básico",
			GameType:    "roles-match",
			GameData: `{
				"roles": [
					{"id": "po", "name": "Product Owner", "color": "#3B82F6"},
					{"id": "sm", "name": "Scrum Master", "color": "#10B981"},
					{"id": "dev", "name": "Development Team", "color": "#F59E0B"}
				],
				"responsibilities": [
					{"id": "resp1", "text": "Maximizar el valor del producto", "correctRole": "po"},
					{"id": "resp2", "text": "Facilitar eventos de Scrum", "correctRole": "sm"},
					{"id": "resp3", "text": "Crear el incremento del producto", "correctRole": "dev"},
					{"id": "resp4", "text": "Gestionar el Product Backlog", "correctRole": "po"},
					{"id": "resp5", "text": "Eliminar impedimentos del equipo", "correctRole": "sm"},
					{"id": "resp6", "text": "Estimar el trabajo del Sprint", "correctRole": "dev"}
				]
			}`,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "events-order",
			Title:       "Ordena los Eventos de Scrum",
			Description: "Coloca los eventos en el orden correcto dentro de un Sprint",
			Difficulty:  "Intermedio",
			GameType:    "events-order",
			GameData: `{
				"correctOrder": ["planning", "daily", "review", "retrospective"],
				"items": [
					{"id": "planning", "name": "Sprint Planning", "emoji": "📋"},
					{"id": "daily", "name": "Daily Scrum", "emoji": "☀️"},
					{"id": "review", "name": "Sprint Review", "emoji": "👀"},
					{"id": "retrospective", "name": "Sprint Retrospective", "emoji": "🔄"}
				]
			}`,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "artifacts-match",
			Title:       "Conecta Artefactos con sus Características",
			Description: "Une cada artefacto con su descripción correcta",
			Difficulty:  "Básico",
			GameType:    "artifacts-match",
			GameData: `{
				"artifacts": [
					{"id": "product-backlog", "name": "Product Backlog", "emoji": "📝"},
					{"id": "sprint-backlog", "name": "Sprint Backlog", "emoji": "📋"},
					{"id": "increment", "name": "Incremento", "emoji": "✨"}
				],
				"descriptions": [
					{"id": "desc1", "text": "Lista ordenada de todo lo necesario en el producto", "correct": "product-backlog"},
					{"id": "desc2", "text": "Ítems seleccionados para el Sprint más el plan", "correct": "sprint-backlog"},
					{"id": "desc3", "text": "Suma de todos los ítems completados y \"Done\"", "correct": "increment"},
					{"id": "desc4", "text": "Gestionado por el Product Owner", "correct": "product-backlog"},
					{"id": "desc5", "text": "Propiedad del Development Team", "correct": "sprint-backlog"}
				]
			}`,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
