package seeders

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/agile-academy/academy_api/model"
	"github.com/agile-academy/academy_api/shared"
)

// ResourceSeeder loads the library: books, articles, glossary terms and
// downloadable templates.
type ResourceSeeder struct {
	db *gorm.DB
}

func NewResourceSeeder(db *gorm.DB) *ResourceSeeder {
	return &ResourceSeeder{db: db}
}

func (s *ResourceSeeder) SeedResources() error {
	resources := s.getResources()

	for _, resource := range resources {
		var existing model.Resource
		if err := s.db.Where("id = ?", resource.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&resource).Error; err != nil {
					log.Printf("Error creating resource %s: %v", resource.Title, err)
					return err
				}
				log.Printf("Created resource: %s (%s)", resource.Title, resource.Type)
			} else {
				log.Printf("Error checking resource %s: %v", resource.Title, err)
				return err
			}
		} else {
			log.Printf("Resource %s already exists, skipping", resource.Title)
		}
	}

	log.Println("Resource seeding completed successfully")
	return nil
}

func (s *ResourceSeeder) getResources() []model.Resource {
	now := time.Now()

	books := []model.Resource{
		{
			ID:          "libro-1",
			Type:        shared.ResourceTypeBook,
			Title:       "Scrum: The Art of Doing Twice the Work in Half the Time",
			Description: "El co-creador de Scrum explica cómo funciona el framework y por qué es tan efectivo.",
			Author:      "Jeff Sutherland",
			Category:    "Scrum",
			Pages:       256,
		},
		{
			ID:          "libro-2",
			Type:        shared.ResourceTypeBook,
			Title:       "User Stories Applied",
			Description: "Guía práctica para escribir user stories efectivas en el desarrollo ágil.",
			Author:      "Mike Cohn",
			Category:    "Agile",
			Pages:       304,
		},
		{
			ID:          "libro-3",
			Type:        shared.ResourceTypeBook,
			Title:       "The Scrum Guide",
			Description: "La guía oficial y definitiva de Scrum, actualizada regularmente.",
			Author:      "Ken Schwaber & Jeff Sutherland",
			Category:    "Scrum",
			Pages:       19,
		},
		{
			ID:          "libro-4",
			Type:        shared.ResourceTypeBook,
			Title:       "Agile Estimating and Planning",
			Description: "Técnicas prácticas para estimación y planificación en proyectos ágiles.",
			Author:      "Mike Cohn",
			Category:    "Agile",
			Pages:       368,
		},
		{
			ID:          "libro-5",
			Type:        shared.ResourceTypeBook,
			Title:       "PMBOK Guide",
			Description: "Guía fundamental de las mejores prácticas en gestión de proyectos.",
			Author:      "Project Management Institute",
			Category:    "PMBOK",
			Pages:       756,
		},
	}

	articles := []model.Resource{
		{
			ID:          "articulo-1",
			Type:        shared.ResourceTypeArticle,
			Title:       "Los 12 Principios del Manifiesto Ágil Explicados",
			Description: "Análisis profundo de cada uno de los 12 principios fundamentales del desarrollo ágil.",
			Source:      "Agile Alliance",
			URL:         "#",
			ReadTime:    "15 min",
		},
		{
			ID:          "articulo-2",
			Type:        shared.ResourceTypeArticle,
			Title:       "Cómo Escribir User Stories Efectivas",
			Description: "Guía paso a paso para crear user stories que agreguen valor real.",
			Source:      "Mountain Goat Software",
			URL:         "#",
			ReadTime:    "10 min",
		},
		{
			ID:          "articulo-3",
			Type:        shared.ResourceTypeArticle,
			Title:       "Sprint Retrospectives: Ideas y Técnicas",
			Description: "Técnicas innovadoras para hacer retrospectivas más efectivas y dinámicas.",
			Source:      "Scrum.org",
			URL:         "#",
			ReadTime:    "12 min",
		},
		{
			ID:          "articulo-4",
			Type:        shared.ResourceTypeArticle,
			Title:       "Definition of Done vs Acceptance Criteria",
			Description: "Comprende las diferencias clave entre DoD y criterios de aceptación.",
			Source:      "Scrum Alliance",
			URL:         "#",
			ReadTime:    "8 min",
		},
	}

	glossary := []model.Resource{
		glossaryEntry("glosario-1", "Backlog", "Lista ordenada de todo el trabajo pendiente en un proyecto.", "Lista ordenada de todo el trabajo pendiente en un proyecto. Puede ser Product Backlog (todo el producto) o Sprint Backlog (trabajo del sprint actual)."),
		glossaryEntry("glosario-2", "Burndown Chart", "Gráfico que muestra el trabajo restante vs el tiempo.", "Gráfico que muestra el trabajo restante vs el tiempo. Ayuda a visualizar el progreso hacia completar el trabajo del Sprint o Release."),
		glossaryEntry("glosario-3", "Daily Scrum", "Reunión diaria de 15 minutos.", "Reunión diaria de 15 minutos donde el Development Team sincroniza actividades y planifica el trabajo de las próximas 24 horas."),
		glossaryEntry("glosario-4", "Definition of Done (DoD)", "Criterios compartidos de completitud.", "Criterios compartidos que definen cuándo un incremento está completo y listo para ser entregado."),
		glossaryEntry("glosario-5", "Epic", "User Story grande que necesita dividirse.", "User Story grande que necesita ser dividida en stories más pequeñas antes de poder implementarse."),
		glossaryEntry("glosario-6", "Increment", "La suma de todos los items completados.", "La suma de todos los Product Backlog items completados durante un Sprint y el valor de los incrementos de todos los Sprints anteriores."),
		glossaryEntry("glosario-7", "Product Owner", "Responsable de maximizar el valor del producto.", "Rol responsable de maximizar el valor del producto y gestionar el Product Backlog."),
		glossaryEntry("glosario-8", "Sprint", "Período de tiempo fijo.", "Período de tiempo fijo (1-4 semanas) durante el cual se crea un incremento de producto \"Done\" y potencialmente entregable."),
		glossaryEntry("glosario-9", "Sprint Goal", "Objetivo del Sprint.", "Objetivo que se establece para el Sprint y que proporciona guía al Development Team sobre por qué está construyendo el incremento."),
		glossaryEntry("glosario-10", "Velocity", "Medida de trabajo completado.", "Medida de la cantidad de trabajo que un Development Team puede completar durante un Sprint."),
	}

	templates := []model.Resource{
		templateEntry("plantilla-1", "Plantilla de Product Backlog", "Formato Excel para gestionar y priorizar tu Product Backlog", "XLSX", "45 KB"),
		templateEntry("plantilla-2", "Plantilla de Sprint Planning", "Documento para facilitar la planificación de Sprints", "PDF", "120 KB"),
		templateEntry("plantilla-3", "Tablero Kanban Digital", "Plantilla editable de un tablero Kanban", "PNG", "230 KB"),
		templateEntry("plantilla-4", "Formato de User Story", "Template para escribir user stories efectivas", "DOCX", "35 KB"),
		templateEntry("plantilla-5", "Guía de Retrospectiva", "Actividades y formatos para Sprint Retrospectives", "PDF", "280 KB"),
		templateEntry("plantilla-6", "Checklist Definition of Done", "Lista verificable de criterios para \"Done\"", "PDF", "95 KB"),
	}

	resources := make([]model.Resource, 0, len(books)+len(articles)+len(glossary)+len(templates))
	for _, group := range [][]model.Resource{books, articles, glossary, templates} {
		for _, r := range group {
			r.CreatedAt = now
			r.UpdatedAt = now
			resources = append(resources, r)
		}
	}
	return resources
}

func glossaryEntry(id, term, description, definition string) model.Resource {
	return model.Resource{
		ID:          id,
		Type:        shared.ResourceTypeGlossary,
		Title:       term,
		Description: description,
		Term:        term,
		Definition:  definition,
	}
}

func templateEntry(id, title, description, format, size string) model.Resource {
	return model.Resource{
		ID:          id,
		Type:        shared.ResourceTypeTemplate,
		Title:       title,
		Description: description,
		Format:      format,
		Size:        size,
	}
}
