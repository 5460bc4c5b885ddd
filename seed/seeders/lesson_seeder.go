package seeders

import (
	"log"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"github.com/agile-academy/academy_api/dto"
	"github.com/agile-academy/academy_api/model"
)

// LessonSeeder loads the course lessons
type LessonSeeder struct {
	db *gorm.DB
}

func NewLessonSeeder(db *gorm.DB) *LessonSeeder {
	return &LessonSeeder{db: db}
}

func (s *LessonSeeder) SeedLessons() error {
	lessons := s.getLessons()

	for _, lesson := range lessons {
		var existing model.Lesson
		if err := s.db.Where("id = ?", lesson.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&lesson).Error; err != nil {
					log.Printf("Error creating lesson %s: %v", lesson.Title, err)
					return err
				}
				log.Printf("Created lesson: %s", lesson.Title)
			} else {
				log.Printf("Error checking lesson %s: %v", lesson.Title, err)
				return err
			}
		} else {
			log.Printf("Lesson %s already exists, skipping", lesson.Title)
		}
	}

	log.Println("Lesson seeding completed successfully")
	return nil
}

func mustContent(content dto.LessonContent) string {
	s, err := sonic.MarshalString(content)
	if err != nil {
		log.Fatalf("Failed to marshal lesson content: %v", err)
	}
	return s
}

func (s *LessonSeeder) getLessons() []model.Lesson {
	now := time.Now()

	fundamentos := sectionInfo{
		id:          "fundamentos",
		title:       "Fundamentos Ágiles",
		description: "Comprende los principios y valores que sustentan las metodologías ágiles",
		icon:        "BookOpen",
		color:       "#3B82F6",
	}
	scrum := sectionInfo{
		id:          "scrum",
		title:       "Scrum",
		description: "Domina el framework ágil más popular del mundo",
		icon:        "Users",
		color:       "#10B981",
	}
	kanban := sectionInfo{
		id:          "kanban",
		title:       "Kanban",
		description: "Aprende a visualizar y optimizar el flujo de trabajo",
		icon:        "Package",
		color:       "#F59E0B",
	}
	pmbok := sectionInfo{
		id:          "pmbok",
		title:       "PMBOK Ágil",
		description: "Integra PMBOK con prácticas ágiles",
		icon:        "Calendar",
		color:       "#8B5CF6",
	}

	return []model.Lesson{
		lesson("fundamentos-1", fundamentos, "¿Qué es Agile?", "15 min", 1, now, dto.LessonContent{
			Intro: "Agile es un conjunto de valores y principios para el desarrollo de software que enfatiza la flexibilidad, la colaboración y la entrega continua de valor.",
			Sections: []dto.LessonSection{
				{
					Subtitle: "Origen del Movimiento Ágil",
					Text:     "En 2001, 17 desarrolladores de software se reunieron en Snowbird, Utah, para discutir métodos de desarrollo más ligeros. De esta reunión surgió el Manifiesto Ágil.",
				},
				{
					Subtitle: "Los 4 Valores del Manifiesto Ágil",
					Points: []string{
						"Individuos e interacciones sobre procesos y herramientas",
						"Software funcionando sobre documentación extensiva",
						"Colaboración con el cliente sobre negociación contractual",
						"Respuesta ante el cambio sobre seguir un plan",
					},
				},
				{
					Subtitle: "12 Principios Clave",
					Text:     "Los principios ágiles incluyen: satisfacer al cliente mediante entregas tempranas y continuas, aceptar cambios en cualquier etapa, entregar software frecuentemente, colaboración diaria entre negocio y desarrollo, construir proyectos alrededor de individuos motivados, entre otros.",
				},
			},
		}),
		lesson("fundamentos-2", fundamentos, "Ágil vs Tradicional", "12 min", 2, now, dto.LessonContent{
			Intro: "Comprender las diferencias fundamentales entre metodologías ágiles y tradicionales es clave para elegir el enfoque correcto.",
			Sections: []dto.LessonSection{
				{
					Subtitle: "Metodología en Cascada (Tradicional)",
					Text:     "Enfoque secuencial donde cada fase debe completarse antes de iniciar la siguiente: Requisitos → Diseño → Desarrollo → Pruebas → Despliegue. Es rígido y poco flexible al cambio.",
				},
				{
					Subtitle: "Metodología Ágil",
					Text:     "Enfoque iterativo e incremental. El trabajo se divide en ciclos cortos (sprints) que producen incrementos funcionales del producto. Permite adaptación continua.",
				},
				{
					Subtitle: "Comparación Clave",
					Points: []string{
						"Planificación: Cascada (completa al inicio) vs Ágil (continua)",
						"Cambios: Cascada (costosos) vs Ágil (bienvenidos)",
						"Entregas: Cascada (al final) vs Ágil (frecuentes)",
						"Riesgo: Cascada (alto al final) vs Ágil (distribuido)",
					},
				},
			},
		}),
		lesson("scrum-1", scrum, "Roles en Scrum", "20 min", 1, now, dto.LessonContent{
			Intro: "Scrum define tres roles principales, cada uno con responsabilidades específicas y complementarias.",
			Sections: []dto.LessonSection{
				{
					Subtitle: "Product Owner (PO)",
					Text:     "El PO es el responsable de maximizar el valor del producto. Define el \"qué\" se debe construir.",
					Points: []string{
						"Gestiona el Product Backlog (priorización)",
						"Define criterios de aceptación",
						"Toma decisiones sobre el producto",
						"Representa a los stakeholders",
						"Acepta o rechaza el trabajo completado",
					},
				},
				{
					Subtitle: "Scrum Master (SM)",
					Text:     "El SM es el facilitador del proceso Scrum. Protege al equipo y asegura que se sigan las prácticas ágiles.",
					Points: []string{
						"Facilita eventos Scrum",
						"Elimina impedimentos",
						"Coaching al equipo y la organización",
						"Protege al equipo de interrupciones",
						"Promueve la mejora continua",
					},
				},
				{
					Subtitle: "Development Team (Equipo de Desarrollo)",
					Text:     "Profesionales que realizan el trabajo de entregar el incremento del producto.",
					Points: []string{
						"Autoorganizados y multifuncionales",
						"Tamaño ideal: 3-9 personas",
						"Comprometidos con el Sprint Goal",
						"Responsables de la calidad",
						"Estiman su propio trabajo",
					},
				},
			},
		}),
		lesson("scrum-2", scrum, "Eventos de Scrum", "25 min", 2, now, dto.LessonContent{
			Intro: "Scrum estructura el trabajo en eventos de tiempo fijo que crean regularidad y minimizan reuniones innecesarias.",
			Sections: []dto.LessonSection{
				{
					Subtitle: "Sprint",
					Text:     "El contenedor de todos los demás eventos. Duración: 1-4 semanas (típicamente 2). Durante el Sprint se crea un incremento de producto \"Done\".",
				},
				{
					Subtitle: "Sprint Planning",
					Text:     "Reunión al inicio del Sprint donde el equipo planifica el trabajo.",
					Points: []string{
						"Duración: máximo 8h para Sprint de 4 semanas",
						"Se define el Sprint Goal",
						"El equipo selecciona ítems del Product Backlog",
						"Se crea el Sprint Backlog",
						"Se responden: ¿Qué? y ¿Cómo?",
					},
				},
				{
					Subtitle: "Daily Scrum",
					Text:     "Reunión diaria de 15 minutos donde el equipo sincroniza actividades.",
					Points: []string{
						"Misma hora y lugar cada día",
						"Solo el Development Team habla",
						"Se inspeccionan progresos hacia el Sprint Goal",
						"Se planifica el trabajo de las próximas 24h",
					},
				},
				{
					Subtitle: "Sprint Review",
					Text:     "Al final del Sprint, el equipo demuestra el trabajo completado a los stakeholders.",
					Points: []string{
						"Duración: máximo 4h para Sprint de 4 semanas",
						"Se inspecciona el incremento",
						"Se obtiene feedback",
						"Se adapta el Product Backlog",
					},
				},
				{
					Subtitle: "Sprint Retrospective",
					Text:     "El equipo reflexiona sobre su proceso y crea un plan de mejora.",
					Points: []string{
						"Ocurre después del Review y antes del siguiente Planning",
						"Duración: máximo 3h para Sprint de 4 semanas",
						"¿Qué salió bien? ¿Qué puede mejorar?",
						"Se identifican acciones de mejora",
					},
				},
			},
		}),
		lesson("scrum-3", scrum, "Artefactos de Scrum", "18 min", 3, now, dto.LessonContent{
			Intro: "Los artefactos de Scrum representan trabajo o valor y proporcionan transparencia y oportunidades de inspección y adaptación.",
			Sections: []dto.LessonSection{
				{
					Subtitle: "Product Backlog",
					Text:     "Lista ordenada de todo lo que podría ser necesario en el producto. Es la única fuente de requisitos.",
					Points: []string{
						"Gestionado por el Product Owner",
						"Ordenado por valor, riesgo, y dependencias",
						"Refinado continuamente",
						"Transparente y visible para todos",
						"Los ítems más prioritarios están más detallados",
					},
				},
				{
					Subtitle: "Sprint Backlog",
					Text:     "Conjunto de ítems del Product Backlog seleccionados para el Sprint, más el plan para entregarlos.",
					Points: []string{
						"Propiedad del Development Team",
						"Incluye el Sprint Goal",
						"Puede modificarse durante el Sprint",
						"Altamente visible",
						"Plan en tiempo real del trabajo",
					},
				},
				{
					Subtitle: "Incremento",
					Text:     "La suma de todos los ítems del Product Backlog completados durante un Sprint y el valor de todos los Sprints anteriores.",
					Points: []string{
						"Debe estar en condición \"Done\"",
						"Debe ser potencialmente entregable",
						"Debe cumplir la Definition of Done",
						"Es inspeccionado en el Sprint Review",
					},
				},
			},
		}),
		lesson("kanban-1", kanban, "Principios de Kanban", "15 min", 1, now, dto.LessonContent{
			Intro: "Kanban es un método para gestionar el trabajo del conocimiento con énfasis en la entrega just-in-time y la no sobrecarga del equipo.",
			Sections: []dto.LessonSection{
				{
					Subtitle: "Los 4 Principios Básicos",
					Points: []string{
						"Empieza con lo que haces ahora",
						"Acuerda buscar el cambio incremental y evolutivo",
						"Respeta los procesos, roles y responsabilidades actuales",
						"Fomenta el liderazgo en todos los niveles",
					},
				},
				{
					Subtitle: "Las 6 Prácticas Core",
					Text:     "Visualizar, Limitar WIP, Gestionar el flujo, Hacer políticas explícitas, Implementar ciclos de feedback, Mejorar colaborativamente.",
				},
			},
		}),
		lesson("pmbok-1", pmbok, "PMBOK en Contextos Ágiles", "22 min", 1, now, dto.LessonContent{
			Intro: "El PMBOK (Project Management Body of Knowledge) del PMI puede integrarse efectivamente con metodologías ágiles.",
			Sections: []dto.LessonSection{
				{
					Subtitle: "Áreas de Conocimiento Clave",
					Text:     "Las 10 áreas de conocimiento del PMBOK (Integración, Alcance, Cronograma, Costos, Calidad, Recursos, Comunicaciones, Riesgos, Adquisiciones, Stakeholders) se adaptan en contextos ágiles.",
				},
				{
					Subtitle: "Gestión de Alcance en Ágil",
					Points: []string{
						"El alcance es flexible y evoluciona",
						"Product Backlog como herramienta de alcance",
						"User Stories definen requisitos",
						"Priorización continua del valor",
					},
				},
				{
					Subtitle: "Gestión de Cronograma",
					Points: []string{
						"Sprints de tiempo fijo",
						"Velocity para estimación",
						"Burndown charts para seguimiento",
						"Planificación iterativa vs cascada",
					},
				},
			},
		}),
	}
}

type sectionInfo struct {
	id          string
	title       string
	description string
	icon        string
	color       string
}

func lesson(id string, section sectionInfo, title, duration string, order int, now time.Time, content dto.LessonContent) model.Lesson {
	return model.Lesson{
		ID:                 id,
		SectionID:          section.id,
		SectionTitle:       section.title,
		SectionDescription: section.description,
		SectionIcon:        section.icon,
		SectionColor:       section.color,
		Title:              title,
		Duration:           duration,
		Order:              order,
		Content:            mustContent(content),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
