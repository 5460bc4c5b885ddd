package seeders

import (
	"log"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"github.com/agile-academy/academy_api/dto"
	"github.com/agile-academy/academy_api/model"
)

// CaseSeeder loads the case simulations
type CaseSeeder struct {
	db *gorm.DB
}

func NewCaseSeeder(db *gorm.DB) *CaseSeeder {
	return &CaseSeeder{db: db}
}

func (s *CaseSeeder) SeedCases() error {
	cases := s.getCases()

	for _, c := range cases {
		var existing model.CaseSimulation
		if err := s.db.Where("id = ?", c.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&c).Error; err != nil {
					log.Printf("Error creating case %s: %v", c.Title, err)
					return err
				}
				log.Printf("Created case: %s", c.Title)
			} else {
				log.Printf("Error checking case %s: %v", c.Title, err)
				return err
			}
		} else {
			log.Printf("Case %s already exists, skipping", c.Title)
		}
	}

	log.Println("Case seeding completed successfully")
	return nil
}

func mustScenario(scenario dto.CaseScenario) string {
	s, err := sonic.MarshalString(scenario)
	if err != nil {
		log.Fatalf("Failed to marshal case scenario: %v", err)
	}
	return s
}

func (s *CaseSeeder) getCases() []model.CaseSimulation {
	now := time.Now()

	return []model.CaseSimulation{
		{
			ID:          "case1",
			Title:       "Crisis en el Sprint",
			Description: "El Product Owner quiere agregar una funcionalidad urgente a mitad del Sprint",
			Difficulty:  "Intermedio",
			CreatedAt:   now,
			UpdatedAt:   now,
			Scenario: mustScenario(dto.CaseScenario{
				Steps: []dto.CaseStep{
					{
						Situation: "Estás en el día 5 de un Sprint de 2 semanas. El Product Owner te llama urgentemente: \"Nuestro cliente más importante necesita una nueva funcionalidad de reportes para mañana. Es crítico para renovar el contrato. Necesito que el equipo la desarrolle HOY.\"",
						Question:  "¿Cuál es tu respuesta como Scrum Master?",
						Options: []dto.CaseOption{
							{
								Text:        "Acepto inmediatamente y pido al equipo que trabaje horas extra para completarlo",
								Feedback:    "Incorrecto. Esto viola el Sprint Goal y la autoorganización del equipo. Además, crear presión para horas extra es insostenible.",
								Consequence: "El equipo se siente presionado y desmotivado. El Sprint Goal original se ve comprometido.",
								Score:       0,
							},
							{
								Text:        "Explico que no podemos cambiar el Sprint Backlog, pero podemos discutirlo en el siguiente Sprint Planning",
								Feedback:    "Buena respuesta. Proteges el Sprint actual y el Sprint Goal. Sin embargo, podrías explorar si realmente es tan urgente.",
								Consequence: "El PO entiende la situación. Acuerdan revisar la prioridad en el siguiente Sprint.",
								Score:       7,
							},
							{
								Text:        "Propongo una reunión urgente con el PO y el equipo para evaluar el impacto y considerar cancelar el Sprint si es necesario",
								Feedback:    "¡Excelente! Balanceas la urgencia del negocio con los principios de Scrum. La cancelación del Sprint es una opción válida cuando el Sprint Goal se vuelve obsoleto.",
								Consequence: "Realizan una reunión. El equipo y el PO evalúan el impacto juntos.",
								Score:       10,
							},
						},
					},
					{
						Situation: "En la reunión, el equipo estima que la funcionalidad requiere 3 días de trabajo. El Sprint actual termina en 5 días y ya tienen comprometido trabajo que completa el Sprint Goal.",
						Question:  "¿Qué propones?",
						Options: []dto.CaseOption{
							{
								Text:        "Cancelar el Sprint actual, agregar la funcionalidad al nuevo Sprint y empezar mañana",
								Feedback:    "Correcto, pero solo si el Sprint Goal actual ya no tiene valor. Cancela un Sprint es una decisión seria que debe evaluarse cuidadosamente.",
								Consequence: "Se cancela el Sprint. El trabajo \"Done\" se revisa. Se inicia un nuevo Sprint con la funcionalidad urgente priorizada.",
								Score:       8,
							},
							{
								Text:        "Completar el Sprint actual (5 días) y hacer el reporte en el siguiente Sprint con alta prioridad",
								Feedback:    "Buena opción si el Sprint Goal actual sigue siendo valioso. Respeta el ritmo del equipo.",
								Consequence: "El equipo completa el Sprint actual con éxito. En el siguiente Sprint, priorizan el reporte y lo completan en 3 días.",
								Score:       9,
							},
							{
								Text:        "Dividir el equipo: algunos continúan el Sprint actual, otros trabajan en el reporte",
								Feedback:    "Incorrecto. Dividir al equipo destruye la colaboración y el foco. Es una anti-práctica de Scrum.",
								Consequence: "El equipo se fragmenta. Ambos trabajos avanzan lentamente. La calidad disminuye.",
								Score:       2,
							},
						},
					},
					{
						Situation: "El cliente acepta esperar al siguiente Sprint. Sin embargo, el PO dice: \"Necesito garantías de que estará listo en 3 días. Pueden comprometerse?\"",
						Question:  "¿Cómo respondes?",
						Options: []dto.CaseOption{
							{
								Text:        "Sí, el equipo se compromete a 3 días",
								Feedback:    "Incorrecto. Solo el Development Team puede comprometerse. El Scrum Master no habla por ellos.",
								Consequence: "El equipo se siente presionado. No se les consultó y ahora tienen un compromiso que no hicieron.",
								Score:       1,
							},
							{
								Text:        "Es decisión del Development Team. Ellos estimarán y se comprometerán en el Sprint Planning",
								Feedback:    "¡Perfecto! Respetas la autoorganización del equipo y el proceso de Scrum.",
								Consequence: "En el Sprint Planning, el equipo revisa la User Story, la refina, y hace su propio compromiso basado en su velocidad.",
								Score:       10,
							},
							{
								Text:        "Probablemente sí, basándome en la velocidad histórica del equipo",
								Feedback:    "Aceptable, pero ideal que el equipo mismo lo confirme en lugar de que tú hables por ellos.",
								Consequence: "Das una expectativa basada en datos, pero aclaras que el compromiso final es del equipo.",
								Score:       7,
							},
						},
					},
				},
			}),
		},
		{
			ID:          "case2",
			Title:       "Conflicto de Roles",
			Description: "Tensión entre el Product Owner y el Development Team sobre prioridades",
			Difficulty:  "Avanzado",
			CreatedAt:   now,
			UpdatedAt:   now,
			Scenario: mustScenario(dto.CaseScenario{
				Steps: []dto.CaseStep{
					{
						Situation: "Durante el Sprint Planning, el Product Owner presenta las User Stories más prioritarias. El Development Team las cuestiona: \"Estas no aportan valor real al usuario. Hay deuda técnica crítica que debemos resolver primero o el sistema colapsará.\"",
						Question:  "Como Scrum Master, ¿cuál es tu acción?",
						Options: []dto.CaseOption{
							{
								Text:        "Apoyo al equipo. La deuda técnica debe priorizarse",
								Feedback:    "Incorrecto. El PO decide el QUÉ. Tu rol es facilitar, no decidir prioridades.",
								Consequence: "El PO se molesta. Siente que su autoridad es cuestionada.",
								Score:       3,
							},
							{
								Text:        "Apoyo al PO. Él decide las prioridades del Product Backlog",
								Feedback:    "Parcialmente correcto, pero ignoras una preocupación técnica legítima del equipo.",
								Consequence: "El equipo se frustra. Sienten que sus preocupaciones técnicas no son escuchadas.",
								Score:       5,
							},
							{
								Text:        "Facilito una conversación donde el equipo explica el impacto técnico y el PO explica el valor de negocio",
								Feedback:    "¡Excelente! Tu rol es facilitar la comunicación y entendimiento mutuo.",
								Consequence: "Ambas partes exponen sus puntos. Comienzan a entenderse mutuamente.",
								Score:       10,
							},
						},
					},
					{
						Situation: "El equipo explica: \"Si no refactorizamos este módulo, cada nueva funcionalidad tomará el doble de tiempo. Ya estamos viendo el impacto.\" El PO responde: \"Entiendo, pero tenemos compromisos con el cliente que no podemos romper.\"",
						Question:  "¿Qué solución propones?",
						Options: []dto.CaseOption{
							{
								Text:        "Que el equipo dedique 20% de cada Sprint a deuda técnica sin consultar al PO",
								Feedback:    "Incorrecto. Esto excluye al PO de decisiones del producto. La deuda técnica debe estar en el Product Backlog.",
								Consequence: "Se genera desconfianza. El PO siente que pierde control.",
								Score:       2,
							},
							{
								Text:        "Agregar la deuda técnica como User Stories en el Product Backlog para que el PO las priorice",
								Feedback:    "¡Perfecto! La deuda técnica debe ser visible y priorizada como cualquier otro ítem.",
								Consequence: "El equipo crea User Stories técnicas. El PO las entiende y las prioriza balanceando valor y riesgo técnico.",
								Score:       10,
							},
							{
								Text:        "Hacer la deuda técnica en secreto durante el desarrollo de features",
								Feedback:    "Muy incorrecto. Falta transparencia, uno de los pilares de Scrum.",
								Consequence: "Pérdida total de confianza. El PO descubre que el equipo \"esconde\" trabajo.",
								Score:       0,
							},
						},
					},
				},
			}),
		},
	}
}
