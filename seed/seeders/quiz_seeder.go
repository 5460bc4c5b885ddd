package seeders

import (
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"github.com/agile-academy/academy_api/model"
)

// QuizSeeder loads the quizzes with their question banks
type QuizSeeder struct {
	db *gorm.DB
}

func NewQuizSeeder(db *gorm.DB) *QuizSeeder {
	return &QuizSeeder{db: db}
}

func (s *QuizSeeder) SeedQuizzes() error {
	quizzes := s.getQuizzes()

	for _, quiz := range quizzes {
		var existing model.Quiz
		if err := s.db.Where("id = ?", quiz.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&quiz).Error; err != nil {
					log.Printf("Error creating quiz %s: %v", quiz.Title, err)
					return err
				}
				log.Printf("Created quiz: %s (%d questions)", quiz.Title, len(quiz.Questions))
			} else {
				log.Printf("Error checking quiz %s: %v", quiz.Title, err)
				return err
			}
		} else {
			log.Printf("Quiz %s already exists, skipping", quiz.Title)
		}
	}

	log.Println("Quiz seeding completed successfully")
	return nil
}

type questionData struct {
	question          string
	options           []string
	correct           int
	feedback          string
	incorrectFeedback string
}

func buildQuestions(quizID string, data []questionData) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, 0, len(data))
	for i, q := range data {
		options, err := sonic.MarshalString(q.options)
		if err != nil {
			log.Fatalf("Failed to marshal question options: %v", err)
		}
		questions = append(questions, model.QuizQuestion{
			ID:                fmt.Sprintf("%s-q%d", quizID, i+1),
			QuizID:            quizID,
			Question:          q.question,
			Options:           options,
			CorrectIndex:      q.correct,
			Feedback:          q.feedback,
			IncorrectFeedback: q.incorrectFeedback,
			Order:             i,
		})
	}
	return questions
}

func (s *QuizSeeder) getQuizzes() []model.Quiz {
	now := time.Now()

	return []model.Quiz{
		{
			ID:          "quiz-roles",
			Title:       "Quiz: Roles en Scrum",
			Description: "Evalúa tu conocimiento sobre los tres roles principales de Scrum",
			Difficulty:  "Básico",
			CreatedAt:   now,
			UpdatedAt:   now,
			Questions: buildQuestions("quiz-roles", []questionData{
				{
					question:          "¿Quién es el responsable de maximizar el valor del producto?",
					options:           []string{"Scrum Master", "Product Owner", "Development Team", "Stakeholders"},
					correct:           1,
					feedback:          "Correcto! El Product Owner es el único responsable de maximizar el valor del producto y gestionar el Product Backlog.",
					incorrectFeedback: "Incorrecto. El Product Owner es quien tiene la responsabilidad de maximizar el valor del producto.",
				},
				{
					question:          "¿Cuál es el tamaño ideal de un Development Team?",
					options:           []string{"2-3 personas", "3-9 personas", "10-15 personas", "No hay límite"},
					correct:           1,
					feedback:          "Excelente! El tamaño ideal es de 3 a 9 personas para mantener la comunicación efectiva y la agilidad.",
					incorrectFeedback: "El tamaño ideal es de 3 a 9 personas para balance entre habilidades y comunicación.",
				},
				{
					question:          "¿Quién facilita los eventos de Scrum y elimina impedimentos?",
					options:           []string{"Product Owner", "Project Manager", "Scrum Master", "Tech Lead"},
					correct:           2,
					feedback:          "Correcto! El Scrum Master es el facilitador del proceso y protector del equipo.",
					incorrectFeedback: "El Scrum Master es quien facilita los eventos y elimina impedimentos del equipo.",
				},
				{
					question:          "¿Puede el Scrum Master ser también un miembro del Development Team?",
					options:           []string{"Sí, siempre", "No, nunca", "Sí, pero no es recomendable en equipos pequeños", "Solo si tiene experiencia técnica"},
					correct:           2,
					feedback:          "Correcto! Es posible pero no recomendable, especialmente en equipos pequeños, ya que puede crear conflictos de rol.",
					incorrectFeedback: "Es posible pero crea conflictos, especialmente en equipos pequeños donde ambos roles demandan mucho tiempo.",
				},
				{
					question:          "¿Quién acepta o rechaza el incremento de producto al final del Sprint?",
					options:           []string{"Scrum Master", "Product Owner", "Todo el equipo Scrum", "Los Stakeholders"},
					correct:           1,
					feedback:          "Perfecto! El Product Owner es quien tiene la autoridad final para aceptar o rechazar el trabajo completado.",
					incorrectFeedback: "El Product Owner es el único autorizado para aceptar o rechazar el incremento del producto.",
				},
			}),
		},
		{
			ID:          "quiz-eventos",
			Title:       "Quiz: Eventos de Scrum",
			Description: "Pon a prueba tu comprensión de los eventos y ceremonias de Scrum",
			Difficulty:  "Intermedio",
			CreatedAt:   now,
			UpdatedAt:   now,
			Questions: buildQuestions("quiz-eventos", []questionData{
				{
					question:          "¿Cuál es la duración máxima del Daily Scrum?",
					options:           []string{"15 minutos", "30 minutos", "1 hora", "No tiene límite"},
					correct:           0,
					feedback:          "Correcto! El Daily Scrum tiene una duración fija de 15 minutos para mantener el foco.",
					incorrectFeedback: "El Daily Scrum siempre dura 15 minutos, sin importar el tamaño del equipo.",
				},
				{
					question:          "¿Cuándo ocurre la Sprint Retrospective?",
					options:           []string{"Al inicio del Sprint", "A mitad del Sprint", "Después del Review y antes del siguiente Planning", "Durante el Daily Scrum"},
					correct:           2,
					feedback:          "Excelente! La Retrospective ocurre después del Review, cerrando el Sprint actual antes de iniciar el siguiente.",
					incorrectFeedback: "La Retrospective ocurre después del Sprint Review y antes del siguiente Sprint Planning.",
				},
				{
					question:          "¿Qué se define durante el Sprint Planning?",
					options:           []string{"Solo el Sprint Goal", "Solo qué ítems del backlog se harán", "El Sprint Goal y cómo se logrará", "La velocidad del equipo"},
					correct:           2,
					feedback:          "Perfecto! En el Sprint Planning se responden dos preguntas clave: ¿Qué? y ¿Cómo?",
					incorrectFeedback: "En el Sprint Planning se define tanto el QUÉ (Sprint Goal y backlog items) como el CÓMO (plan de trabajo).",
				},
				{
					question:          "¿Quién debe asistir obligatoriamente al Sprint Review?",
					options:           []string{"Solo el Product Owner", "Solo el Development Team", "Todo el equipo Scrum y los Stakeholders invitados", "Solo los Stakeholders"},
					correct:           2,
					feedback:          "Correcto! El Sprint Review es un evento colaborativo donde participan todos.",
					incorrectFeedback: "El Sprint Review requiere la presencia de todo el equipo Scrum más los Stakeholders invitados.",
				},
				{
					question:          "¿Se puede cancelar un Sprint una vez iniciado?",
					options:           []string{"Sí, el Product Owner puede cancelarlo si el Sprint Goal se vuelve obsoleto", "No, nunca", "Sí, cualquier miembro del equipo puede cancelarlo", "Solo si todos están de acuerdo"},
					correct:           0,
					feedback:          "Correcto! Solo el Product Owner tiene autoridad para cancelar un Sprint si el objetivo ya no tiene sentido.",
					incorrectFeedback: "Solo el Product Owner puede cancelar un Sprint, y solo cuando el Sprint Goal se vuelve obsoleto.",
				},
			}),
		},
		{
			ID:          "quiz-artefactos",
			Title:       "Quiz: Artefactos de Scrum",
			Description: "Demuestra tu conocimiento sobre los artefactos de Scrum",
			Difficulty:  "Básico",
			CreatedAt:   now,
			UpdatedAt:   now,
			Questions: buildQuestions("quiz-artefactos", []questionData{
				{
					question:          "¿Quién es el dueño del Product Backlog?",
					options:           []string{"El Development Team", "El Product Owner", "El Scrum Master", "La organización"},
					correct:           1,
					feedback:          "Correcto! El Product Owner es responsable del Product Backlog, incluyendo su contenido y priorización.",
					incorrectFeedback: "El Product Owner es el único responsable del Product Backlog.",
				},
				{
					question:          "¿Qué significa que un incremento esté \"Done\"?",
					options:           []string{"Que está programado", "Que cumple la Definition of Done y es potencialmente entregable", "Que pasó code review", "Que el PO lo aprobó"},
					correct:           1,
					feedback:          "Excelente! \"Done\" significa que cumple todos los criterios de calidad y está listo para producción.",
					incorrectFeedback: "\"Done\" significa que cumple la Definition of Done acordada y es potencialmente entregable.",
				},
				{
					question:          "¿Puede modificarse el Sprint Backlog durante el Sprint?",
					options:           []string{"No, nunca", "Sí, por el Product Owner", "Sí, por el Development Team según aprenden más", "Solo en el Daily Scrum"},
					correct:           2,
					feedback:          "Correcto! El Development Team puede ajustar el Sprint Backlog según aprende más durante el Sprint.",
					incorrectFeedback: "El Development Team puede modificar el Sprint Backlog durante el Sprint según aprenden más sobre el trabajo.",
				},
				{
					question:          "¿Cómo deben ordenarse los ítems en el Product Backlog?",
					options:           []string{"Por complejidad técnica", "Por valor, riesgo y dependencias", "Alfabéticamente", "Por preferencia del equipo"},
					correct:           1,
					feedback:          "Perfecto! El Product Owner ordena el backlog considerando valor de negocio, riesgos y dependencias.",
					incorrectFeedback: "El Product Backlog se ordena principalmente por valor de negocio, considerando también riesgos y dependencias.",
				},
			}),
		},
	}
}
