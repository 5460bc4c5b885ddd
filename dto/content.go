package dto

import "time"

// ==================== LESSON DTOs ====================

type LessonContent struct {
	Intro    string          `json:"intro"`
	Sections []LessonSection `json:"sections"`
}

type LessonSection struct {
	Subtitle string   `json:"subtitle"`
	Text     string   `json:"text,omitempty"`
	Points   []string `json:"points,omitempty"`
}

type LessonResponse struct {
	ID                 string        `json:"id"`
	SectionID          string        `json:"section_id"`
	SectionTitle       string        `json:"section_title"`
	SectionDescription string        `json:"section_description"`
	SectionIcon        string        `json:"section_icon"`
	SectionColor       string        `json:"section_color"`
	Title              string        `json:"title"`
	Duration           string        `json:"duration"`
	Order              int           `json:"order"`
	Content            LessonContent `json:"content"`
}

type CreateLessonRequest struct {
	ID                 string        `json:"id,omitempty"`
	SectionID          string        `json:"section_id" validate:"required"`
	SectionTitle       string        `json:"section_title" validate:"required"`
	SectionDescription string        `json:"section_description"`
	SectionIcon        string        `json:"section_icon"`
	SectionColor       string        `json:"section_color"`
	Title              string        `json:"title" validate:"required"`
	Duration           string        `json:"duration"`
	Order              int           `json:"order" validate:"gte=0"`
	Content            LessonContent `json:"content" validate:"required"`
}

func (r CreateLessonRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ==================== QUIZ DTOs ====================

// QuizQuestionResponse deliberately omits the correct index and feedback
// texts so clients cannot read answers out of the payload.
type QuizQuestionResponse struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Order    int      `json:"order"`
}

type QuizResponse struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Difficulty    string                 `json:"difficulty"`
	QuestionCount int                    `json:"question_count"`
	Questions     []QuizQuestionResponse `json:"questions,omitempty"`
}

type CreateQuizRequest struct {
	ID          string                      `json:"id,omitempty"`
	Title       string                      `json:"title" validate:"required"`
	Description string                      `json:"description"`
	Difficulty  string                      `json:"difficulty" validate:"omitempty,oneof=Básico Intermedio Avanzado"`
	Questions   []CreateQuizQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type CreateQuizQuestionRequest struct {
	Question          string   `json:"question" validate:"required"`
	Options           []string `json:"options" validate:"required,min=2"`
	CorrectIndex      int      `json:"correct_index" validate:"gte=0"`
	Feedback          string   `json:"feedback"`
	IncorrectFeedback string   `json:"incorrect_feedback"`
}

func (r CreateQuizRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ==================== CASE DTOs ====================

type CaseScenario struct {
	Steps []CaseStep `json:"steps"`
}

type CaseStep struct {
	Situation string       `json:"situation"`
	Question  string       `json:"question"`
	Options   []CaseOption `json:"options"`
}

type CaseOption struct {
	Text        string `json:"text"`
	Feedback    string `json:"feedback"`
	Consequence string `json:"consequence"`
	Score       int    `json:"score"`
}

type CaseResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	StepCount   int    `json:"step_count"`
}

type CreateCaseRequest struct {
	ID          string       `json:"id,omitempty"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	Difficulty  string       `json:"difficulty" validate:"omitempty,oneof=Básico Intermedio Avanzado"`
	Scenario    CaseScenario `json:"scenario" validate:"required"`
}

func (r CreateCaseRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ==================== GAME DTOs ====================

type GameResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Difficulty  string      `json:"difficulty"`
	GameType    string      `json:"game_type"`
	GameData    interface{} `json:"game_data"`
}

type CreateGameRequest struct {
	ID          string      `json:"id,omitempty"`
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	Difficulty  string      `json:"difficulty" validate:"omitempty,oneof=Básico Intermedio Avanzado"`
	GameType    string      `json:"game_type" validate:"required"`
	GameData    interface{} `json:"game_data" validate:"required"`
}

func (r CreateGameRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ==================== RESOURCE DTOs ====================

type ResourceResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author,omitempty"`
	Category    string    `json:"category,omitempty"`
	Pages       int       `json:"pages,omitempty"`
	Source      string    `json:"source,omitempty"`
	URL         string    `json:"url,omitempty"`
	ReadTime    string    `json:"read_time,omitempty"`
	Term        string    `json:"term,omitempty"`
	Definition  string    `json:"definition,omitempty"`
	Format      string    `json:"format,omitempty"`
	Size        string    `json:"size,omitempty"`
	DownloadURL string    `json:"download_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateResourceRequest struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type" validate:"required,oneof=libro articulo glosario plantilla"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Pages       int    `json:"pages" validate:"gte=0"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	ReadTime    string `json:"read_time"`
	Term        string `json:"term"`
	Definition  string `json:"definition"`
	Format      string `json:"format"`
	Size        string `json:"size"`
}

func (r CreateResourceRequest) Validate() error {
	return GetValidator().Struct(r)
}
