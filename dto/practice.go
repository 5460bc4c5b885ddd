package dto

// ==================== QUIZ SESSION DTOs ====================

type StartQuizResponse struct {
	SessionID     string               `json:"session_id"`
	QuizID        string               `json:"quiz_id"`
	Title         string               `json:"title"`
	QuestionCount int                  `json:"question_count"`
	Question      QuizQuestionResponse `json:"question"`
}

type SubmitAnswerRequest struct {
	SelectedIndex int `json:"selected_index" validate:"gte=0"`
}

func (r SubmitAnswerRequest) Validate() error {
	return GetValidator().Struct(r)
}

// SubmitAnswerResponse reveals correctness and feedback for the question
// just answered. The recorded answer is final at this point.
type SubmitAnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectIndex  int    `json:"correct_index"`
	Feedback      string `json:"feedback"`
	QuestionIndex int    `json:"question_index"`
}

type AdvanceQuizResponse struct {
	Completed bool                  `json:"completed"`
	Question  *QuizQuestionResponse `json:"question,omitempty"`
	Result    *QuizResult           `json:"result,omitempty"`
}

type QuizResult struct {
	QuizID       string `json:"quiz_id"`
	Score        int    `json:"score"`
	CorrectCount int    `json:"correct_count"`
	Total        int    `json:"total"`
	PointsEarned int    `json:"points_earned"`
	MedalEarned  bool   `json:"medal_earned"`
}

// ==================== CASE SESSION DTOs ====================

type StartCaseResponse struct {
	SessionID string       `json:"session_id"`
	CaseID    string       `json:"case_id"`
	Title     string       `json:"title"`
	StepCount int          `json:"step_count"`
	Step      CaseStepView `json:"step"`
}

// CaseStepView strips feedback, consequences and scores from the options
// shown to the client; those surface only after a choice is made.
type CaseStepView struct {
	Index     int      `json:"index"`
	Situation string   `json:"situation"`
	Question  string   `json:"question"`
	Options   []string `json:"options"`
}

type ChooseOptionRequest struct {
	OptionIndex int `json:"option_index" validate:"gte=0"`
}

func (r ChooseOptionRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ChooseOptionResponse struct {
	StepIndex   int    `json:"step_index"`
	Feedback    string `json:"feedback"`
	Consequence string `json:"consequence"`
	Score       int    `json:"score"`
	MaxScore    int    `json:"max_score"`
}

type AdvanceCaseResponse struct {
	Completed bool          `json:"completed"`
	Step      *CaseStepView `json:"step,omitempty"`
	Result    *CaseResult   `json:"result,omitempty"`
}

type CaseResult struct {
	CaseID       string `json:"case_id"`
	TotalScore   int    `json:"total_score"`
	Earned       int    `json:"earned"`
	MaxPossible  int    `json:"max_possible"`
	Performance  string `json:"performance"`
	PointsEarned int    `json:"points_earned"`
	MedalEarned  bool   `json:"medal_earned"`
}

// ==================== GAME DTOs ====================

type SubmitGameScoreRequest struct {
	Score   int  `json:"score" validate:"gte=0,lte=100"`
	Perfect bool `json:"perfect"`
}

func (r SubmitGameScoreRequest) Validate() error {
	return GetValidator().Struct(r)
}

type GameResult struct {
	GameID       string `json:"game_id"`
	Score        int    `json:"score"`
	PointsEarned int    `json:"points_earned"`
	MedalEarned  bool   `json:"medal_earned"`
}
