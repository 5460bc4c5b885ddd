package model

import "time"

// Lesson content is authored as a JSON document (intro + sections with
// optional bullet points) and served as-is.
type Lesson struct {
	ID                 string `gorm:"primaryKey"`
	SectionID          string `gorm:"index"`
	SectionTitle       string
	SectionDescription string
	SectionIcon        string
	SectionColor       string
	Title              string
	Duration           string
	Order              int    `gorm:"column:sort_order"`
	Content            string `gorm:"type:text"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Quiz struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Description string
	Difficulty  string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Questions []QuizQuestion `gorm:"foreignKey:QuizID"`
}

type QuizQuestion struct {
	ID                string `gorm:"primaryKey"`
	QuizID            string `gorm:"index"`
	Question          string `gorm:"type:text"`
	Options           string `gorm:"type:text"`
	CorrectIndex      int
	Feedback          string `gorm:"type:text"`
	IncorrectFeedback string `gorm:"type:text"`
	Order             int    `gorm:"column:sort_order"`
}

// CaseSimulation stores its branching scenario (steps, options, per-option
// feedback, consequence and score) as a JSON document.
type CaseSimulation struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Description string
	Difficulty  string
	Scenario    string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type DragDropGame struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Description string
	Difficulty  string
	GameType    string
	GameData    string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Resource is a library entry: book, article, glossary term or downloadable
// template. Template files live in object storage under ObjectKey.
type Resource struct {
	ID          string `gorm:"primaryKey"`
	Type        string `gorm:"index"`
	Title       string
	Description string
	Author      string
	Category    string
	Pages       int
	Source      string
	URL         string
	ReadTime    string
	Term        string
	Definition  string `gorm:"type:text"`
	Format      string
	Size        string
	ObjectKey   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
