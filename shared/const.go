package shared

const (
	UserID = "user_id"

	ResourceTypeBook     = "libro"
	ResourceTypeArticle  = "articulo"
	ResourceTypeGlossary = "glosario"
	ResourceTypeTemplate = "plantilla"

	ActivityTypeLesson = "lesson"
	ActivityTypeQuiz   = "quiz"
	ActivityTypeCase   = "case"
	ActivityTypeGame   = "game"
	ActivityTypeMedal  = "medal"
	ActivityTypeSystem = "system"

	PerformanceExcellent = "Excelente"
	PerformanceGood      = "Bueno"
	PerformanceRegular   = "Regular"
)
