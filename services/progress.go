package services

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/agile-academy/academy_api/dto"
	"github.com/agile-academy/academy_api/model"
	"github.com/agile-academy/academy_api/services/repositories"
	"github.com/agile-academy/academy_api/shared"
)

const (
	// MaxMedals caps the medal counter; further high scores still log
	// activity but stop incrementing.
	MaxMedals = 12

	// DefaultStreakGapDays is the maximum gap between two study days for
	// the streak to continue. 1.5 days tolerates a late-evening session
	// followed by an early-morning one.
	DefaultStreakGapDays = 1.5

	LessonPoints = 50

	dashboardCacheTTL = 30 * time.Second
)

// ProgressService aggregates per-user learning state: completion
// percentage, average score, streak, points, medals and the dashboard.
type ProgressService struct {
	appContext.DefaultService

	sqlSvc     *SqlService
	redisSvc   *RedisService
	contentSvc *ContentService

	progressRepo *repositories.ProgressRepository
	activityRepo *repositories.ActivityRepository

	streakGapDays float64
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *appContext.Context) error {
	svc.sqlSvc = ctx.Service(SQL_SVC).(*SqlService)
	svc.redisSvc = ctx.Service(REDIS_SVC).(*RedisService)
	svc.contentSvc = ctx.Service(CONTENT_SVC).(*ContentService)

	svc.streakGapDays = DefaultStreakGapDays
	if v := os.Getenv("STREAK_GAP_DAYS"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			svc.streakGapDays = parsed
		}
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.progressRepo = repositories.NewProgressRepository(svc.sqlSvc.Db())
	svc.activityRepo = repositories.NewActivityRepository(svc.sqlSvc.Db())
	return nil
}

// ==================== PURE AGGREGATION ====================

// CompletionPercentage rounds completed/total to a whole percentage,
// clamped to [0,100]. Zero total means zero percent, never NaN.
func CompletionPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// LatestQuizScores reduces an oldest-first attempt list to the most
// recent score per quiz.
func LatestQuizScores(attempts []model.UserQuizAttempt) map[string]int {
	latest := make(map[string]int, len(attempts))
	for _, a := range attempts {
		latest[a.QuizID] = a.Score
	}
	return latest
}

// AverageScore is the rounded mean of the given scores, 0 when empty.
func AverageScore(scores map[string]int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

// StreakDays counts consecutive study days walking back from the most
// recent one. Days are distinct UTC dates; the streak continues while
// the gap between neighbouring study days stays within gapDays.
func StreakDays(timestamps []time.Time, gapDays float64) int {
	if len(timestamps) == 0 {
		return 0
	}

	seen := make(map[time.Time]struct{}, len(timestamps))
	for _, ts := range timestamps {
		day := ts.UTC().Truncate(24 * time.Hour)
		seen[day] = struct{}{}
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	maxGap := time.Duration(gapDays * float64(24*time.Hour))
	streak := 1
	for i := len(days) - 2; i >= 0; i-- {
		if days[i+1].Sub(days[i]) <= maxGap {
			streak++
		} else {
			break
		}
	}
	return streak
}

// BucketPointsByWeek folds point events into weekly buckets, most recent
// week last. Events older than the window are dropped; an empty input
// yields a single placeholder bucket.
func BucketPointsByWeek(events []model.ActivityLog, windowWeeks int, now time.Time) []dto.WeeklyBucket {
	if windowWeeks <= 0 {
		windowWeeks = 1
	}
	if len(events) == 0 {
		return []dto.WeeklyBucket{{Label: "Sin datos", Points: 0}}
	}

	buckets := make([]dto.WeeklyBucket, windowWeeks)
	for i := range buckets {
		buckets[i] = dto.WeeklyBucket{Label: fmt.Sprintf("Semana %d", i+1)}
	}

	week := 7 * 24 * time.Hour
	for _, e := range events {
		weeksAgo := int(now.Sub(e.CreatedAt) / week)
		idx := windowWeeks - 1 - weeksAgo
		if idx < 0 || idx >= windowWeeks {
			continue
		}
		buckets[idx].Points += e.Points
	}
	return buckets
}

// ==================== PROGRESS OPERATIONS ====================

func (svc *ProgressService) GetProgress(userID string) (*dto.ProgressResponse, error) {
	progress, err := svc.progressRepo.GetOrCreateProgress(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load progress")
	}
	return toProgressResponse(progress), nil
}

// CompleteLesson marks the lesson done for the user. Completing an
// already-complete lesson changes nothing and earns nothing.
func (svc *ProgressService) CompleteLesson(userID, lessonID string) (*dto.CompleteLessonResponse, error) {
	lesson, err := svc.contentSvc.GetLesson(lessonID)
	if err != nil {
		return nil, err
	}

	if _, err := svc.progressRepo.GetOrCreateProgress(userID); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load progress")
	}

	created, err := svc.progressRepo.CompleteLesson(userID, lessonID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to record completion")
	}

	overall, err := svc.recomputeOverallProgress(userID)
	if err != nil {
		return nil, err
	}

	if !created {
		return &dto.CompleteLessonResponse{
			LessonID:        lessonID,
			AlreadyComplete: true,
			OverallProgress: overall,
		}, nil
	}

	svc.award(userID, LessonPoints, "Completaste", lesson.Title, shared.ActivityTypeLesson)
	svc.refreshStreak(userID)
	svc.invalidateDashboard(userID)
	lessonCompletionsTotal.Inc()

	return &dto.CompleteLessonResponse{
		LessonID:        lessonID,
		AlreadyComplete: false,
		OverallProgress: overall,
		PointsEarned:    LessonPoints,
	}, nil
}

func (svc *ProgressService) GetCompletedLessons(userID string) (*dto.CompletedLessonsResponse, error) {
	ids, err := svc.progressRepo.GetCompletedLessonIDs(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load completed lessons")
	}
	return &dto.CompletedLessonsResponse{LessonIDs: ids}, nil
}

func (svc *ProgressService) recomputeOverallProgress(userID string) (int, error) {
	completed, err := svc.progressRepo.CountCompletedLessons(userID)
	if err != nil {
		return 0, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to count completions")
	}
	total, err := svc.contentSvc.CountLessons()
	if err != nil {
		return 0, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to count lessons")
	}

	pct := CompletionPercentage(int(completed), int(total))
	if err := svc.progressRepo.UpdateOverallProgress(userID, pct); err != nil {
		return 0, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to update progress")
	}
	return pct, nil
}

// ==================== RESULT APPLICATION ====================

// ApplyQuizResult runs the side effects of a finished quiz: average
// recompute, points, medal, activity log, streak. Failures are logged
// and swallowed so a finished session still completes for the user.
func (svc *ProgressService) ApplyQuizResult(userID, quizTitle string, score int) (points int, medal bool) {
	points = int(math.Round(float64(score) * 2))

	svc.award(userID, points, fmt.Sprintf("Obtuviste %d%%", score), quizTitle, shared.ActivityTypeQuiz)
	medal = svc.awardMedalIf(userID, score >= 90)

	if err := svc.recomputeAverageScore(userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to recompute average score")
	}

	svc.refreshStreak(userID)
	svc.invalidateDashboard(userID)
	quizCompletionsTotal.Inc()
	return points, medal
}

// ApplyCaseResult mirrors ApplyQuizResult for case simulations.
func (svc *ProgressService) ApplyCaseResult(userID, caseTitle string, totalScore int) (points int, medal bool) {
	points = int(math.Round(float64(totalScore) * 3))

	performance := PerformanceLabel(totalScore)
	svc.award(userID, points, fmt.Sprintf("Completaste con %s", performance), caseTitle, shared.ActivityTypeCase)
	medal = svc.awardMedalIf(userID, totalScore >= 90)

	svc.refreshStreak(userID)
	svc.invalidateDashboard(userID)
	caseCompletionsTotal.Inc()
	return points, medal
}

// SubmitGameScore records a drag-drop game result. A perfect run is
// worth a flat 150 points and a medal.
func (svc *ProgressService) SubmitGameScore(userID, gameID string, req dto.SubmitGameScoreRequest) (*dto.GameResult, error) {
	game, err := svc.contentSvc.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	if _, err := svc.progressRepo.GetOrCreateProgress(userID); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load progress")
	}

	if err := svc.progressRepo.CreateGameScore(&model.UserGameScore{
		UserID:       userID,
		GameID:       gameID,
		Score:        req.Score,
		PerfectScore: req.Perfect,
		CompletedAt:  time.Now(),
	}); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to record game score")
	}

	points := int(math.Round(float64(req.Score) * 1.5))
	action := "Completaste"
	if req.Perfect {
		points = 150
		action = "🎉 Completaste perfectamente"
	}

	svc.award(userID, points, action, game.Title, shared.ActivityTypeGame)
	medal := svc.awardMedalIf(userID, req.Perfect)

	svc.refreshStreak(userID)
	svc.invalidateDashboard(userID)

	return &dto.GameResult{
		GameID:       gameID,
		Score:        req.Score,
		PointsEarned: points,
		MedalEarned:  medal,
	}, nil
}

// AddStudyMinutes is the flush target of the study-time tracker. The
// increment happens SQL-side; the activity entry carries no points.
func (svc *ProgressService) AddStudyMinutes(userID string, minutes int) error {
	if minutes <= 0 {
		return nil
	}

	if _, err := svc.progressRepo.GetOrCreateProgress(userID); err != nil {
		return err
	}
	if err := svc.progressRepo.AddStudyMinutes(userID, minutes); err != nil {
		return err
	}

	if err := svc.activityRepo.LogActivity(&model.ActivityLog{
		UserID: userID,
		Action: fmt.Sprintf("Estudió %d min", minutes),
		Type:   shared.ActivityTypeSystem,
	}); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to log study time")
	}

	svc.refreshStreak(userID)
	svc.invalidateDashboard(userID)
	studyMinutesFlushedTotal.Add(float64(minutes))
	return nil
}

func (svc *ProgressService) recomputeAverageScore(userID string) error {
	attempts, err := svc.progressRepo.GetQuizAttempts(userID)
	if err != nil {
		return err
	}
	avg := AverageScore(LatestQuizScores(attempts))
	return svc.progressRepo.UpdateAverageScore(userID, avg)
}

func (svc *ProgressService) award(userID string, points int, action, item, activityType string) {
	if points != 0 {
		if err := svc.progressRepo.AddPoints(userID, points); err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Failed to add points")
		}
	}

	if err := svc.activityRepo.LogActivity(&model.ActivityLog{
		UserID: userID,
		Action: action,
		Item:   item,
		Type:   activityType,
		Points: points,
	}); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to log activity")
	}
}

func (svc *ProgressService) awardMedalIf(userID string, earned bool) bool {
	if !earned {
		return false
	}

	progress, err := svc.progressRepo.GetProgress(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to load progress for medal")
		return false
	}
	if progress.MedalsCount >= MaxMedals {
		return false
	}

	if err := svc.progressRepo.UpdateMedalsCount(userID, progress.MedalsCount+1); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to increment medals")
		return false
	}
	return true
}

func (svc *ProgressService) refreshStreak(userID string) {
	timestamps, err := svc.activityRepo.GetActivityTimestamps(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to load activity for streak")
		return
	}

	streak := StreakDays(timestamps, svc.streakGapDays)
	if err := svc.progressRepo.UpdateStreak(userID, streak); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to update streak")
	}
}

// PerformanceLabel maps a case score to its verdict.
func PerformanceLabel(score int) string {
	switch {
	case score >= 80:
		return shared.PerformanceExcellent
	case score >= 60:
		return shared.PerformanceGood
	default:
		return shared.PerformanceRegular
	}
}

// ==================== DASHBOARD ====================

const dashboardWindowWeeks = 6

// GetDashboard assembles the stat cards, recent activity, last quiz
// scores and the weekly point chart. Results are cached briefly in
// redis; a cache failure falls through to the database.
func (svc *ProgressService) GetDashboard(userID string) (*dto.DashboardResponse, error) {
	cacheKey := dashboardCacheKey(userID)

	var cached dto.DashboardResponse
	if err := svc.redisSvc.GetJSON(context.Background(), cacheKey, &cached); err == nil && cached.Progress.OverallProgress >= 0 && len(cached.WeeklyPoints) > 0 {
		return &cached, nil
	}

	progress, err := svc.progressRepo.GetOrCreateProgress(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load progress")
	}

	activity, err := svc.activityRepo.GetRecentActivity(userID, 6)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load activity")
	}

	attempts, err := svc.progressRepo.GetQuizAttempts(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load attempts")
	}

	since := time.Now().Add(-dashboardWindowWeeks * 7 * 24 * time.Hour)
	events, err := svc.activityRepo.GetPointEvents(userID, since)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load point events")
	}

	resp := &dto.DashboardResponse{
		Progress:       *toProgressResponse(progress),
		RecentActivity: toActivityEntries(activity),
		QuizScores:     lastQuizBars(attempts, 6),
		WeeklyPoints:   BucketPointsByWeek(events, dashboardWindowWeeks, time.Now()),
	}

	if err := svc.redisSvc.Set(context.Background(), cacheKey, resp, dashboardCacheTTL); err != nil {
		log.WithError(err).Debug("Failed to cache dashboard")
	}
	return resp, nil
}

// EmptyDashboard is what anonymous visitors see: all zeroes, no history.
func (svc *ProgressService) EmptyDashboard() *dto.DashboardResponse {
	return &dto.DashboardResponse{
		Progress:       dto.ProgressResponse{},
		RecentActivity: []dto.ActivityEntry{},
		QuizScores:     []dto.QuizScoreBar{},
		WeeklyPoints:   BucketPointsByWeek(nil, dashboardWindowWeeks, time.Now()),
	}
}

func (svc *ProgressService) invalidateDashboard(userID string) {
	if err := svc.redisSvc.Delete(context.Background(), dashboardCacheKey(userID)); err != nil {
		log.WithError(err).Debug("Failed to invalidate dashboard cache")
	}
}

func dashboardCacheKey(userID string) string {
	return "dashboard:" + userID
}

func toProgressResponse(p *model.UserProgress) *dto.ProgressResponse {
	return &dto.ProgressResponse{
		OverallProgress:  p.OverallProgress,
		AverageScore:     p.AverageScore,
		StudyTimeMinutes: p.StudyTimeMinutes,
		TotalPoints:      p.TotalPoints,
		MedalsCount:      p.MedalsCount,
		CurrentStreak:    p.CurrentStreak,
	}
}

func toActivityEntries(entries []model.ActivityLog) []dto.ActivityEntry {
	out := make([]dto.ActivityEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ActivityEntry{
			Action:    e.Action,
			Item:      e.Item,
			Type:      e.Type,
			Points:    e.Points,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

// lastQuizBars keeps the newest attempt per quiz, then the last n of
// those in chronological order.
func lastQuizBars(attempts []model.UserQuizAttempt, n int) []dto.QuizScoreBar {
	type latest struct {
		attempt model.UserQuizAttempt
		order   int
	}

	byQuiz := make(map[string]latest, len(attempts))
	for i, a := range attempts {
		byQuiz[a.QuizID] = latest{attempt: a, order: i}
	}

	ordered := make([]latest, 0, len(byQuiz))
	for _, l := range byQuiz {
		ordered = append(ordered, l)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].order < ordered[j].order })

	if len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}

	bars := make([]dto.QuizScoreBar, 0, len(ordered))
	for i, l := range ordered {
		bars = append(bars, dto.QuizScoreBar{
			QuizID: l.attempt.QuizID,
			Title:  fmt.Sprintf("Quiz %d", i+1),
			Score:  l.attempt.Score,
		})
	}
	return bars
}
