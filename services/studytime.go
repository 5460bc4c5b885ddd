package services

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/agile-academy/academy_api/dto"
)

const (
	defaultStudyTick = 5 * time.Second
	defaultStudyIdle = 45 * time.Second
)

// studyTracker accrues active study time for one user. Seconds pile up
// while the user stays active; only whole minutes ever reach the
// database, the remainder carries over to the next flush.
type studyTracker struct {
	lastActivity time.Time
	accrued      time.Duration
}

// tick advances the tracker by one interval. Returns the whole minutes
// ready to flush, which is zero while the user is idle or under a
// minute of accrued time.
func (t *studyTracker) tick(now time.Time, interval, idleThreshold time.Duration) int {
	if now.Sub(t.lastActivity) >= idleThreshold {
		return 0
	}

	t.accrued += interval
	if t.accrued < time.Minute {
		return 0
	}

	minutes := int(t.accrued / time.Minute)
	t.accrued -= time.Duration(minutes) * time.Minute
	return minutes
}

// drain takes the whole minutes accrued so far, keeping the remainder.
func (t *studyTracker) drain() int {
	minutes := int(t.accrued / time.Minute)
	t.accrued -= time.Duration(minutes) * time.Minute
	return minutes
}

// StudyTimeService tracks active study sessions. A single ticker walks
// all trackers; an idle user simply stops accruing until the next
// heartbeat. Anything under a minute at close time is discarded.
type StudyTimeService struct {
	context.DefaultService

	progressSvc *ProgressService

	tickInterval  time.Duration
	idleThreshold time.Duration

	mu       sync.Mutex
	trackers map[string]*studyTracker

	closed chan struct{}
}

const STUDY_TIME_SVC = "study_time_svc"

func (svc StudyTimeService) Id() string {
	return STUDY_TIME_SVC
}

func (svc *StudyTimeService) Configure(ctx *context.Context) error {
	svc.progressSvc = ctx.Service(PROGRESS_SVC).(*ProgressService)

	svc.tickInterval = envDuration("STUDY_TICK_MS", defaultStudyTick)
	svc.idleThreshold = envDuration("STUDY_IDLE_MS", defaultStudyIdle)

	svc.trackers = make(map[string]*studyTracker)
	svc.closed = make(chan struct{})
	return svc.DefaultService.Configure(ctx)
}

func (svc *StudyTimeService) Start() error {
	go svc.run()
	return nil
}

func (svc *StudyTimeService) Shutdown() {
	close(svc.closed)
}

func (svc *StudyTimeService) run() {
	ticker := time.NewTicker(svc.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			svc.tickAll(now)
		case <-svc.closed:
			return
		}
	}
}

func (svc *StudyTimeService) tickAll(now time.Time) {
	flushes := make(map[string]int)

	svc.mu.Lock()
	for userID, tracker := range svc.trackers {
		if minutes := tracker.tick(now, svc.tickInterval, svc.idleThreshold); minutes > 0 {
			flushes[userID] = minutes
		}
	}
	svc.mu.Unlock()

	for userID, minutes := range flushes {
		svc.flushMinutes(userID, minutes)
	}
}

// Touch marks the user active, creating a tracker on first contact.
func (svc *StudyTimeService) Touch(userID string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	tracker, ok := svc.trackers[userID]
	if !ok {
		tracker = &studyTracker{}
		svc.trackers[userID] = tracker
	}
	tracker.lastActivity = time.Now()
}

// Heartbeat is Touch plus a view of the tracker for the client.
func (svc *StudyTimeService) Heartbeat(userID string) *dto.HeartbeatResponse {
	svc.Touch(userID)

	svc.mu.Lock()
	tracker := svc.trackers[userID]
	accrued := int(tracker.accrued / time.Second)
	svc.mu.Unlock()

	return &dto.HeartbeatResponse{
		Active:         true,
		AccruedSeconds: accrued,
	}
}

// Flush pushes any whole accrued minutes to the progress row right now.
// Sub-minute remainder stays on the tracker.
func (svc *StudyTimeService) Flush(userID string) int {
	svc.mu.Lock()
	tracker, ok := svc.trackers[userID]
	var minutes int
	if ok {
		minutes = tracker.drain()
	}
	svc.mu.Unlock()

	if minutes > 0 {
		svc.flushMinutes(userID, minutes)
	}
	return minutes
}

// Close tears the tracker down. Whole minutes are flushed first; any
// leftover seconds are discarded, matching the flush granularity.
func (svc *StudyTimeService) Close(userID string) int {
	svc.mu.Lock()
	tracker, ok := svc.trackers[userID]
	var minutes int
	if ok {
		minutes = tracker.drain()
		delete(svc.trackers, userID)
	}
	svc.mu.Unlock()

	if minutes > 0 {
		svc.flushMinutes(userID, minutes)
	}
	return minutes
}

// flushMinutes is fire-and-forget: a failed write costs at most one
// flush worth of minutes and never surfaces to the user.
func (svc *StudyTimeService) flushMinutes(userID string, minutes int) {
	if err := svc.progressSvc.AddStudyMinutes(userID, minutes); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id": userID,
			"minutes": minutes,
		}).Error("Failed to flush study minutes")
	}
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}
