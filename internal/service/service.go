package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"questhunt/internal/catalog"
	"questhunt/internal/model"
	"questhunt/internal/progress"
	"questhunt/internal/quest"
	"questhunt/internal/store"
	"questhunt/internal/suggest"
)

var (
	ErrSessionNotFound  = errors.New("quest session not found")
	ErrProjectNotFound  = errors.New("project not found in catalog")
	ErrProgressNotSaved = errors.New("progress could not be saved")
)

const suggestionCacheSize = 1024

type DetectionsRequest struct {
	SessionID  string            `json:"session_id"`
	Detections []model.Detection `json:"detections"`
}

type SuggestionsRequest struct {
	Labels     []string `json:"labels"`
	MaxResults int      `json:"max_results"`
}

type CompleteProjectRequest struct {
	Title           string   `json:"title"`
	ObjectsDetected []string `json:"objects_detected"`
}

type CompleteProjectResponse struct {
	Project          model.CompletedProject `json:"project"`
	AlreadyCompleted bool                   `json:"already_completed"`
}

// TargetView is one quest target decorated for display.
type TargetView struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Found bool   `json:"found"`
}

// QuestView is the client-facing snapshot of a session's quest.
type QuestView struct {
	SessionID   string       `json:"session_id"`
	Targets     []TargetView `json:"targets"`
	FoundCount  int          `json:"found_count"`
	TargetCount int          `json:"target_count"`
	Score       int          `json:"score"`
	Completed   bool         `json:"completed"`
	StartedAt   time.Time    `json:"started_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// CompletionResult reports the progression outcome of the batch that
// finished a quest. NewBest is true when this run set the stored best time,
// including the very first one.
type CompletionResult struct {
	CompletionSeconds float64                 `json:"completion_seconds"`
	NewBest           bool                    `json:"new_best"`
	Unlocked          []model.Trophy          `json:"unlocked"`
	Progress          model.ProgressionRecord `json:"progress"`
}

// DetectionReport is the outcome of one detection batch.
type DetectionReport struct {
	Quest         QuestView         `json:"quest"`
	NewlyFound    []string          `json:"newly_found"`
	Bonus         []string          `json:"bonus"`
	PointsAwarded int               `json:"points_awarded"`
	Completion    *CompletionResult `json:"completion,omitempty"`
}

type session struct {
	quest *quest.Quest
	score int
}

type Service struct {
	store       store.Store
	catalog     *catalog.Catalog
	matcher     *suggest.Matcher
	progression *progress.Engine

	questSize      int
	maxSuggestions int

	sessionMu sync.RWMutex
	sessions  map[string]*session

	suggestionCache *lru.Cache[string, []model.Suggestion]

	rngMu sync.Mutex
	rng   *rand.Rand

	now func() time.Time
}

func New(st store.Store, c *catalog.Catalog, engine *progress.Engine, questSize int, maxSuggestions int) (*Service, error) {
	if questSize <= 0 {
		questSize = quest.DefaultSize
	}
	if maxSuggestions <= 0 {
		maxSuggestions = suggest.DefaultMaxResults
	}
	cache, err := lru.New[string, []model.Suggestion](suggestionCacheSize)
	if err != nil {
		return nil, err
	}
	return &Service{
		store:           st,
		catalog:         c,
		matcher:         suggest.NewMatcher(c),
		progression:     engine,
		questSize:       questSize,
		maxSuggestions:  maxSuggestions,
		sessions:        make(map[string]*session),
		suggestionCache: cache,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		now:             time.Now,
	}, nil
}

// SetClock overrides the service clock. Tests only.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// StartQuest creates a new session with a freshly sampled quest.
func (s *Service) StartQuest() (QuestView, error) {
	s.rngMu.Lock()
	q, err := quest.New(catalog.PreferredLabels(), s.questSize, s.rng, s.now())
	s.rngMu.Unlock()
	if err != nil {
		return QuestView{}, err
	}

	sessionID := uuid.NewString()
	s.sessionMu.Lock()
	s.sessions[sessionID] = &session{quest: q}
	s.sessionMu.Unlock()

	return s.questView(sessionID, q, 0), nil
}

// Quest returns the current snapshot for a session.
func (s *Service) Quest(sessionID string) (QuestView, error) {
	sess, id, err := s.session(sessionID)
	if err != nil {
		return QuestView{}, err
	}
	s.sessionMu.RLock()
	defer s.sessionMu.RUnlock()
	return s.questView(id, sess.quest, sess.score), nil
}

// ReportDetections applies one detection batch to a session's quest, awards
// points, and on the completing batch records the run in the progression
// store. An empty batch is a no-op that returns the current snapshot with
// zero points. When the progression record cannot be persisted the report is
// still returned alongside ErrProgressNotSaved; the in-memory quest stays
// completed.
func (s *Service) ReportDetections(req DetectionsRequest) (DetectionReport, error) {
	sess, id, err := s.session(req.SessionID)
	if err != nil {
		return DetectionReport{}, err
	}

	detections := append([]model.Detection(nil), req.Detections...)
	model.SortDetections(detections)
	labels := model.Labels(detections)

	s.sessionMu.Lock()
	batch := sess.quest.ReportDetections(labels)
	points := batch.Points()
	sess.score += points

	var completion *CompletionResult
	var saveErr error
	if sess.quest.IsComplete() && !sess.quest.Completed() {
		elapsed, completeErr := sess.quest.Complete(s.now())
		if completeErr == nil {
			completion, saveErr = s.recordCompletion(elapsed)
		}
	}
	report := DetectionReport{
		Quest:         s.questView(id, sess.quest, sess.score),
		NewlyFound:    emptyIfNil(batch.NewlyFound),
		Bonus:         emptyIfNil(batch.Bonus),
		PointsAwarded: points,
		Completion:    completion,
	}
	s.sessionMu.Unlock()

	if saveErr != nil {
		return report, fmt.Errorf("%w: %v", ErrProgressNotSaved, saveErr)
	}
	return report, nil
}

func (s *Service) recordCompletion(elapsed float64) (*CompletionResult, error) {
	rec, err := s.store.LoadProgress()
	if err != nil {
		rec = model.DefaultProgression()
	}
	updated, unlocked := s.progression.RecordCompletion(rec, elapsed, s.now())
	if unlocked == nil {
		unlocked = []model.Trophy{}
	}
	result := &CompletionResult{
		CompletionSeconds: elapsed,
		NewBest:           updated.BestTime != nil && *updated.BestTime == elapsed,
		Unlocked:          unlocked,
		Progress:          updated,
	}
	if err := s.store.SaveProgress(updated); err != nil {
		return result, err
	}
	return result, nil
}

// Suggestions ranks catalog projects against the given labels. Results are
// cached per label list; a zero MaxResults falls back to the configured
// default, a negative one means none.
func (s *Service) Suggestions(req SuggestionsRequest) []model.Suggestion {
	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = s.maxSuggestions
	}
	if maxResults < 0 {
		return []model.Suggestion{}
	}

	labels := make([]string, 0, len(req.Labels))
	for _, label := range req.Labels {
		if label = strings.TrimSpace(label); label != "" {
			labels = append(labels, label)
		}
	}
	key := suggestionCacheKey(labels, maxResults)
	if cached, ok := s.suggestionCache.Get(key); ok {
		return cached
	}
	suggestions := s.matcher.Suggest(labels, maxResults)
	s.suggestionCache.Add(key, suggestions)
	return suggestions
}

// Progress returns the durable progression record.
func (s *Service) Progress() (model.ProgressionRecord, error) {
	return s.store.LoadProgress()
}

// Trophies lists the whole trophy catalog with unlocked flags.
func (s *Service) Trophies() ([]model.Trophy, error) {
	rec, err := s.store.LoadProgress()
	if err != nil {
		rec = model.DefaultProgression()
	}
	return s.progression.Trophies(rec), nil
}

// CompleteProject appends a project to the completed log. Completing a title
// twice is reported, not an error.
func (s *Service) CompleteProject(req CompleteProjectRequest) (CompleteProjectResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return CompleteProjectResponse{}, ErrProjectNotFound
	}
	project, ok := s.catalog.FindByTitle(title)
	if !ok {
		return CompleteProjectResponse{}, ErrProjectNotFound
	}

	already, err := s.store.IsProjectCompleted(project.Title)
	if err != nil {
		return CompleteProjectResponse{}, err
	}

	cp := model.CompletedProject{
		Title:           project.Title,
		Emoji:           project.Emoji,
		STEMTag:         project.STEMTag,
		Difficulty:      project.Difficulty,
		TimeEstimate:    project.TimeEstimate,
		Tagline:         project.Tagline,
		CompletedAt:     s.now(),
		ObjectsDetected: emptyIfNil(req.ObjectsDetected),
	}
	if !already {
		if err := s.store.AppendCompletedProject(cp); err != nil {
			return CompleteProjectResponse{}, err
		}
	}
	return CompleteProjectResponse{Project: cp, AlreadyCompleted: already}, nil
}

// CompletedProjects lists the completed-project log, newest first.
func (s *Service) CompletedProjects() ([]model.CompletedProject, error) {
	return s.store.ListCompletedProjects()
}

// ProjectByTitle looks up the full catalog definition of a project.
func (s *Service) ProjectByTitle(title string) (model.Project, error) {
	project, ok := s.catalog.FindByTitle(strings.TrimSpace(title))
	if !ok {
		return model.Project{}, ErrProjectNotFound
	}
	return project, nil
}

func (s *Service) session(sessionID string) (*session, string, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return nil, "", ErrSessionNotFound
	}
	s.sessionMu.RLock()
	sess, ok := s.sessions[id]
	s.sessionMu.RUnlock()
	if !ok {
		return nil, "", ErrSessionNotFound
	}
	return sess, id, nil
}

func (s *Service) questView(sessionID string, q *quest.Quest, score int) QuestView {
	found := make(map[string]struct{})
	for _, label := range q.Found() {
		found[label] = struct{}{}
	}
	targets := make([]TargetView, 0, len(q.Targets()))
	for _, label := range q.Targets() {
		_, ok := found[label]
		targets = append(targets, TargetView{
			Label: label,
			Emoji: catalog.Emoji(label),
			Found: ok,
		})
	}
	view := QuestView{
		SessionID:   sessionID,
		Targets:     targets,
		FoundCount:  len(found),
		TargetCount: len(targets),
		Score:       score,
		Completed:   q.Completed(),
		StartedAt:   q.StartedAt(),
	}
	if q.Completed() {
		completedAt := q.CompletedAt()
		view.CompletedAt = &completedAt
	}
	return view
}

// suggestionCacheKey length-prefixes each label so distinct label lists can
// never render to the same key.
func suggestionCacheKey(labels []string, maxResults int) string {
	var key strings.Builder
	for _, label := range labels {
		key.WriteString(strconv.Itoa(len(label)))
		key.WriteByte(':')
		key.WriteString(label)
	}
	key.WriteByte('#')
	key.WriteString(strconv.Itoa(maxResults))
	return key.String()
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
