package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"questhunt/internal/catalog"
	"questhunt/internal/progress"
	"questhunt/internal/service"
	"questhunt/internal/store"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	st, err := store.NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore() error = %v", err)
	}
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	engine, err := progress.NewEngine()
	if err != nil {
		t.Fatalf("progress.NewEngine() error = %v", err)
	}
	svc, err := service.New(st, c, engine, 5, 6)
	if err != nil {
		t.Fatalf("service.New() error = %v", err)
	}
	return NewHandler(svc)
}

func TestQuestLifecycleOverHTTP(t *testing.T) {
	h := newTestHandler(t)
	router := NewRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quest", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/v1/quest status = %d, body=%s", rec.Code, rec.Body.String())
	}

	var view struct {
		SessionID string `json:"session_id"`
		Targets   []struct {
			Label string `json:"label"`
			Emoji string `json:"emoji"`
		} `json:"targets"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode quest error = %v", err)
	}
	if view.SessionID == "" || len(view.Targets) != 5 {
		t.Fatalf("quest view = %+v, want session id and 5 targets", view)
	}

	// Report every target with confidences: the quest completes and the
	// response carries the progression outcome.
	detections := make([]map[string]any, 0, len(view.Targets))
	for _, target := range view.Targets {
		detections = append(detections, map[string]any{"label": target.Label, "confidence": 0.9})
	}
	payload, _ := json.Marshal(map[string]any{
		"session_id": view.SessionID,
		"detections": detections,
	})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/quest/detections", bytes.NewReader(payload))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST detections status = %d, body=%s", rec.Code, rec.Body.String())
	}

	var report struct {
		Quest struct {
			Completed bool `json:"completed"`
			Score     int  `json:"score"`
		} `json:"quest"`
		NewlyFound []string        `json:"newly_found"`
		Completion *map[string]any `json:"completion"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report error = %v", err)
	}
	if !report.Quest.Completed || report.Quest.Score != 250 {
		t.Fatalf("report quest = %+v, want completed with 250 points", report.Quest)
	}
	if len(report.NewlyFound) != 5 || report.Completion == nil {
		t.Fatalf("report = %+v, want 5 finds and a completion block", report)
	}

	// Progression is visible on its own endpoint afterwards.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/progress", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET progress status = %d", rec.Code)
	}
	var rec2 struct {
		TotalQuestsCompleted int `json:"total_quests_completed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &rec2); err != nil {
		t.Fatalf("decode progress error = %v", err)
	}
	if rec2.TotalQuestsCompleted != 1 {
		t.Fatalf("total_quests_completed = %d, want 1", rec2.TotalQuestsCompleted)
	}
}

func TestGetQuestUnknownSessionReturns404(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quest?session_id=nope", nil)
	rec := httptest.NewRecorder()
	h.getQuest(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d, body=%s", http.StatusNotFound, rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response error = %v", err)
	}
	if resp["error"] != service.ErrSessionNotFound.Error() {
		t.Fatalf("expected error %q, got %q", service.ErrSessionNotFound.Error(), resp["error"])
	}
}

func TestReportDetectionsBadBodyReturns400(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quest/detections", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.reportDetections(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestReportDetectionsEmptyBatchIsNoOp(t *testing.T) {
	h := newTestHandler(t)

	view, err := h.svc.StartQuest()
	if err != nil {
		t.Fatalf("StartQuest() error = %v", err)
	}

	payload, _ := json.Marshal(map[string]any{"session_id": view.SessionID})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quest/detections", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.reportDetections(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d, body=%s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var report struct {
		Quest struct {
			Score     int  `json:"score"`
			Completed bool `json:"completed"`
		} `json:"quest"`
		NewlyFound    []string `json:"newly_found"`
		Bonus         []string `json:"bonus"`
		PointsAwarded int      `json:"points_awarded"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report error = %v", err)
	}
	if report.PointsAwarded != 0 || len(report.NewlyFound) != 0 || len(report.Bonus) != 0 {
		t.Fatalf("report = %+v, want no points and no finds", report)
	}
	if report.Quest.Score != 0 || report.Quest.Completed {
		t.Fatalf("quest = %+v, want untouched quest", report.Quest)
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	payload, _ := json.Marshal(map[string]any{"labels": []string{"cup", "spoon"}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggestions", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.suggestions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d, body=%s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var resp struct {
		Suggestions []struct {
			Title   string `json:"title"`
			IsCombo bool   `json:"is_combo"`
			Score   int    `json:"score"`
		} `json:"suggestions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response error = %v", err)
	}
	if len(resp.Suggestions) == 0 || !resp.Suggestions[0].IsCombo {
		t.Fatalf("suggestions = %+v, want combo first", resp.Suggestions)
	}
}

func TestCompleteProjectUnknownTitleReturns404(t *testing.T) {
	h := newTestHandler(t)

	payload, _ := json.Marshal(map[string]any{"title": "No Such Project"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/complete", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.completeProject(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d, body=%s", http.StatusNotFound, rec.Code, rec.Body.String())
	}
}

func TestCompleteProjectIdempotentOverHTTP(t *testing.T) {
	h := newTestHandler(t)
	router := NewRouter(h)

	payload, _ := json.Marshal(map[string]any{
		"title":            "Oxidation Race",
		"objects_detected": []string{"apple"},
	})
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/complete", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d status = %d, body=%s", i+1, rec.Code, rec.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/completed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET completed status = %d", rec.Code)
	}
	var resp struct {
		Projects []struct {
			Title string `json:"title"`
		} `json:"projects"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response error = %v", err)
	}
	if len(resp.Projects) != 1 || resp.Projects[0].Title != "Oxidation Race" {
		t.Fatalf("completed projects = %+v, want one Oxidation Race entry", resp.Projects)
	}
}

func TestTrophiesEndpoint(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trophies", nil)
	rec := httptest.NewRecorder()
	h.trophies(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var resp struct {
		Trophies []struct {
			ID       string `json:"id"`
			Unlocked bool   `json:"unlocked"`
		} `json:"trophies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response error = %v", err)
	}
	if len(resp.Trophies) != 8 {
		t.Fatalf("trophies len = %d, want 8", len(resp.Trophies))
	}
}
