package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"questhunt/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) startQuest(w http.ResponseWriter, _ *http.Request) {
	view, err := h.svc.StartQuest()
	if err != nil {
		log.Printf("startQuest internal error: err=%v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) getQuest(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	view, err := h.svc.Quest(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			log.Printf("getQuest not found: session_id=%s", sessionID)
			writeError(w, http.StatusNotFound, err.Error())
		default:
			log.Printf("getQuest internal error: session_id=%s err=%v", sessionID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) reportDetections(w http.ResponseWriter, r *http.Request) {
	var req service.DetectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("reportDetections decode error: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.svc.ReportDetections(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			log.Printf("reportDetections not found: session_id=%s", req.SessionID)
			writeError(w, http.StatusNotFound, err.Error())
		default:
			log.Printf("reportDetections internal error: session_id=%s err=%v", req.SessionID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) suggestions(w http.ResponseWriter, r *http.Request) {
	var req service.SuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("suggestions decode error: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": h.svc.Suggestions(req),
	})
}

func (h *Handler) progress(w http.ResponseWriter, _ *http.Request) {
	rec, err := h.svc.Progress()
	if err != nil {
		log.Printf("progress internal error: err=%v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) trophies(w http.ResponseWriter, _ *http.Request) {
	trophies, err := h.svc.Trophies()
	if err != nil {
		log.Printf("trophies internal error: err=%v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"trophies": trophies,
	})
}

func (h *Handler) completeProject(w http.ResponseWriter, r *http.Request) {
	var req service.CompleteProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("completeProject decode error: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.CompleteProject(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			log.Printf("completeProject not found: title=%q", req.Title)
			writeError(w, http.StatusNotFound, err.Error())
		default:
			log.Printf("completeProject internal error: title=%q err=%v", req.Title, err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) completedProjects(w http.ResponseWriter, _ *http.Request) {
	completed, err := h.svc.CompletedProjects()
	if err != nil {
		log.Printf("completedProjects internal error: err=%v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"projects": completed,
	})
}

func (h *Handler) project(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	project, err := h.svc.ProjectByTitle(title)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			log.Printf("project not found: title=%q", title)
			writeError(w, http.StatusNotFound, err.Error())
		default:
			log.Printf("project internal error: title=%q err=%v", title, err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
