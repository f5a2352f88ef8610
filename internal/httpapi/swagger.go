package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) swaggerUI(w http.ResponseWriter, r *http.Request) {
	const page = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Quest Hunt API Swagger</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    const docPath = window.location.pathname.startsWith('/swagger')
      ? '/swagger/openapi.json'
      : '/docs/openapi.json';
    window.ui = SwaggerUIBundle({
      url: docPath,
      dom_id: '#swagger-ui'
    });
  </script>
</body>
</html>`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (h *Handler) swaggerSpec(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, openAPISpec(requestBaseURL(r)))
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); forwarded != "" {
		scheme = strings.Split(forwarded, ",")[0]
		scheme = strings.TrimSpace(scheme)
	}

	host := strings.TrimSpace(r.Host)
	if host == "" {
		host = "localhost:8080"
	}
	return scheme + "://" + host
}

func openAPISpec(serverURL string) map[string]any {
	jsonResponse := func(description string) map[string]any {
		return map[string]any{
			"200": map[string]any{
				"description": description,
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"type": "object"},
					},
				},
			},
		}
	}
	jsonBody := map[string]any{
		"required": true,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"type": "object"},
			},
		},
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "Quest Hunt API",
			"description": "Scavenger-hunt quest tracking, progression, and craft-project suggestions",
			"version":     "1.0.0",
		},
		"servers": []map[string]string{
			{"url": serverURL},
		},
		"paths": map[string]any{
			"/healthz": map[string]any{
				"get": map[string]any{
					"summary":     "Health check",
					"operationId": "healthz",
					"responses":   jsonResponse("OK"),
				},
			},
			"/api/v1/quest": map[string]any{
				"post": map[string]any{
					"summary":     "Start a new quest session",
					"operationId": "startQuest",
					"responses":   jsonResponse("New quest with five targets"),
				},
				"get": map[string]any{
					"summary":     "Current quest snapshot",
					"operationId": "getQuest",
					"parameters": []map[string]any{
						{"name": "session_id", "in": "query", "required": true, "schema": map[string]any{"type": "string"}},
					},
					"responses": jsonResponse("Quest snapshot"),
				},
			},
			"/api/v1/quest/detections": map[string]any{
				"post": map[string]any{
					"summary":     "Report a batch of detected objects",
					"operationId": "reportDetections",
					"requestBody": jsonBody,
					"responses":   jsonResponse("Matched targets, bonus finds, points, and completion outcome"),
				},
			},
			"/api/v1/suggestions": map[string]any{
				"post": map[string]any{
					"summary":     "Rank craft-project suggestions for detected labels",
					"operationId": "suggestions",
					"requestBody": jsonBody,
					"responses":   jsonResponse("Ranked suggestions, combos first"),
				},
			},
			"/api/v1/progress": map[string]any{
				"get": map[string]any{
					"summary":     "Cross-session progression record",
					"operationId": "progress",
					"responses":   jsonResponse("Streak, best time, trophies, totals"),
				},
			},
			"/api/v1/trophies": map[string]any{
				"get": map[string]any{
					"summary":     "Trophy catalog with unlocked flags",
					"operationId": "trophies",
					"responses":   jsonResponse("All trophies"),
				},
			},
			"/api/v1/projects": map[string]any{
				"get": map[string]any{
					"summary":     "Full project definition by title",
					"operationId": "project",
					"parameters": []map[string]any{
						{"name": "title", "in": "query", "required": true, "schema": map[string]any{"type": "string"}},
					},
					"responses": jsonResponse("Project with steps and materials"),
				},
			},
			"/api/v1/projects/complete": map[string]any{
				"post": map[string]any{
					"summary":     "Mark a project completed (idempotent by title)",
					"operationId": "completeProject",
					"requestBody": jsonBody,
					"responses":   jsonResponse("Completed-project record"),
				},
			},
			"/api/v1/projects/completed": map[string]any{
				"get": map[string]any{
					"summary":     "Completed-project log, newest first",
					"operationId": "completedProjects",
					"responses":   jsonResponse("Completed projects"),
				},
			},
		},
	}
}
