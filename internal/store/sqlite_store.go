package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"questhunt/internal/model"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(filePath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return nil, err
	}
	st := &SQLiteStore{db: db}
	if err := st.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadProgress() (model.ProgressionRecord, error) {
	row := s.db.QueryRow(`
		SELECT streak, last_session_date, trophies, best_time, total_quests_completed
		FROM progression
		WHERE id = 1`,
	)
	var rec model.ProgressionRecord
	var lastSessionDate sql.NullString
	var trophiesJSON string
	var bestTime sql.NullFloat64
	err := row.Scan(
		&rec.Streak,
		&lastSessionDate,
		&trophiesJSON,
		&bestTime,
		&rec.TotalQuestsCompleted,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultProgression(), nil
	}
	if err != nil {
		return model.DefaultProgression(), err
	}

	if lastSessionDate.Valid {
		rec.LastSessionDate = lastSessionDate.String
	}
	if bestTime.Valid {
		best := bestTime.Float64
		rec.BestTime = &best
	}
	rec.Trophies = fromJSONList(trophiesJSON)
	return rec, nil
}

func (s *SQLiteStore) SaveProgress(rec model.ProgressionRecord) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO progression
		(id, streak, last_session_date, trophies, best_time, total_quests_completed)
		VALUES (1, ?, ?, ?, ?, ?)`,
		rec.Streak,
		nullableString(rec.LastSessionDate),
		toJSONList(rec.Trophies),
		nullableFloat(rec.BestTime),
		rec.TotalQuestsCompleted,
	)
	return err
}

func (s *SQLiteStore) AppendCompletedProject(cp model.CompletedProject) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO completed_projects
		(title, emoji, stem_tag, difficulty, time_est, tagline, completed_at, objects_detected)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cp.Title,
		cp.Emoji,
		cp.STEMTag,
		cp.Difficulty,
		cp.TimeEstimate,
		cp.Tagline,
		toTS(cp.CompletedAt),
		toJSONList(cp.ObjectsDetected),
	)
	return err
}

func (s *SQLiteStore) ListCompletedProjects() ([]model.CompletedProject, error) {
	rows, err := s.db.Query(`
		SELECT title, emoji, stem_tag, difficulty, time_est, tagline, completed_at, objects_detected
		FROM completed_projects
		ORDER BY rowid DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.CompletedProject, 0)
	for rows.Next() {
		var cp model.CompletedProject
		var completedAt string
		var objectsJSON string
		if err := rows.Scan(
			&cp.Title,
			&cp.Emoji,
			&cp.STEMTag,
			&cp.Difficulty,
			&cp.TimeEstimate,
			&cp.Tagline,
			&completedAt,
			&objectsJSON,
		); err != nil {
			return nil, err
		}
		cp.CompletedAt = fromTS(completedAt)
		cp.ObjectsDetected = fromJSONList(objectsJSON)
		result = append(result, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SQLiteStore) IsProjectCompleted(title string) (bool, error) {
	row := s.db.QueryRow(`
		SELECT 1
		FROM completed_projects
		WHERE title = ?`,
		title,
	)
	var one int
	err := row.Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		PRAGMA journal_mode=WAL;
		CREATE TABLE IF NOT EXISTS progression (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			streak INTEGER NOT NULL,
			last_session_date TEXT,
			trophies TEXT NOT NULL,
			best_time REAL,
			total_quests_completed INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS completed_projects (
			title TEXT PRIMARY KEY,
			emoji TEXT NOT NULL,
			stem_tag TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			time_est TEXT NOT NULL,
			tagline TEXT NOT NULL,
			completed_at TEXT NOT NULL,
			objects_detected TEXT NOT NULL
		);
	`)
	return err
}

func toTS(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func fromTS(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func toJSONList(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func fromJSONList(raw string) []string {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}

func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
