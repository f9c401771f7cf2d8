package store

import (
	"database/sql"
	"time"
)

// Event represents one logged gesture detection.
type Event struct {
	ID         string
	Gesture    string
	DetectedAt time.Time
}

// EventRepository provides access to the detection event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Insert logs a gesture detection.
func (r *EventRepository) Insert(e *Event) error {
	if e.DetectedAt.IsZero() {
		e.DetectedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO events (id, gesture, detected_at) VALUES (?, ?, ?)`,
		e.ID, e.Gesture, e.DetectedAt,
	)
	return err
}

// Recent retrieves the most recent detections, newest first.
func (r *EventRepository) Recent(limit int) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture, detected_at FROM events
		 ORDER BY detected_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.Gesture, &e.DetectedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Prune removes detections older than the cutoff and returns how many
// rows were deleted.
func (r *EventRepository) Prune(before time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM events WHERE detected_at < ?`, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
