package world

import (
	"database/sql"
	"fmt"
	"time"
)

// Resolver turns numeric game entity ids into display names. Lookups
// that miss return ok=false; callers fall back to a synthetic label.
type Resolver interface {
	CreatureName(entry int) (string, bool)
	QuestName(entry int) (string, bool)
	ZoneName(entry int) (string, bool)
}

// CreatureName returns the display name for a creature entry.
func (db *DB) CreatureName(entry int) (string, bool) {
	return db.lookup("SELECT name FROM creature_names WHERE entry = ?", entry)
}

// QuestName returns the title for a quest entry.
func (db *DB) QuestName(entry int) (string, bool) {
	return db.lookup("SELECT title FROM quest_names WHERE entry = ?", entry)
}

// ZoneName returns the display name for a zone entry.
func (db *DB) ZoneName(entry int) (string, bool) {
	return db.lookup("SELECT name FROM zone_names WHERE entry = ?", entry)
}

func (db *DB) lookup(query string, entry int) (string, bool) {
	var name string
	err := db.QueryRow(query, entry).Scan(&name)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		return "", false
	}
	return name, true
}

// SetCreatureName inserts or replaces a creature name.
func (db *DB) SetCreatureName(entry int, name string) error {
	_, err := db.Exec(`
		INSERT INTO creature_names (entry, name, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(entry) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at
	`, entry, name, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("set creature name: %w", err)
	}
	return nil
}

// SetQuestName inserts or replaces a quest title.
func (db *DB) SetQuestName(entry int, title string) error {
	_, err := db.Exec(`
		INSERT INTO quest_names (entry, title, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(entry) DO UPDATE SET title = excluded.title, updated_at = excluded.updated_at
	`, entry, title, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("set quest name: %w", err)
	}
	return nil
}

// SetZoneName inserts or replaces a zone name.
func (db *DB) SetZoneName(entry int, name string) error {
	_, err := db.Exec(`
		INSERT INTO zone_names (entry, name, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(entry) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at
	`, entry, name, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("set zone name: %w", err)
	}
	return nil
}
