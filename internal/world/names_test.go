package world

import (
	"testing"
)

// testDB is a helper that creates an in-memory DB for testing.
func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreatureName(t *testing.T) {
	db := testDB(t)

	if _, ok := db.CreatureName(448); ok {
		t.Error("expected miss on empty table")
	}

	if err := db.SetCreatureName(448, "Hogger"); err != nil {
		t.Fatalf("SetCreatureName: %v", err)
	}
	name, ok := db.CreatureName(448)
	if !ok {
		t.Fatal("expected hit")
	}
	if name != "Hogger" {
		t.Errorf("name = %q, want Hogger", name)
	}
}

func TestSetCreatureNameOverwrites(t *testing.T) {
	db := testDB(t)

	db.SetCreatureName(448, "Hoggar")
	db.SetCreatureName(448, "Hogger")

	name, _ := db.CreatureName(448)
	if name != "Hogger" {
		t.Errorf("name = %q, want Hogger", name)
	}
}

func TestQuestAndZoneNames(t *testing.T) {
	db := testDB(t)

	if err := db.SetQuestName(176, "The People's Militia"); err != nil {
		t.Fatalf("SetQuestName: %v", err)
	}
	if err := db.SetZoneName(40, "Westfall"); err != nil {
		t.Fatalf("SetZoneName: %v", err)
	}

	if title, ok := db.QuestName(176); !ok || title != "The People's Militia" {
		t.Errorf("quest = %q (%v), want The People's Militia", title, ok)
	}
	if name, ok := db.ZoneName(40); !ok || name != "Westfall" {
		t.Errorf("zone = %q (%v), want Westfall", name, ok)
	}
	if _, ok := db.QuestName(99999); ok {
		t.Error("expected miss for unknown quest")
	}
}
