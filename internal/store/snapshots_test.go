package store

import (
	"testing"

	"github.com/duskhelm/hivemind/internal/graph"
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

func seededExport(t *testing.T) *graph.Export {
	t.Helper()
	g := graph.New()
	a := g.RecordExperience(graph.Observation{
		Subject: "Hogger", Predicate: "defeated_with", Object: "kiting",
		Category: "combat", Confidence: 0.9, Source: graph.Source{BotID: "bot-1"},
	})
	b := g.RecordExperience(graph.Observation{
		Subject: "Hogger", Predicate: "located_in", Object: "Elwynn Forest",
		Category: "exploration", Confidence: 0.7, Source: graph.Source{BotID: "bot-2"},
	})
	g.AddEdge(a.NodeID, b.NodeID, "related", 0.6, false)
	return g.Export()
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	db := testDB(t)
	data := seededExport(t)

	snap, err := db.SaveSnapshot("nightly", data)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if snap.NodeCount != 2 || snap.EdgeCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", snap.NodeCount, snap.EdgeCount)
	}

	loaded, err := db.LoadSnapshot("nightly")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected snapshot")
	}
	if len(loaded.Nodes) != 2 || len(loaded.Edges) != 1 {
		t.Fatalf("loaded = %d nodes / %d edges, want 2 / 1", len(loaded.Nodes), len(loaded.Edges))
	}

	// Round trip into a fresh graph.
	g := graph.New()
	res, err := g.Import(loaded)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.NodesImported != 2 || res.EdgesImported != 1 {
		t.Errorf("imported = %d/%d, want 2/1", res.NodesImported, res.EdgesImported)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	db := testDB(t)

	loaded, err := db.LoadSnapshot("nope")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded != nil {
		t.Error("expected nil for missing snapshot")
	}
}

func TestLoadSnapshotNewestWins(t *testing.T) {
	db := testDB(t)

	g := graph.New()
	g.RecordExperience(graph.Observation{
		Subject: "Hogger", Predicate: "defeated_with", Object: "kiting",
		Category: "combat", Confidence: 0.9, Source: graph.Source{BotID: "bot-1"},
	})
	if _, err := db.SaveSnapshot("nightly", g.Export()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	g.RecordExperience(graph.Observation{
		Subject: "Murloc", Predicate: "defeated_with", Object: "ranged",
		Category: "combat", Confidence: 0.8, Source: graph.Source{BotID: "bot-1"},
	})
	if _, err := db.SaveSnapshot("nightly", g.Export()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	loaded, err := db.LoadSnapshot("nightly")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(loaded.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2 (newest snapshot)", len(loaded.Nodes))
	}
}

func TestListAndDeleteSnapshots(t *testing.T) {
	db := testDB(t)
	data := seededExport(t)

	db.SaveSnapshot("nightly", data)
	db.SaveSnapshot("manual", data)

	snaps, err := db.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(snaps))
	}

	n, err := db.DeleteSnapshots("nightly")
	if err != nil {
		t.Fatalf("DeleteSnapshots: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
}
