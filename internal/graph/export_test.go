package graph

import "testing"

func TestExportImportRoundTrip(t *testing.T) {
	src := New()
	a := src.RecordExperience(Observation{
		Subject: "Hogger", Predicate: "defeated_with", Object: "kiting",
		Category: "combat", Confidence: 0.9, Source: Source{BotID: "bot-1"},
		Tags: []string{"combat", "victory"},
	})
	b := src.RecordExperience(Observation{
		Subject: "Hogger", Predicate: "located_in", Object: "Elwynn Forest",
		Category: "exploration", Confidence: 0.7, Source: Source{BotID: "bot-2"},
	})
	src.AddEdge(a.NodeID, b.NodeID, "related", 0.6, true)

	data := src.Export()
	if len(data.Nodes) != 2 || len(data.Edges) != 1 {
		t.Fatalf("export = %d nodes / %d edges, want 2 / 1", len(data.Nodes), len(data.Edges))
	}

	dst := New()
	res, err := dst.Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.NodesImported != 2 {
		t.Errorf("nodesImported = %d, want 2", res.NodesImported)
	}
	if res.EdgesImported != 1 {
		t.Errorf("edgesImported = %d, want 1", res.EdgesImported)
	}

	// Same query results on both sides.
	if got := dst.Query(Filter{Subject: "Hogger"}); len(got) != 2 {
		t.Errorf("imported matches = %d, want 2", len(got))
	}
	if edges := dst.GetEdgesForNode(a.NodeID); len(edges) != 1 {
		t.Errorf("imported edges = %d, want 1", len(edges))
	}
}

func TestImportIdempotent(t *testing.T) {
	src := New()
	src.RecordExperience(Observation{
		Subject: "Hogger", Predicate: "defeated_with", Object: "kiting",
		Category: "combat", Confidence: 0.9, Source: Source{BotID: "bot-1"},
	})

	data := src.Export()
	dst := New()
	if _, err := dst.Import(data); err != nil {
		t.Fatalf("first Import: %v", err)
	}

	res, err := dst.Import(data)
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if res.NodesImported != 0 || res.EdgesImported != 0 {
		t.Errorf("re-import = %d nodes / %d edges, want 0 / 0", res.NodesImported, res.EdgesImported)
	}
	if dst.Len() != 1 {
		t.Errorf("len = %d, want 1", dst.Len())
	}
}

func TestImportSkipsDanglingEdges(t *testing.T) {
	g := New()
	res, err := g.Import(&Export{
		Edges: []*KnowledgeEdge{{
			ID:         "ke_dangling",
			FromNodeID: "kn_missing_a",
			ToNodeID:   "kn_missing_b",
			Relation:   "related",
			Weight:     0.5,
		}},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.EdgesImported != 0 {
		t.Errorf("edgesImported = %d, want 0", res.EdgesImported)
	}
}

func TestImportRejectsMalformedPayload(t *testing.T) {
	g := New()
	if _, err := g.Import(nil); err == nil {
		t.Error("expected error for nil payload")
	}
	if _, err := g.Import(&Export{Nodes: []*KnowledgeNode{{}}}); err == nil {
		t.Error("expected error for node without id")
	}
}

func TestImportRejectionLeavesGraphUntouched(t *testing.T) {
	g := New()

	valid := New().RecordExperience(Observation{
		Subject: "Hogger", Predicate: "defeated_with", Object: "kiting",
		Category: "combat", Confidence: 0.9, Source: Source{BotID: "bot-1"},
	})

	data := &Export{Nodes: []*KnowledgeNode{
		{ID: valid.NodeID, Subject: "Hogger", Predicate: "defeated_with", Object: "kiting"},
		{}, // no id
	}}
	if _, err := g.Import(data); err == nil {
		t.Fatal("expected error for payload with a malformed node")
	}
	if g.Len() != 0 {
		t.Errorf("len = %d, want 0 after rejected import", g.Len())
	}

	// Same for a malformed edge after valid nodes.
	data = &Export{
		Nodes: []*KnowledgeNode{{ID: valid.NodeID, Subject: "Hogger", Predicate: "defeated_with", Object: "kiting"}},
		Edges: []*KnowledgeEdge{{}},
	}
	if _, err := g.Import(data); err == nil {
		t.Fatal("expected error for payload with a malformed edge")
	}
	if g.Len() != 0 {
		t.Errorf("len = %d, want 0 after rejected import", g.Len())
	}
}

func TestExportPreservesStoredConfidence(t *testing.T) {
	g := New()
	g.RecordExperience(Observation{
		Subject: "Hogger", Predicate: "defeated_with", Object: "kiting",
		Category: "combat", Confidence: 0.9, Source: Source{BotID: "bot-1"},
	})

	data := g.Export()
	if data.Nodes[0].Confidence != 0.9 {
		t.Errorf("exported confidence = %f, want raw 0.9", data.Nodes[0].Confidence)
	}
}
