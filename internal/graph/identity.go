package graph

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// NodeID derives the stable identifier for a (subject, predicate, object)
// triple. Identity is case-insensitive and whitespace-trimmed, and
// deliberately excludes category and writer: two bots reporting the same
// triple land on the same node.
func NodeID(subject, predicate, object string) string {
	h := fnv.New64a()
	h.Write([]byte(normalizeTerm(subject) + "|" + normalizeTerm(predicate) + "|" + normalizeTerm(object)))
	return fmt.Sprintf("kn_%x", h.Sum64())
}

// EdgeID derives the stable identifier for a (relation, from, to) edge.
func EdgeID(relation, fromNodeID, toNodeID string) string {
	h := fnv.New64a()
	h.Write([]byte(normalizeTerm(relation) + "|" + fromNodeID + "|" + toNodeID))
	return fmt.Sprintf("ke_%x", h.Sum64())
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
