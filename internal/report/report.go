// Package report renders knowledge-graph output as human-readable
// markdown. It is a pure formatting layer over the graph's public
// types.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/duskhelm/hivemind/internal/graph"
)

// Stats renders a graph summary as markdown.
func Stats(s graph.GraphStats) string {
	var b strings.Builder
	b.WriteString("# Knowledge Graph Report\n\n")
	fmt.Fprintf(&b, "- Nodes: %d\n", s.TotalNodes)
	fmt.Fprintf(&b, "- Edges: %d\n", s.TotalEdges)
	fmt.Fprintf(&b, "- Average confidence: %.2f\n", s.AverageConfidence)
	fmt.Fprintf(&b, "- Queries served: %d\n", s.TotalQueries)

	if len(s.NodesByCategory) > 0 {
		b.WriteString("\n## Nodes by category\n\n")
		categories := make([]string, 0, len(s.NodesByCategory))
		for c := range s.NodesByCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			fmt.Fprintf(&b, "- %s: %d\n", c, s.NodesByCategory[c])
		}
	}

	if len(s.TopContributors) > 0 {
		b.WriteString("\n## Top contributors\n\n")
		for i, c := range s.TopContributors {
			name := c.BotName
			if name == "" {
				name = c.BotID
			}
			fmt.Fprintf(&b, "%d. %s — %d nodes\n", i+1, name, c.Nodes)
		}
	}

	return b.String()
}

// Nodes renders a node list as a markdown table, in the order given
// (Query already ranks by confidence).
func Nodes(title string, nodes []*graph.KnowledgeNode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	if len(nodes) == 0 {
		b.WriteString("No knowledge found.\n")
		return b.String()
	}

	b.WriteString("| Subject | Predicate | Object | Category | Confidence | Tags |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, n := range nodes {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %.2f | %s |\n",
			n.Subject, n.Predicate, n.Object, n.Category, n.Confidence,
			strings.Join(n.Tags, ", "))
	}
	return b.String()
}

// Approach renders a best-approach lookup as markdown.
func Approach(category, subject string, a graph.Approach) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Best approach: %s / %s\n\n", category, subject)

	if a.Best == nil {
		b.WriteString("No knowledge found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "**%s %s %s** (confidence %.2f)\n",
		a.Best.Subject, a.Best.Predicate, a.Best.Object, a.Best.Confidence)

	if len(a.Alternatives) > 0 {
		b.WriteString("\n## Alternatives\n\n")
		for _, alt := range a.Alternatives {
			fmt.Fprintf(&b, "- %s %s %s (%.2f)\n",
				alt.Subject, alt.Predicate, alt.Object, alt.Confidence)
		}
	}
	fmt.Fprintf(&b, "\n%d known approaches.\n", a.TotalKnown)
	return b.String()
}
