package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskhelm/hivemind/internal/graph"
	"github.com/duskhelm/hivemind/internal/report"
)

var (
	reportSnapshotName string
	reportCategory     string
	reportSubject      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a markdown report over a saved snapshot",
	Long:  "Without flags, prints the graph summary. With --subject, prints the best-known approach for that subject (optionally narrowed by --category). With only --category, lists that category's knowledge ranked by confidence.",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportSnapshotName, "snapshot", "autosave", "snapshot name to report on")
	reportCmd.Flags().StringVar(&reportCategory, "category", "", "category to report on")
	reportCmd.Flags().StringVar(&reportSubject, "subject", "", "subject to look up the best approach for")
}

func runReport(cmd *cobra.Command, args []string) error {
	db, err := openSnapshotDB()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := loadSnapshotGraph(db, reportSnapshotName)
	if err != nil {
		return err
	}

	switch {
	case reportSubject != "":
		fmt.Print(report.Approach(reportCategory, reportSubject, g.BestApproach(reportCategory, reportSubject)))
	case reportCategory != "":
		nodes := g.Query(graph.Filter{Category: reportCategory})
		fmt.Print(report.Nodes("Knowledge: "+reportCategory, nodes))
	default:
		fmt.Print(report.Stats(g.Stats()))
	}
	return nil
}
