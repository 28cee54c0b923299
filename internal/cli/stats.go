package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskhelm/hivemind/internal/graph"
	"github.com/duskhelm/hivemind/internal/report"
	"github.com/duskhelm/hivemind/internal/store"
)

var statsSnapshotName string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a report over the latest saved snapshot",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsSnapshotName, "snapshot", "autosave", "snapshot name to report on")
}

// openSnapshotDB resolves the default path and opens the snapshot store.
func openSnapshotDB() (*store.DB, error) {
	path, err := store.DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// loadSnapshotGraph loads a named snapshot into a fresh graph.
func loadSnapshotGraph(db *store.DB, name string) (*graph.Graph, error) {
	data, err := db.LoadSnapshot(name)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("no snapshot named %q", name)
	}

	g := graph.New()
	if _, err := g.Import(data); err != nil {
		return nil, fmt.Errorf("import snapshot: %w", err)
	}
	return g, nil
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openSnapshotDB()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := loadSnapshotGraph(db, statsSnapshotName)
	if err != nil {
		return err
	}

	fmt.Print(report.Stats(g.Stats()))
	return nil
}
