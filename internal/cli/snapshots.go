package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List saved graph snapshots",
	RunE:  runSnapshots,
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	db, err := openSnapshotDB()
	if err != nil {
		return err
	}
	defer db.Close()

	snaps, err := db.ListSnapshots()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("no snapshots")
		return nil
	}

	for _, s := range snaps {
		fmt.Printf("%-20s %6d nodes %6d edges  %s\n",
			s.Name, s.NodeCount, s.EdgeCount,
			time.UnixMilli(s.CreatedAt).Format(time.RFC3339))
	}
	return nil
}
