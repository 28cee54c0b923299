package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/duskhelm/hivemind/internal/config"
	"github.com/duskhelm/hivemind/internal/graph"
	"github.com/duskhelm/hivemind/internal/server"
	"github.com/duskhelm/hivemind/internal/store"
	"github.com/duskhelm/hivemind/internal/world"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()

	// Env overrides
	if port := os.Getenv("HIVEMIND_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if path := os.Getenv("HIVEMIND_DB"); path != "" {
		cfg.Database.Path = path
	}
	if path := os.Getenv("HIVEMIND_WORLD_DB"); path != "" {
		cfg.World.Path = path
	}

	// Resolve snapshot database path
	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// World database for entity name resolution
	worldPath := cfg.World.Path
	if worldPath == "" {
		worldPath, err = world.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve world db path: %w", err)
		}
	}
	names, err := world.Open(worldPath)
	if err != nil {
		return fmt.Errorf("open world database: %w", err)
	}
	defer names.Close()

	g := graph.NewWithCapacity(cfg.Graph.Capacity)

	// Restore the last autosave, if any.
	if cfg.Snapshot.Enabled {
		if data, err := db.LoadSnapshot(cfg.Snapshot.Name); err != nil {
			fmt.Fprintf(os.Stderr, "warning: restore snapshot: %v\n", err)
		} else if data != nil {
			res, err := g.Import(data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: import snapshot: %v\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "  restored %d nodes, %d edges from %q\n",
					res.NodesImported, res.EdgesImported, cfg.Snapshot.Name)
			}
		}
	}

	// Periodic autosave
	stopAutosave := make(chan struct{})
	if cfg.Snapshot.Enabled && cfg.Snapshot.Interval > 0 {
		go func() {
			ticker := time.NewTicker(time.Duration(cfg.Snapshot.Interval) * time.Minute)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					if _, err := db.SaveSnapshot(cfg.Snapshot.Name, g.Export()); err != nil {
						log.Printf("snapshot: autosave failed: %v", err)
					}
				case <-stopAutosave:
					return
				}
			}
		}()
	}

	srv := server.New(g, names, db, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "hivemind serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  db: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  world db: %s\n", worldPath)
		fmt.Fprintf(os.Stderr, "  capacity: %d nodes\n", cfg.Graph.Capacity)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")
	close(stopAutosave)

	// Final save so nothing recorded since the last tick is lost.
	if cfg.Snapshot.Enabled {
		if _, err := db.SaveSnapshot(cfg.Snapshot.Name, g.Export()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: final snapshot: %v\n", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
