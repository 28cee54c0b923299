package config

import "fmt"

// Config holds all hivemind configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Graph    GraphConfig    `toml:"graph"`
	Database DatabaseConfig `toml:"database"`
	World    WorldConfig    `toml:"world"`
	Snapshot SnapshotConfig `toml:"snapshot"`
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

type GraphConfig struct {
	Capacity int `toml:"capacity"` // max nodes before eviction
}

type DatabaseConfig struct {
	Path string `toml:"path"` // snapshot database
}

type WorldConfig struct {
	Path string `toml:"path"` // entity name database
}

type SnapshotConfig struct {
	Enabled  bool   `toml:"enabled"`
	Name     string `toml:"name"`     // snapshot name for autosave/restore
	Interval int    `toml:"interval"` // minutes between autosaves
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 38555,
		},
		Graph: GraphConfig{
			Capacity: 10000,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		World: WorldConfig{
			Path: "", // resolved at runtime via world.DefaultDBPath()
		},
		Snapshot: SnapshotConfig{
			Enabled:  true,
			Name:     "autosave",
			Interval: 15,
		},
	}
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
