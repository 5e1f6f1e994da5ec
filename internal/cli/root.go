// Package cli implements the aimemo CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rcliao/aimemo"
	"github.com/rcliao/aimemo/internal/config"
	"github.com/rcliao/aimemo/internal/store"
)

var (
	dbPath     string
	configPath string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "aimemo",
	Short: "Persistent memory for AI conversations",
	Long:  "Store short text memories with write-time enrichment and retrieve the most relevant ones as context. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $AIMEMO_DB_PATH or ~/.aimemo/memory.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (.json, .yaml or .yml)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("AIMEMO_DB_PATH"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".aimemo", "memory.db")
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Default(), nil
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

// openMemo builds a Memo over an explicitly opened store so commands that
// only need raw store access share the same path resolution. The caller
// closes the returned store.
func openMemo(ns string) (*aimemo.Memo, *store.SQLiteStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	m, err := aimemo.New(
		aimemo.WithConfig(cfg),
		aimemo.WithStore(s),
		aimemo.WithNamespace(ns),
	)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return m, s, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
