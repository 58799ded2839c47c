package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/vsukhanov/tracker/internal/cli"
	"github.com/vsukhanov/tracker/internal/cli/categories"
	"github.com/vsukhanov/tracker/internal/cli/habits"
	"github.com/vsukhanov/tracker/internal/cli/system"
	apperrors "github.com/vsukhanov/tracker/internal/errors"
	"github.com/vsukhanov/tracker/internal/keyring"
	"github.com/vsukhanov/tracker/internal/logger"
	"github.com/vsukhanov/tracker/internal/storage"
	"github.com/vsukhanov/tracker/internal/storage/postgres"
	"github.com/vsukhanov/tracker/internal/storage/sqlite"
)

var CLI struct {
	Version  kong.VersionFlag
	Debug    bool   `help:"Enable debug logging."`
	Database string `help:"SQLite database path or a postgres:// connection string." env:"TRACKER_DB_CONNECTION"`

	Init   system.InitCmd          `cmd:"" help:"Initialize tracker storage."`
	Tui    system.TuiCmd           `cmd:"" help:"Launch the interactive board." default:"1"`
	Board  cli.BoardCmd            `cmd:"" help:"Print the board for a day."`
	Habit  habits.HabitCmd         `cmd:"" help:"Manage habits."`
	Cat    categories.CategoryCmd  `cmd:"" name:"category" help:"Manage categories."`
	Stats  cli.StatsCmd            `cmd:"" help:"Show tracking statistics."`
	Serve  system.ServeCmd         `cmd:"" help:"Serve the board over HTTP."`
	Backup system.BackupCmd        `cmd:"" help:"Manage database snapshots."`
	Doctor system.DoctorCmd        `cmd:"" help:"Check storage health."`
	Config system.ConfigCmd        `cmd:"" help:"Manage the stored database connection."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tracker"),
		kong.Description("Habit tracker with a live filtered board"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	store, err := selectStore(CLI.Database)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(store),
	}); err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	// Most commands expect an existing database; init creates it, doctor
	// reports on it, and the config subcommands only touch the keyring.
	cmd := ctx.Command()
	if cmd != "init" && !strings.HasPrefix(cmd, "config") && cmd != "doctor" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	apperrors.Fatal(ctx.Run(&cli.Context{Store: store, Debug: CLI.Debug}))
}

// selectStore picks the backend from the --database flag (or the
// TRACKER_DB_CONNECTION env var), falling back to a connection string in
// the OS keyring, then to the default SQLite path.
func selectStore(database string) (storage.Provider, error) {
	if isPostgres(database) {
		return postgres.New(database)
	}
	if database != "" {
		return sqlite.New(database), nil
	}

	if connStr, err := keyring.GetConnectionString(); err == nil {
		return postgres.New(connStr)
	} else if !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable) {
		return nil, err
	}

	path, err := storage.DefaultDBPath()
	if err != nil {
		return nil, err
	}
	return sqlite.New(path), nil
}

func isPostgres(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// configDir is where logs live: next to the SQLite file, or under the
// user config directory when the store is remote.
func configDir(store storage.Provider) string {
	if _, ok := store.(*sqlite.Store); ok {
		return filepath.Dir(store.GetConfigPath())
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(cfg, "tracker")
}
