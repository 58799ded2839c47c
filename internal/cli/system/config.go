package system

import (
	"fmt"

	"github.com/vsukhanov/tracker/internal/cli"
	"github.com/vsukhanov/tracker/internal/keyring"
	"github.com/vsukhanov/tracker/internal/storage"
)

type ConfigCmd struct {
	SetConnectionString    SetConnectionStringCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
	DeleteConnectionString DeleteConnectionStringCmd `cmd:"" help:"Remove the stored connection string."`
}

type SetConnectionStringCmd struct {
	ConnStr string `arg:"" help:"PostgreSQL connection string (credentials allowed here; they go to the keyring, never on disk)."`
}

func (c *SetConnectionStringCmd) Run(ctx *cli.Context) error {
	if err := keyring.SetConnectionString(c.ConnStr); err != nil {
		return err
	}
	if storage.HasEmbeddedCredentials(c.ConnStr) {
		fmt.Println("Stored connection string (with credentials) in the OS keyring.")
	} else {
		fmt.Println("Stored connection string in the OS keyring.")
	}
	return nil
}

type DeleteConnectionStringCmd struct{}

func (c *DeleteConnectionStringCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Removed connection string from the OS keyring.")
	return nil
}
