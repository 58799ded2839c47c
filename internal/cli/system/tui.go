package system

import (
	"github.com/vsukhanov/tracker/internal/cli"
	"github.com/vsukhanov/tracker/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	return tui.Run(ctx.Store)
}
