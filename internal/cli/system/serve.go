package system

import (
	"github.com/vsukhanov/tracker/internal/cli"
	"github.com/vsukhanov/tracker/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address." default:"127.0.0.1:8394"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	return server.New(ctx.Store, c.Addr).Start()
}
