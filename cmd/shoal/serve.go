package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/lixenwraith/shoal/parameter"
	"github.com/lixenwraith/shoal/tuning"
)

func serveAction(c *cli.Context) error {
	logger := consoleLogger(c.GlobalBool("debug"))

	s, err := newSession(c, logger)
	if err != nil {
		return err
	}
	defer s.world.Teardown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var access io.Writer
	if c.Bool("access-log") {
		access = os.Stderr
	}

	hub := tuning.NewHub(s.world, logger)
	server := tuning.NewServer(hub, logger, access)

	s.stepper.Start(parameter.FrameUpdateInterval)
	defer s.stepper.Stop()

	go hub.Run(ctx, parameter.ServeReportInterval)
	defer hub.Close()

	addr := c.String("addr")
	logger.Info("serving flock", "addr", addr, "fish", s.cfg.Quantity, "index", s.cfg.Index)
	err = server.ListenAndServe(ctx, addr)
	logger.Info("shutting down", "ticks", s.world.Ticks())
	return err
}
