package main

import (
	"os"
	"sort"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/lixenwraith/shoal/config"
)

func runAction(c *cli.Context) error {
	logger := consoleLogger(c.GlobalBool("debug"))

	ticks := c.Int("ticks")
	if ticks < 1 {
		return errors.Errorf("ticks must be positive, got %d", ticks)
	}

	s, err := newSession(c, logger)
	if err != nil {
		return err
	}
	defer s.world.Teardown()

	var bar *pb.ProgressBar
	if !c.Bool("quiet") {
		bar = pb.New(ticks)
		bar.Output = os.Stderr
		bar.SetWidth(80)
		bar.Start()
	}

	start := time.Now()
	for i := 0; i < ticks; i++ {
		s.stepper.StepOnce()
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	took := time.Since(start)

	snapshot := s.registry.Snapshot()
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]any, 0, 2*len(keys)+4)
	fields = append(fields, "ticks", ticks, "took", took.Round(time.Millisecond))
	for _, k := range keys {
		fields = append(fields, k, snapshot[k])
	}
	logger.Info("run complete", fields...)

	if path := c.String("dump"); path != "" {
		if err := dumpConfig(path, s.live.Snapshot()); err != nil {
			return err
		}
		logger.Info("tunables written", "path", path)
	}
	return nil
}

func dumpConfig(path string, cfg config.Config) error {
	data, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write tunables")
}
