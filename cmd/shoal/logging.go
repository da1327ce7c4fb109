package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/shoal/parameter"
)

const (
	logDir      = parameter.LogDir
	logFileName = parameter.LogFileName
	maxLogSize  = 10 * 1024 * 1024
)

func logPath() string { return filepath.Join(logDir, logFileName) }

// setupLogging routes logs to a rotated file when debug is set and discards them otherwise.
// The viewer owns the terminal, so logs never reach stdout or stderr.
// The returned file is nil when nothing was opened.
func setupLogging(debug bool) (*log.Logger, *os.File) {
	discard := log.New(io.Discard)
	if !debug {
		log.SetDefault(discard)
		return discard, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetDefault(discard)
		return discard, nil
	}

	path := logPath()
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("shoal-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetDefault(discard)
		return discard, nil
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           log.DebugLevel,
		Prefix:          "shoal",
	})
	log.SetDefault(logger)
	logger.Info("logging started", "pid", os.Getpid())
	return logger, f
}

// consoleLogger is for the headless commands, which leave the terminal free
func consoleLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
	log.SetDefault(logger)
	return logger
}
