package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/staticx57/AlphaHoundGUI-sub000/cmd"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/conf"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/logging"
)

func main() {
	logging.Init()

	settings := conf.Setting()

	if settings.Log.Enabled && settings.Log.Path != "" {
		fileLogger, closeLogger, err := logging.NewFileLogger(settings.Log.Path, "main", slog.LevelInfo)
		if err != nil {
			logging.Fatal("failed to open log file", "path", settings.Log.Path, "error", err)
		}
		slog.SetDefault(fileLogger)
		defer func() { _ = closeLogger() }()
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
