package cmd

import (
	"github.com/spf13/cobra"

	"github.com/staticx57/AlphaHoundGUI-sub000/cmd/analyze"
	"github.com/staticx57/AlphaHoundGUI-sub000/cmd/enrichment"
	"github.com/staticx57/AlphaHoundGUI-sub000/cmd/peaks"
	"github.com/staticx57/AlphaHoundGUI-sub000/cmd/roi"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "alphahound",
		Short: "AlphaHound gamma spectrum analysis CLI",
	}

	setupFlags(rootCmd, settings)

	subcommands := []*cobra.Command{
		analyze.Command(settings),
		peaks.Command(settings),
		roi.Command(settings),
		enrichment.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags configures the global flags shared by all subcommands.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Detector, "detector", settings.Detector, "Detector model for efficiency lookup")
	rootCmd.PersistentFlags().StringVar(&settings.SourceType, "source", settings.SourceType, "Source type hint for cross-validation")
}
