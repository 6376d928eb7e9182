package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AndrivA89/brain-dump/internal/ui"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "brain-dump",
		Short: "A notebook canvas for dumping and connecting thoughts",
		Long: `brain-dump keeps notebooks of free-form nodes on a canvas.
Running it without a subcommand opens the canvas window; changes are saved
when the window closes.`,
		SilenceUsage: true,
		RunE:         runCanvas,
	}

	rootCmd.AddCommand(newNotebooksCmd(), newExportCmd())
	return rootCmd
}

func runCanvas(cmd *cobra.Command, _ []string) error {
	app, err := openApplication(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	ui.Run(app.useCase, app.logger)

	if err := app.save(); err != nil {
		app.logger.Error("failed to save notebooks", zap.Error(err))
		return err
	}
	app.logger.Info("notebooks saved")
	return nil
}

func newNotebooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "notebooks",
		Short:   "List notebooks with their size and history depth",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApplication(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			return writeSummary(cmd.OutOrStdout(), app.useCase)
		},
	}
}

func newExportCmd() *cobra.Command {
	var (
		format     string
		notebookID string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the stored notebooks, nodes, connections and history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatYAML && format != formatJSON {
				return fmt.Errorf("unknown format %q: want %s or %s", format, formatYAML, formatJSON)
			}
			app, err := openApplication(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			state, err := exportState(app.useCase.State(), notebookID)
			if err != nil {
				return err
			}
			return writeExport(cmd.OutOrStdout(), state, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format (yaml or json)")
	cmd.Flags().StringVar(&notebookID, "notebook", "", "export only this notebook id")
	return cmd
}
