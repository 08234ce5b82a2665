package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"dashforge/internal/deps"
	"dashforge/internal/preflight"
	"dashforge/internal/services"
)

func newStatusCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report tool availability and directory access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			statuses := preflight.CheckSystemDeps(cfg)
			depRows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				detail := status.Description
				if status.Detail != "" {
					detail = status.Detail
				}
				depRows = append(depRows, []string{
					status.Name,
					status.Command,
					yesNo(status.Available),
					yesNo(status.Optional),
					detail,
				})
			}
			fmt.Fprintln(out, "Dependencies")
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Available", "Optional", "Detail"},
				depRows, nil))

			dirRows := make([][]string, 0, 4)
			for _, result := range preflight.CheckDirectories(cfg) {
				status := "ok"
				if !result.Passed {
					status = "error"
				}
				dirRows = append(dirRows, []string{result.Name, status, result.Detail})
			}
			fmt.Fprintln(out, "Directories")
			fmt.Fprintln(out, renderTable([]string{"Directory", "Status", "Detail"}, dirRows, nil))

			backend, err := deps.DetectPackager()
			if err != nil {
				fmt.Fprintln(out, "Packager backend: none available")
			} else {
				fmt.Fprintf(out, "Packager backend: %s (%s)\n", backend, backend.Binary())
			}

			runner := services.NewRunner(quietStatusLogger())
			av1 := deps.DetectAV1Encoder(cmd.Context(), runner, cfg.FFmpegBinary())
			fmt.Fprintf(out, "AV1 encoder: %s\n", av1)

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %v", missing)
			}
			return nil
		},
	}
}

// quietStatusLogger keeps detection probes out of the status report.
func quietStatusLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
