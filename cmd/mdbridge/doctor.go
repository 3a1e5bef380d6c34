// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdbridge/internal/container"
	"github.com/pdiddy/mdbridge/internal/runner"
	"github.com/pdiddy/mdbridge/internal/toolchain"
	"github.com/pdiddy/mdbridge/pkg/types"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the conversion toolchain is installed",
	Long: `Doctor reports where mdbridge expects the virtual environment, markitdown,
the PDF split script, and uv, and whether each was found. With the container
backend it also checks for docker or podman.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper(), fetchTokens)
	if err != nil {
		return err
	}

	r := runner.OS{}
	report := toolchain.Check(r, cfg.Conversion.Toolchain)
	report.Print(os.Stdout)

	if cfg.Conversion.Backend == types.BackendContainer {
		rt, err := container.DetectRuntime(cmd.Context(), r)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%-12s %-20s %s\n", "runtime:", "found", rt.Name())
		return nil
	}

	if !report.OK() {
		return fmt.Errorf("toolchain incomplete; create the venv with: uv venv && uv pip install markitdown pypdf")
	}
	return nil
}
