package cmd

import (
	"fmt"
	"os"

	"github.com/gmeeker/conan-darwin-toolchain/loader"
	"github.com/gmeeker/conan-darwin-toolchain/model"
	"github.com/spf13/cobra"
)

var (
	initOS        string
	initArch      string
	initOSVersion string
	initOutput    string
	initForce     bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter settings file",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initOS, "os", string(model.IOS), "Target OS (Macos, iOS, watchOS, tvOS)")
	initCmd.Flags().StringVar(&initArch, "arch", "armv8", "Target architecture")
	initCmd.Flags().StringVar(&initOSVersion, "os-version", "", "Deployment target, e.g. 12.0")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "darwin-toolchain.yaml", "Settings file to write")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing settings file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
	}

	cfg := &model.Config{
		OS:        model.OS(initOS),
		OSBuild:   model.Macos,
		Arch:      initArch,
		Compiler:  "apple-clang",
		OSVersion: initOSVersion,
		Options: model.Options{
			EnableARC:        model.Bool(model.DefaultEnableARC),
			EnableVisibility: model.Bool(model.DefaultEnableVisibility),
			Xcode:            model.Bool(model.DefaultXcode),
		},
	}
	if cfg.OS != model.Macos {
		cfg.BuildType = model.Release
		cfg.Options.EnableBitcode = model.Bool(model.DefaultEnableBitcode)
	}

	data, err := loader.MarshalConfig(cfg)
	if err != nil {
		return err
	}
	// The schema must accept what init writes.
	if _, err := loader.ParseConfig(data); err != nil {
		return fmt.Errorf("starter settings are invalid: %w", err)
	}

	if err := os.WriteFile(initOutput, data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n\nNext: darwin-toolchain validate %s\n", initOutput, initOutput)
	}
	return nil
}
