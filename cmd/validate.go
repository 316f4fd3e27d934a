package cmd

import (
	"fmt"
	"strings"

	"github.com/gmeeker/conan-darwin-toolchain/toolchain"
	"github.com/gmeeker/conan-darwin-toolchain/validate"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [settings.yaml]",
	Short: "Check settings without querying xcrun",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	addSettingsFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !quiet && path != "" {
		fmt.Fprintf(out, "Validating %s\n", path)
	}

	s, err := validate.Settings(cfg)
	if err != nil {
		return fmt.Errorf("validation failed:\n%w", err)
	}

	archs, err := toolchain.ArchitectureList(s)
	if err != nil {
		return fmt.Errorf("validation failed:\n%w", err)
	}

	if verbose {
		fmt.Fprintf(out, "  OS: %s (%s)\n", s.OS, toolchain.CMakeSystemName(s))
		fmt.Fprintf(out, "  SDK: %s\n", toolchain.SDKName(s))
		fmt.Fprintf(out, "  Architectures: %s\n", strings.Join(archs, ";"))
		if flag := toolchain.DeploymentTargetFlag(s); flag != "" {
			fmt.Fprintf(out, "  Deployment target: %s\n", flag)
		}
		mode := "Makefile"
		if s.Xcode {
			mode = "Xcode"
		}
		fmt.Fprintf(out, "  Mode: %s\n", mode)
	}

	if !quiet {
		fmt.Fprintln(out, "Validation passed.")
	}
	return nil
}
