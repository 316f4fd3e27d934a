package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/gmeeker/conan-darwin-toolchain/gen"
	"github.com/gmeeker/conan-darwin-toolchain/model"
	"github.com/gmeeker/conan-darwin-toolchain/resolver"
	"github.com/gmeeker/conan-darwin-toolchain/toolchain"
	"github.com/gmeeker/conan-darwin-toolchain/validate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	resFormat     string
	resPackageDir string
	resXcrun      string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [settings.yaml]",
	Short: "Print the toolchain variables for a settings file",
	Long:  "Resolves the SDK with xcrun and prints the toolchain variables as shell exports (env), a CMake cache script (cmake) or JSON (json).",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResolve,
}

func init() {
	addSettingsFlags(resolveCmd)
	resolveCmd.Flags().StringVar(&resFormat, "format", "env", "Output format (env, cmake, json)")
	resolveCmd.Flags().StringVar(&resPackageDir, "package-dir", ".", "Directory holding darwin-toolchain.cmake")
	resolveCmd.Flags().StringVar(&resXcrun, "xcrun", "", "Path to xcrun")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	result, err := resolveConfig(cfg, resXcrun, resPackageDir)
	if err != nil {
		return err
	}

	out, err := gen.Render(result, resFormat)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// resolveConfig validates cfg before looking for xcrun, so settings errors
// are reported even on hosts without Xcode.
func resolveConfig(cfg *model.Config, xcrunFlag, packageDir string) (*toolchain.Result, error) {
	s, err := validate.Settings(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid settings:\n%w", err)
	}

	xcrunPath, err := resolver.ResolveXcrun(xcrunFlag)
	if err != nil {
		return nil, err
	}

	absPackageDir, err := filepath.Abs(packageDir)
	if err != nil {
		return nil, fmt.Errorf("resolving package directory: %w", err)
	}

	logger.Debug("resolving toolchain",
		zap.String("os", string(s.OS)),
		zap.String("arch", s.Arch),
		zap.Bool("xcode", s.Xcode),
		zap.String("xcrun", xcrunPath))

	r := &toolchain.Resolver{
		Locator:    resolver.NewXCRun(xcrunPath, logger),
		PackageDir: absPackageDir,
		Logger:     logger,
	}
	result, err := r.ResolveSettings(s)
	if err != nil {
		return nil, fmt.Errorf("resolving toolchain: %w", err)
	}
	return result, nil
}
