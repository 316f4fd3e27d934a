package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gmeeker/conan-darwin-toolchain/gen"
	"github.com/spf13/cobra"
)

var (
	genOutput     string
	genXcrun      string
	genGenerators []string
	genDryRun     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [settings.yaml]",
	Short: "Write the toolchain package: darwin-toolchain.cmake plus resolved variables",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	addSettingsFlags(generateCmd)
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "./darwin-toolchain", "Package output directory")
	generateCmd.Flags().StringVar(&genXcrun, "xcrun", "", "Path to xcrun")
	generateCmd.Flags().StringSliceVar(&genGenerators, "generators", nil, "Generators to run (default depends on --xcode)")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Show what would be generated without writing")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !quiet && path != "" {
		fmt.Fprintf(out, "Generating from %s\n", path)
	}

	result, err := resolveConfig(cfg, genXcrun, genOutput)
	if err != nil {
		return err
	}

	ctx := gen.NewContext(result, path)
	ctx.Verbose = verbose
	ctx.DryRun = genDryRun

	generatorNames := genGenerators
	if len(generatorNames) == 0 {
		generatorNames = gen.GeneratorsForMode(result.Settings.Xcode)
	}

	var allFiles []*gen.OutputFile
	for _, name := range generatorNames {
		g, ok := gen.Get(name)
		if !ok {
			return fmt.Errorf("unknown generator %q (available: %v)", name, gen.All())
		}
		if verbose {
			fmt.Fprintf(out, "  Running generator: %s\n", g.Name())
		}
		files, err := g.Generate(ctx)
		if err != nil {
			return fmt.Errorf("generator %s failed: %w", name, err)
		}
		allFiles = append(allFiles, files...)
	}

	var written int
	for _, f := range allFiles {
		outPath := filepath.Join(genOutput, f.Path)

		if genDryRun {
			fmt.Fprintf(out, "  Would write: %s\n", outPath)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", outPath, err)
		}
		mode := fs.FileMode(0644)
		if f.Mode != 0 {
			mode = fs.FileMode(f.Mode)
		}
		if err := os.WriteFile(outPath, f.Content, mode); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		written++
		if verbose {
			fmt.Fprintf(out, "  Wrote: %s\n", outPath)
		}
	}

	if !quiet && !genDryRun {
		fmt.Fprintf(out, "Generated %d files in %s\n", written, genOutput)
	}
	return nil
}
