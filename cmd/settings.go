package cmd

import (
	"fmt"

	"github.com/gmeeker/conan-darwin-toolchain/loader"
	"github.com/gmeeker/conan-darwin-toolchain/model"
	"github.com/spf13/cobra"
)

// Settings overrides shared by resolve, validate and generate.
var (
	setOS         string
	setOSBuild    string
	setArch       string
	setBuildType  string
	setCompiler   string
	setOSVersion  string
	setSDK        string
	setSDKVersion string
	setFatArch    string
	setBitcode    bool
	setARC        bool
	setVisibility bool
	setXcode      bool
)

func addSettingsFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&setOS, "os", "", "Target OS (Macos, iOS, watchOS, tvOS)")
	f.StringVar(&setOSBuild, "os-build", "", "Build machine OS (must be Macos)")
	f.StringVar(&setArch, "arch", "", "Target architecture (x86, x86_64, armv7, armv7s, armv7k, armv8, armv8_32, armv8.3)")
	f.StringVar(&setBuildType, "build-type", "", "Build type (Debug, Release); ignored for Macos")
	f.StringVar(&setCompiler, "compiler", "", "Compiler (apple-clang, clang)")
	f.StringVar(&setOSVersion, "os-version", "", "Deployment target, e.g. 12.0")
	f.StringVar(&setSDK, "sdk", "", "SDK name, e.g. iphonesimulator")
	f.StringVar(&setSDKVersion, "sdk-version", "", "SDK version, e.g. 14.5")
	f.StringVar(&setFatArch, "fat-arch", "", "Semicolon separated architectures for a universal build")
	f.BoolVar(&setBitcode, "bitcode", model.DefaultEnableBitcode, "Embed bitcode (required on watchOS/tvOS)")
	f.BoolVar(&setARC, "arc", model.DefaultEnableARC, "Enable Objective-C ARC")
	f.BoolVar(&setVisibility, "visibility", model.DefaultEnableVisibility, "Export symbols by default")
	f.BoolVar(&setXcode, "xcode", model.DefaultXcode, "Emit Xcode attributes instead of Makefile variables")
}

// loadSettings reads the optional settings file in args and applies any
// flags given explicitly on the command line. It returns the settings path
// ("" when none was given).
func loadSettings(c *cobra.Command, args []string) (*model.Config, string, error) {
	cfg := &model.Config{}
	path := ""
	if len(args) > 0 {
		path = args[0]
		loaded, err := loader.LoadConfig(path)
		if err != nil {
			return nil, "", fmt.Errorf("loading settings: %w", err)
		}
		cfg = loaded
	}

	f := c.Flags()
	strOverrides := []struct {
		flag string
		dst  func(string)
		val  string
	}{
		{"os", func(v string) { cfg.OS = model.OS(v) }, setOS},
		{"os-build", func(v string) { cfg.OSBuild = model.OS(v) }, setOSBuild},
		{"arch", func(v string) { cfg.Arch = v }, setArch},
		{"build-type", func(v string) { cfg.BuildType = model.BuildType(v) }, setBuildType},
		{"compiler", func(v string) { cfg.Compiler = v }, setCompiler},
		{"os-version", func(v string) { cfg.OSVersion = v }, setOSVersion},
		{"sdk", func(v string) { cfg.SDK = v }, setSDK},
		{"sdk-version", func(v string) { cfg.SDKVersion = v }, setSDKVersion},
		{"fat-arch", func(v string) { cfg.FatArch = v }, setFatArch},
	}
	for _, o := range strOverrides {
		if f.Changed(o.flag) {
			o.dst(o.val)
		}
	}

	boolOverrides := []struct {
		flag string
		dst  **bool
		val  bool
	}{
		{"bitcode", &cfg.Options.EnableBitcode, setBitcode},
		{"arc", &cfg.Options.EnableARC, setARC},
		{"visibility", &cfg.Options.EnableVisibility, setVisibility},
		{"xcode", &cfg.Options.Xcode, setXcode},
	}
	for _, o := range boolOverrides {
		if f.Changed(o.flag) {
			*o.dst = model.Bool(o.val)
		}
	}

	return cfg, path, nil
}
