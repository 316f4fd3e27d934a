package toolchain

import (
	"path/filepath"
	"strings"

	"github.com/gmeeker/conan-darwin-toolchain/model"
	"github.com/gmeeker/conan-darwin-toolchain/resolver"
	"github.com/gmeeker/conan-darwin-toolchain/validate"
	"go.uber.org/zap"
)

// ToolchainFileName is the CMake toolchain file shipped in the package directory.
const ToolchainFileName = "darwin-toolchain.cmake"

// ResolvedToolchain is everything derived from one settings record.
type ResolvedToolchain struct {
	Sysroot              string
	Architectures        []string
	Tools                resolver.SDK
	Flags                FlagSet
	CMakeSystemName      string
	CMakeSystemProcessor string // empty when the arch has no CMake processor name
}

// Result is the output of Resolve.
type Result struct {
	Settings  *model.Settings
	Toolchain ResolvedToolchain
	Env       Env
}

// Resolver turns settings into toolchain variables.
type Resolver struct {
	Locator    resolver.Locator
	PackageDir string // directory holding darwin-toolchain.cmake
	Logger     *zap.Logger
}

// Resolve validates cfg and resolves it. Errors come from validation
// (*validate.ValidationResult), arch mapping (*UnsupportedArchError) or the
// locator (*resolver.SDKNotFoundError).
func (r *Resolver) Resolve(cfg *model.Config) (*Result, error) {
	s, err := validate.Settings(cfg)
	if err != nil {
		return nil, err
	}
	return r.ResolveSettings(s)
}

// ResolveSettings resolves already validated settings.
func (r *Resolver) ResolveSettings(s *model.Settings) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	archs, err := ArchitectureList(s)
	if err != nil {
		return nil, err
	}

	query := resolver.Query{SDK: SDKName(s), SDKVersion: s.SDKVersion}
	logger.Debug("locating SDK", zap.String("sdk", query.Name()), zap.Strings("archs", archs))
	sdk, err := r.Locator.Locate(query)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Settings: s,
		Toolchain: ResolvedToolchain{
			Sysroot:         sdk.Sysroot,
			Architectures:   archs,
			Tools:           *sdk,
			CMakeSystemName: CMakeSystemName(s),
		},
	}
	if p, ok := CMakeSystemProcessor(s.Arch); ok {
		res.Toolchain.CMakeSystemProcessor = p
	}

	if s.Xcode {
		logger.Debug("emitting Xcode attributes")
		res.Env = EmitXcode(s)
		res.Toolchain.Flags = ComputeFlags(s, archs, sdk.Sysroot)
	} else {
		logger.Debug("emitting Makefile variables")
		res.Env, res.Toolchain.Flags = EmitMakefile(s, archs, sdk)
	}

	res.Env.merge(r.common(s, archs, res.Toolchain.CMakeSystemProcessor))
	return res, nil
}

// common returns the variables set in both modes.
func (r *Resolver) common(s *model.Settings, archs []string, processor string) Env {
	env := Env{
		KeySystemName:    CMakeSystemName(s),
		KeyArchitectures: strings.Join(archs, ";"),
		KeyToolchainFile: filepath.Join(r.PackageDir, ToolchainFileName),
	}
	if s.OSVersion != "" {
		env[KeyDeploymentTarget] = s.OSVersion
	}
	if processor != "" {
		env[KeySystemProcessor] = processor
	}
	return env
}
