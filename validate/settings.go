package validate

import (
	"fmt"
	"strings"

	"github.com/gmeeker/conan-darwin-toolchain/model"
	"golang.org/x/mod/semver"
)

// ConfigError represents a single invalid or unsupported setting.
type ConfigError struct {
	Path    string // e.g., "os_build", "options.enable_bitcode"
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationResult holds all validation errors.
// A non-valid result is returned as the error from Settings.
type ValidationResult struct {
	Errors []ConfigError
}

func (r *ValidationResult) addError(path, message string) {
	r.Errors = append(r.Errors, ConfigError{Path: path, Message: message})
}

func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// Validate checks a raw settings record for unsupported combinations.
func Validate(cfg *model.Config) *ValidationResult {
	result := &ValidationResult{}

	// Recipes are exported from other hosts, so the build OS comes from the
	// settings and never from the running machine.
	if cfg.OSBuild != model.Macos {
		result.addError("os_build", fmt.Sprintf("build machine must be Macos, got %q", cfg.OSBuild))
	}
	if !cfg.OS.IsApple() {
		result.addError("os", fmt.Sprintf("os must be an Apple os, got %q", cfg.OS))
		// Everything below depends on the target OS.
		return result
	}

	if cfg.Arch == "" {
		result.addError("arch", "arch is required")
	}

	if cfg.OS != model.Macos {
		if (cfg.OS == model.WatchOS || cfg.OS == model.TvOS) && !cfg.Options.Bitcode() {
			result.addError("options.enable_bitcode", "enable_bitcode is required on watchOS/tvOS")
		}
		if cfg.BuildType != "" && !validBuildType(cfg.BuildType) {
			result.addError("build_type", fmt.Sprintf("unknown build_type %q", cfg.BuildType))
		}
	}

	if cfg.OS == model.WatchOS && !contains(model.WatchOSArchs, cfg.Arch) {
		result.addError("arch", fmt.Sprintf("watchOS: Only supported archs: [%s]", strings.Join(model.WatchOSArchs, ", ")))
	}

	if cfg.Compiler != "" && !contains(model.ValidCompilers, cfg.Compiler) {
		result.addError("compiler", fmt.Sprintf("compiler %q cannot build for Apple platforms (want one of %s)", cfg.Compiler, strings.Join(model.ValidCompilers, ", ")))
	}

	if cfg.OSVersion != "" && !validOSVersion(cfg.OSVersion) {
		result.addError("os_version", fmt.Sprintf("os_version %q must be a dotted numeric version like 12.0", cfg.OSVersion))
	}

	if cfg.SDK != "" {
		device, simulator, _ := model.SDKsForOS(cfg.OS)
		if cfg.SDK != device && (simulator == "" || cfg.SDK != simulator) {
			result.addError("sdk", fmt.Sprintf("sdk %q does not belong to %s", cfg.SDK, cfg.OS))
		}
	}

	return result
}

// Settings validates cfg and returns the immutable settings derived from it.
// On Macos the build type and bitcode option are dropped. The error, if any,
// is a *ValidationResult.
func Settings(cfg *model.Config) (*model.Settings, error) {
	if result := Validate(cfg); !result.IsValid() {
		return nil, result
	}

	s := &model.Settings{
		OS:         cfg.OS,
		Arch:       cfg.Arch,
		Compiler:   cfg.Compiler,
		OSVersion:  cfg.OSVersion,
		SDK:        cfg.SDK,
		SDKVersion: cfg.SDKVersion,
		FatArch:    cfg.FatArchList(),
		ARC:        cfg.Options.ARC(),
		Visibility: cfg.Options.Visibility(),
		Xcode:      cfg.Options.UseXcode(),
	}
	if cfg.OS == model.Macos {
		s.Platform = model.MacosPlatform{}
	} else {
		s.Platform = model.MobilePlatform{
			BuildType: cfg.BuildType,
			Bitcode:   cfg.Options.Bitcode(),
		}
	}
	return s, nil
}

// validOSVersion accepts 1 to 3 numeric components, e.g. "12", "12.0", "10.14.6".
func validOSVersion(v string) bool {
	sv := "v" + v
	if !semver.IsValid(sv) || semver.Prerelease(sv) != "" || semver.Build(sv) != "" {
		return false
	}
	return strings.Count(v, ".") <= 2
}

func validBuildType(bt model.BuildType) bool {
	for _, b := range model.ValidBuildTypes {
		if bt == b {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
