package toolchain

import (
	"fmt"

	"github.com/gmeeker/conan-darwin-toolchain/model"
)

// appleArchs maps package arch names to the names Apple tools use for -arch.
var appleArchs = map[string]string{
	"x86":      "i386",
	"x86_64":   "x86_64",
	"armv7":    "armv7",
	"armv7s":   "armv7s",
	"armv7k":   "armv7k",
	"armv8":    "arm64",
	"armv8_32": "arm64_32",
	"armv8.3":  "arm64e",
}

var cmakeProcessors = map[string]string{
	"x86":    "i386",
	"x86_64": "x86_64",
	"armv7":  "arm",
	"armv8":  "aarch64",
}

// UnsupportedArchError reports an architecture with no Apple name.
type UnsupportedArchError struct {
	OS   model.OS
	Arch string
}

func (e *UnsupportedArchError) Error() string {
	return fmt.Sprintf("%s: unsupported architecture %q", e.OS, e.Arch)
}

// ToAppleArch returns the Apple name of arch. On watchOS armv8 is the
// ILP32 variant arm64_32, not arm64.
func ToAppleArch(os model.OS, arch string) (string, error) {
	if os == model.WatchOS && arch == "armv8" {
		return "arm64_32", nil
	}
	if a, ok := appleArchs[arch]; ok {
		return a, nil
	}
	return "", &UnsupportedArchError{OS: os, Arch: arch}
}

// ArchitectureList returns the Apple architectures to build, in order.
// A fat arch list replaces the single arch when present.
func ArchitectureList(s *model.Settings) ([]string, error) {
	archs := []string{s.Arch}
	if len(s.FatArch) > 0 {
		archs = s.FatArch
	}

	result := make([]string, 0, len(archs))
	for _, arch := range archs {
		a, err := ToAppleArch(s.OS, arch)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

// CMakeSystemName returns the CMAKE_SYSTEM_NAME for the target OS.
func CMakeSystemName(s *model.Settings) string {
	if s.OS == model.Macos {
		return "Darwin"
	}
	return string(s.OS)
}

// CMakeSystemProcessor returns the CMAKE_SYSTEM_PROCESSOR for arch.
// ok is false when arch has no entry; that is not an error.
func CMakeSystemProcessor(arch string) (processor string, ok bool) {
	processor, ok = cmakeProcessors[arch]
	return processor, ok
}
