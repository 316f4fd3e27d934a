package toolchain

import (
	"strings"

	"github.com/gmeeker/conan-darwin-toolchain/model"
)

// FlagSet holds compiler and linker flags. Order is significant.
type FlagSet struct {
	CFlags          []string
	CXXFlags        []string
	SharedLinkFlags []string
	ExeLinkFlags    []string
}

// ComputeFlags assembles the flags for the given architectures and sysroot.
//
// cflags and cxxflags pass each architecture as the two tokens "-arch", "<name>";
// link flags carry a single "-arch <name>" token per architecture.
func ComputeFlags(s *model.Settings, archs []string, sysroot string) FlagSet {
	common := []string{"-isysroot" + sysroot}

	if flag := DeploymentTargetFlag(s); flag != "" {
		common = append(common, flag)
	}

	if m, ok := s.Mobile(); ok && m.Bitcode {
		if m.BuildType == model.Debug {
			common = append(common, "-fembed-bitcode-marker")
		} else {
			common = append(common, "-fembed-bitcode")
		}
	}

	if s.ARC {
		common = append(common, "-fobjc-arc")
	} else {
		common = append(common, "-no-fobjc-arc")
	}

	cflags := clone(common)
	for _, arch := range archs {
		cflags = append(cflags, "-arch", arch)
	}
	cxxflags := clone(cflags)

	// With visibility enabled only the link flags get -fvisibility=default;
	// cflags and cxxflags were already copied.
	if s.Visibility {
		common = append(common, "-fvisibility=default")
	} else {
		cflags = append(cflags, "-fvisibility=hidden")
		cxxflags = append(cxxflags, "-fvisibility=hidden", "-fvisibility-inlines-hidden")
	}

	link := clone(common)
	for _, arch := range archs {
		link = append(link, "-arch "+arch)
	}

	return FlagSet{
		CFlags:          cflags,
		CXXFlags:        cxxflags,
		SharedLinkFlags: link,
		ExeLinkFlags:    clone(link),
	}
}

// Join renders a flag list the way it is passed in an environment variable.
func Join(flags []string) string {
	return strings.Join(flags, " ")
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
