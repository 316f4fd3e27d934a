package toolchain

import (
	"sort"

	"github.com/gmeeker/conan-darwin-toolchain/model"
	"github.com/gmeeker/conan-darwin-toolchain/resolver"
)

// Environment variable names consumed by the CMake build helper and the
// darwin-toolchain.cmake file.
const (
	KeyGenerator            = "CONAN_CMAKE_GENERATOR"
	KeyEmbedBitcode         = "CONAN_CMAKE_XCODE_ATTRIBUTE_EMBED_BITCODE"
	KeyBitcodeMode          = "CONAN_CMAKE_XCODE_ATTRIBUTE_BITCODE_GENERATION_MODE"
	KeyObjcARC              = "CONAN_CMAKE_XCODE_ATTRIBUTE_CLANG_ENABLE_OBJC_ARC"
	KeySymbolsPrivateExtern = "CONAN_CMAKE_XCODE_ATTRIBUTE_GCC_SYMBOLS_PRIVATE_EXTERN"
	KeyInlinesPrivateExtern = "CONAN_CMAKE_XCODE_ATTRIBUTE_GCC_INLINES_ARE_PRIVATE_EXTERN"
	KeyOSXSysroot           = "CONAN_CMAKE_OSX_SYSROOT"

	KeySystemName       = "CONAN_CMAKE_SYSTEM_NAME"
	KeyDeploymentTarget = "CONAN_CMAKE_OSX_DEPLOYMENT_TARGET"
	KeyArchitectures    = "CONAN_CMAKE_OSX_ARCHITECTURES"
	KeySystemProcessor  = "CONAN_CMAKE_SYSTEM_PROCESSOR"
	KeyToolchainFile    = "CONAN_CMAKE_TOOLCHAIN_FILE"
)

// XcodeSysroot is the sysroot handed to Xcode; Xcode picks the real SDK
// from the target OS itself.
const XcodeSysroot = "macosx"

// Env is a set of environment variable assignments.
type Env map[string]string

// Keys returns the variable names in sorted order.
func (e Env) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e Env) merge(other Env) {
	for k, v := range other {
		e[k] = v
	}
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

// EmitXcode returns the Xcode generator and build attributes.
func EmitXcode(s *model.Settings) Env {
	env := Env{KeyGenerator: "Xcode"}
	if s.BitcodeEnabled() {
		env[KeyEmbedBitcode] = "YES"
		env[KeyBitcodeMode] = "bitcode"
	}
	env[KeyObjcARC] = yesNo(s.ARC)
	env[KeySymbolsPrivateExtern] = yesNo(!s.Visibility)
	env[KeyInlinesPrivateExtern] = yesNo(!s.Visibility)
	env[KeyOSXSysroot] = XcodeSysroot
	return env
}

// EmitMakefile returns compiler, tool and flag variables for a Makefile
// style build, along with the flags it computed.
func EmitMakefile(s *model.Settings, archs []string, sdk *resolver.SDK) (Env, FlagSet) {
	flags := ComputeFlags(s, archs, sdk.Sysroot)
	cflags := Join(flags.CFlags)

	env := Env{
		"CC":     sdk.CC,
		"CPP":    sdk.CC + " -E",
		"CXX":    sdk.CXX,
		"AR":     sdk.AR,
		"RANLIB": sdk.Ranlib,
		"STRIP":  sdk.Strip,

		"CFLAGS":   cflags,
		"ASFLAGS":  cflags,
		"CPPFLAGS": cflags,
		"CXXFLAGS": Join(flags.CXXFlags),
		"LDFLAGS":  Join(flags.SharedLinkFlags),

		KeyOSXSysroot: sdk.Sysroot,
	}
	return env, flags
}
