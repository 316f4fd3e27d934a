package model

import "strings"

// OS is an operating system name as it appears in package settings.
type OS string

const (
	Macos   OS = "Macos"
	IOS     OS = "iOS"
	WatchOS OS = "watchOS"
	TvOS    OS = "tvOS"
)

// AppleOSes is the complete list of valid target operating systems.
var AppleOSes = []OS{Macos, IOS, WatchOS, TvOS}

// IsApple returns true if os is one of the Apple operating systems.
func (os OS) IsApple() bool {
	for _, a := range AppleOSes {
		if os == a {
			return true
		}
	}
	return false
}

// BuildType is the configuration flavour of a build.
type BuildType string

const (
	Debug   BuildType = "Debug"
	Release BuildType = "Release"
)

// ValidBuildTypes is the complete list of valid build types.
var ValidBuildTypes = []BuildType{Debug, Release}

// ValidCompilers lists the compilers that accept clang-style Apple flags.
var ValidCompilers = []string{"apple-clang", "clang"}

// WatchOSArchs are the only architectures watchOS can target.
var WatchOSArchs = []string{"armv7k", "armv8", "x86", "x86_64"}

// Config is the raw settings record of a toolchain YAML file.
// Optional fields are left at their zero value when absent.
type Config struct {
	OS         OS        `yaml:"os"`
	OSBuild    OS        `yaml:"os_build"`
	Arch       string    `yaml:"arch"`
	BuildType  BuildType `yaml:"build_type,omitempty"`
	Compiler   string    `yaml:"compiler,omitempty"`
	OSVersion  string    `yaml:"os_version,omitempty"`
	SDK        string    `yaml:"sdk,omitempty"`
	SDKVersion string    `yaml:"sdk_version,omitempty"` // e.g. "14.5" selects iphoneos14.5
	FatArch    string    `yaml:"fat_arch,omitempty"`
	Options    Options   `yaml:"options,omitempty"`
}

// Options holds the recipe options. nil means "use the default".
type Options struct {
	EnableBitcode    *bool `yaml:"enable_bitcode,omitempty"`
	EnableARC        *bool `yaml:"enable_arc,omitempty"`
	EnableVisibility *bool `yaml:"enable_visibility,omitempty"`
	Xcode            *bool `yaml:"xcode,omitempty"`
}

// Option defaults.
const (
	DefaultEnableBitcode    = true
	DefaultEnableARC        = true
	DefaultEnableVisibility = false
	DefaultXcode            = true
)

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Bitcode returns the effective enable_bitcode option.
func (o Options) Bitcode() bool { return boolOr(o.EnableBitcode, DefaultEnableBitcode) }

// ARC returns the effective enable_arc option.
func (o Options) ARC() bool { return boolOr(o.EnableARC, DefaultEnableARC) }

// Visibility returns the effective enable_visibility option.
func (o Options) Visibility() bool { return boolOr(o.EnableVisibility, DefaultEnableVisibility) }

// UseXcode returns the effective xcode option.
func (o Options) UseXcode() bool { return boolOr(o.Xcode, DefaultXcode) }

// Bool returns a pointer to b, for filling Options literals.
func Bool(b bool) *bool { return &b }

// FatArchList splits the fat_arch setting on ';'. Empty entries are dropped.
func (c *Config) FatArchList() []string {
	var archs []string
	for _, a := range strings.Split(c.FatArch, ";") {
		if a = strings.TrimSpace(a); a != "" {
			archs = append(archs, a)
		}
	}
	return archs
}
