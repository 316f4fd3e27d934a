package gen

import (
	"github.com/gmeeker/conan-darwin-toolchain/toolchain"
)

// Context holds everything a generator needs to produce output.
type Context struct {
	Result       *toolchain.Result
	SettingsPath string // Path to the settings file, for file banners; may be empty
	Verbose      bool
	DryRun       bool
}

// NewContext creates a new generation context.
func NewContext(result *toolchain.Result, settingsPath string) *Context {
	return &Context{
		Result:       result,
		SettingsPath: settingsPath,
	}
}
