package gen

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gmeeker/conan-darwin-toolchain/toolchain"
	"github.com/kballard/go-shellquote"
)

// Banner returns the generated-file banner using the given comment prefix.
func Banner(ctx *Context, comment string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Generated by darwin-toolchain. Do not edit.\n", comment)
	if ctx != nil && ctx.SettingsPath != "" {
		fmt.Fprintf(&b, "%s Settings: %s\n", comment, filepath.Base(ctx.SettingsPath))
	}
	return b.String()
}

// RenderEnv writes one `export KEY=value` line per variable, sorted by key,
// with values quoted for POSIX shells.
func RenderEnv(env toolchain.Env) string {
	var b strings.Builder
	for _, k := range env.Keys() {
		fmt.Fprintf(&b, "export %s=%s\n", k, shellquote.Join(env[k]))
	}
	return b.String()
}

var cmakeEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)

// RenderCMakeCache writes `set(KEY "value" CACHE STRING "")` lines suitable
// for `cmake -C`.
func RenderCMakeCache(env toolchain.Env) string {
	var b strings.Builder
	for _, k := range env.Keys() {
		fmt.Fprintf(&b, "set(%s \"%s\" CACHE STRING \"\")\n", k, cmakeEscaper.Replace(env[k]))
	}
	return b.String()
}

// jsonDocument is the JSON shape of a resolved toolchain.
type jsonDocument struct {
	Sysroot         string            `json:"sysroot"`
	Architectures   []string          `json:"architectures"`
	CFlags          []string          `json:"cflags"`
	CXXFlags        []string          `json:"cxxflags"`
	SharedLinkFlags []string          `json:"sharedlinkflags"`
	ExeLinkFlags    []string          `json:"exelinkflags"`
	Env             map[string]string `json:"env"`
}

// RenderJSON renders the resolved toolchain and its environment as indented JSON.
func RenderJSON(result *toolchain.Result) (string, error) {
	tc := result.Toolchain
	doc := jsonDocument{
		Sysroot:         tc.Sysroot,
		Architectures:   tc.Architectures,
		CFlags:          tc.Flags.CFlags,
		CXXFlags:        tc.Flags.CXXFlags,
		SharedLinkFlags: tc.Flags.SharedLinkFlags,
		ExeLinkFlags:    tc.Flags.ExeLinkFlags,
		Env:             result.Env,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// Render renders the result in one of the `resolve --format` formats.
func Render(result *toolchain.Result, format string) (string, error) {
	switch format {
	case "env":
		return RenderEnv(result.Env), nil
	case "cmake":
		return RenderCMakeCache(result.Env), nil
	case "json":
		return RenderJSON(result)
	default:
		return "", fmt.Errorf("unknown format %q (want env, cmake or json)", format)
	}
}
