package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gmeeker/conan-darwin-toolchain/loader"
	"github.com/gmeeker/conan-darwin-toolchain/resolver"
	"github.com/gmeeker/conan-darwin-toolchain/toolchain"
	"github.com/gmeeker/conan-darwin-toolchain/validate"
	"github.com/google/go-cmp/cmp"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const fakeXcrun = `#!/bin/sh
case "$3" in
  --show-sdk-path) echo "/Xcode/SDKs/$2.sdk";;
  -find) echo "/Xcode/bin/$4";;
esac
`

func useFakeXcrun(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xcrun")
	if err := os.WriteFile(path, []byte(fakeXcrun), 0755); err != nil {
		t.Fatalf("writing fake xcrun: %v", err)
	}
	t.Setenv(resolver.XcrunEnvVar, path)
}

// prepare resets every flag of c to its default, applies flags, and
// captures the command output.
func prepare(t *testing.T, c *cobra.Command, flags map[string]string) *bytes.Buffer {
	t.Helper()
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for name, value := range flags {
		if err := c.Flags().Set(name, value); err != nil {
			t.Fatalf("setting --%s: %v", name, err)
		}
	}
	quiet, verbose = false, false
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	return &out
}

func parseEnv(t *testing.T, out string) map[string]string {
	t.Helper()
	env := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		kv, ok := strings.CutPrefix(line, "export ")
		if !ok {
			t.Fatalf("unexpected line %q", line)
		}
		key, quoted, _ := strings.Cut(kv, "=")
		words, err := shellquote.Split(quoted)
		if err != nil || len(words) != 1 {
			t.Fatalf("line %q: got %q, %v", line, words, err)
		}
		env[key] = words[0]
	}
	return env
}

func testdata(name string) string {
	return filepath.Join("..", "testdata", name)
}

func TestResolve_IOSReleaseEnv(t *testing.T) {
	useFakeXcrun(t)
	pkg := t.TempDir()
	out := prepare(t, resolveCmd, map[string]string{"package-dir": pkg})

	if err := runResolve(resolveCmd, []string{testdata("ios_release.yaml")}); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	env := parseEnv(t, out.String())
	wantCFlags := "-isysroot/Xcode/SDKs/iphoneos.sdk -mios-version-min=12.0 -fembed-bitcode -fobjc-arc -arch arm64 -fvisibility=hidden"
	if env["CFLAGS"] != wantCFlags {
		t.Errorf("CFLAGS = %q, want %q", env["CFLAGS"], wantCFlags)
	}
	if env["CPP"] != "/Xcode/bin/clang -E" {
		t.Errorf("CPP = %q", env["CPP"])
	}
	if env[toolchain.KeyArchitectures] != "arm64" {
		t.Errorf("architectures = %q, want arm64", env[toolchain.KeyArchitectures])
	}
	if got, want := env[toolchain.KeyToolchainFile], filepath.Join(pkg, "darwin-toolchain.cmake"); got != want {
		t.Errorf("toolchain file = %q, want %q", got, want)
	}
}

func TestResolve_FlagsOverrideFile(t *testing.T) {
	useFakeXcrun(t)
	out := prepare(t, resolveCmd, map[string]string{
		"xcode":      "true",
		"visibility": "true",
		"format":     "json",
	})

	if err := runResolve(resolveCmd, []string{testdata("ios_release.yaml")}); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		`"CONAN_CMAKE_GENERATOR": "Xcode"`,
		`"CONAN_CMAKE_OSX_SYSROOT": "macosx"`,
		`"CONAN_CMAKE_XCODE_ATTRIBUTE_GCC_SYMBOLS_PRIVATE_EXTERN": "NO"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in output:\n%s", want, got)
		}
	}
}

func TestResolve_FlagsOnly(t *testing.T) {
	useFakeXcrun(t)
	out := prepare(t, resolveCmd, map[string]string{
		"os":         "watchOS",
		"os-build":   "Macos",
		"arch":       "armv8",
		"fat-arch":   "x86_64;armv8",
		"xcode":      "false",
		"os-version": "5.0",
	})

	if err := runResolve(resolveCmd, nil); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	env := parseEnv(t, out.String())
	if env[toolchain.KeyArchitectures] != "x86_64;arm64_32" {
		t.Errorf("architectures = %q, want x86_64;arm64_32", env[toolchain.KeyArchitectures])
	}
	if !strings.Contains(env["LDFLAGS"], "-arch x86_64 -arch arm64_32") {
		t.Errorf("LDFLAGS = %q", env["LDFLAGS"])
	}
}

func TestResolve_InvalidSettingsReportedBeforeXcrun(t *testing.T) {
	t.Setenv(resolver.XcrunEnvVar, "/nonexistent/xcrun")
	prepare(t, resolveCmd, map[string]string{"os-build": "Linux"})

	err := runResolve(resolveCmd, []string{testdata("ios_release.yaml")})
	if err == nil {
		t.Fatal("expected error for os_build Linux")
	}
	if !strings.Contains(err.Error(), "build machine must be Macos") {
		t.Errorf("expected settings error, got: %v", err)
	}
}

func TestResolve_UnknownFormat(t *testing.T) {
	useFakeXcrun(t)
	prepare(t, resolveCmd, map[string]string{"format": "xml"})
	if err := runResolve(resolveCmd, []string{testdata("ios_release.yaml")}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestValidate_Passes(t *testing.T) {
	out := prepare(t, validateCmd, nil)
	verbose = true
	defer func() { verbose = false }()

	if err := runValidate(validateCmd, []string{testdata("watchos_fat.yaml")}); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Architectures: armv7k;arm64_32", "-mwatchos-version-min=5.0", "Validation passed."} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestValidate_TvOSWithoutBitcode(t *testing.T) {
	prepare(t, validateCmd, map[string]string{
		"os":       "tvOS",
		"os-build": "Macos",
		"arch":     "armv8",
		"bitcode":  "false",
	})
	err := runValidate(validateCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "enable_bitcode is required") {
		t.Errorf("expected bitcode error, got %v", err)
	}
}

func TestGenerate_MakefilePackage(t *testing.T) {
	useFakeXcrun(t)
	dir := filepath.Join(t.TempDir(), "pkg")
	prepare(t, generateCmd, map[string]string{"output": dir})

	if err := runGenerate(generateCmd, []string{testdata("ios_release.yaml")}); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for _, name := range []string{"darwin-toolchain.cmake", "darwin-toolchain-cache.cmake", "darwin-toolchain.env.sh", "darwin-toolchain.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}

	script, err := os.ReadFile(filepath.Join(dir, "darwin-toolchain.env.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(script), "CONAN_CMAKE_TOOLCHAIN_FILE="+filepath.Join(dir, "darwin-toolchain.cmake")) {
		t.Errorf("env script does not point at the packaged toolchain file:\n%s", script)
	}
}

func TestGenerate_XcodeSkipsEnvScript(t *testing.T) {
	useFakeXcrun(t)
	dir := t.TempDir()
	prepare(t, generateCmd, map[string]string{"output": dir})

	if err := runGenerate(generateCmd, []string{testdata("macos_universal.yaml")}); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "darwin-toolchain.env.sh")); !os.IsNotExist(err) {
		t.Errorf("expected no env script for an Xcode build, got err=%v", err)
	}
}

func TestGenerate_DryRun(t *testing.T) {
	useFakeXcrun(t)
	dir := filepath.Join(t.TempDir(), "pkg")
	out := prepare(t, generateCmd, map[string]string{"output": dir, "dry-run": "true", "generators": "cmake"})

	if err := runGenerate(generateCmd, []string{testdata("ios_release.yaml")}); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("dry run must not create the output directory")
	}
	if !strings.Contains(out.String(), "Would write: "+filepath.Join(dir, "darwin-toolchain.cmake")) {
		t.Errorf("unexpected dry-run output:\n%s", out.String())
	}
}

func TestGenerate_UnknownGenerator(t *testing.T) {
	useFakeXcrun(t)
	prepare(t, generateCmd, map[string]string{"output": t.TempDir(), "generators": "xcodeproj"})
	if err := runGenerate(generateCmd, []string{testdata("ios_release.yaml")}); err == nil {
		t.Error("expected error for unknown generator")
	}
}

func TestInit_WritesValidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tv.yaml")
	prepare(t, initCmd, map[string]string{"os": "tvOS", "output": path, "os-version": "12.0"})

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, err := loader.LoadConfig(path)
	if err != nil {
		t.Fatalf("starter settings do not load: %v", err)
	}
	s, err := validate.Settings(cfg)
	if err != nil {
		t.Fatalf("starter settings do not validate: %v", err)
	}
	archs, err := toolchain.ArchitectureList(s)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"arm64"}, archs); diff != "" {
		t.Errorf("architectures mismatch (-want +got):\n%s", diff)
	}
	if !s.BitcodeEnabled() {
		t.Error("tvOS starter settings must enable bitcode")
	}

	// A second run must not clobber the file.
	if err := runInit(initCmd, nil); err == nil {
		t.Error("expected error when the settings file exists")
	}
}

func TestVersion(t *testing.T) {
	out := prepare(t, versionCmd, nil)
	versionCmd.Run(versionCmd, nil)
	if got := out.String(); got != "darwin-toolchain dev\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestDumpSchema(t *testing.T) {
	out := prepare(t, dumpSchemaCmd, nil)
	if err := dumpSchemaCmd.RunE(dumpSchemaCmd, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"os_build"`) {
		t.Error("expected the settings schema on stdout")
	}
}
