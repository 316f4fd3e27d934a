package resolver

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// XcrunEnvVar overrides the xcrun binary when no explicit path is given.
const XcrunEnvVar = "DARWIN_TOOLCHAIN_XCRUN"

// ResolveXcrun finds the xcrun binary using the resolution order:
// 1. Explicit flag path (if non-empty)
// 2. DARWIN_TOOLCHAIN_XCRUN environment variable
// 3. "xcrun" in PATH
func ResolveXcrun(flagPath string) (string, error) {
	if flagPath != "" {
		if _, err := os.Stat(flagPath); err != nil {
			return "", fmt.Errorf("xcrun not found at specified path: %s", flagPath)
		}
		return flagPath, nil
	}

	if envPath := os.Getenv(XcrunEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("xcrun not found at %s: %s", XcrunEnvVar, envPath)
		}
		return envPath, nil
	}

	path, err := exec.LookPath("xcrun")
	if err != nil {
		return "", fmt.Errorf("xcrun not found in PATH; set --xcrun flag or %s environment variable", XcrunEnvVar)
	}
	return path, nil
}

// Query identifies the SDK to locate.
type Query struct {
	SDK        string // xcrun SDK name, e.g. "iphoneos"
	SDKVersion string // optional, e.g. "14.5"
}

// Name returns the full xcrun -sdk argument, e.g. "iphoneos14.5".
func (q Query) Name() string {
	return q.SDK + q.SDKVersion
}

// SDK is the answer of a Locator: the sysroot and the tool paths inside the
// selected developer toolchain.
type SDK struct {
	Sysroot string
	CC      string
	CXX     string
	AR      string
	Ranlib  string
	Strip   string
}

// Locator resolves an Apple SDK to a sysroot and toolchain binaries.
type Locator interface {
	Locate(q Query) (*SDK, error)
}

// SDKNotFoundError reports that an SDK, or a tool inside it, could not be resolved.
type SDKNotFoundError struct {
	SDK  string
	Tool string // empty when the SDK path itself was not found
	Err  error
}

func (e *SDKNotFoundError) Error() string {
	if e.Tool == "" {
		return fmt.Sprintf("SDK %q not found: %v", e.SDK, e.Err)
	}
	return fmt.Sprintf("tool %q not found in SDK %q: %v", e.Tool, e.SDK, e.Err)
}

func (e *SDKNotFoundError) Unwrap() error {
	return e.Err
}

// XCRun locates SDKs by running xcrun.
type XCRun struct {
	Path   string // xcrun binary
	Logger *zap.Logger
}

// NewXCRun returns an XCRun using the binary at path.
func NewXCRun(path string, logger *zap.Logger) *XCRun {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &XCRun{Path: path, Logger: logger}
}

// Locate queries the SDK path and then each tool. The first failure aborts
// the lookup; no partial SDK is returned.
func (x *XCRun) Locate(q Query) (*SDK, error) {
	sdk := q.Name()

	sysroot, err := x.run("-sdk", sdk, "--show-sdk-path")
	if err != nil {
		return nil, &SDKNotFoundError{SDK: sdk, Err: err}
	}

	result := &SDK{Sysroot: sysroot}
	tools := []struct {
		name string
		dst  *string
	}{
		{"clang", &result.CC},
		{"clang++", &result.CXX},
		{"ar", &result.AR},
		{"ranlib", &result.Ranlib},
		{"strip", &result.Strip},
	}
	for _, tool := range tools {
		path, err := x.run("-sdk", sdk, "-find", tool.name)
		if err != nil {
			return nil, &SDKNotFoundError{SDK: sdk, Tool: tool.name, Err: err}
		}
		*tool.dst = path
	}
	return result, nil
}

// run invokes xcrun and returns its trimmed stdout. Empty output is an error.
func (x *XCRun) run(args ...string) (string, error) {
	logger := x.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("running xcrun", zap.String("xcrun", x.Path), zap.Strings("args", args))

	var stderr bytes.Buffer
	cmd := exec.Command(x.Path, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}

	value := strings.TrimSpace(string(out))
	if value == "" {
		return "", fmt.Errorf("xcrun %s returned no output", strings.Join(args, " "))
	}
	logger.Debug("xcrun answered", zap.Strings("args", args), zap.String("value", value))
	return value, nil
}
