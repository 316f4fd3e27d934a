package toolchain

import "github.com/gmeeker/conan-darwin-toolchain/model"

var deploymentTargetFlags = map[string]string{
	model.SDKMacOSX:           "-mmacosx-version-min",
	model.SDKIPhoneOS:         "-mios-version-min",
	model.SDKIPhoneSimulator:  "-mios-simulator-version-min",
	model.SDKWatchOS:          "-mwatchos-version-min",
	model.SDKWatchSimulator:   "-mwatchos-simulator-version-min",
	model.SDKAppleTVOS:        "-mtvos-version-min",
	model.SDKAppleTVSimulator: "-mtvos-simulator-version-min",
}

// SDKName returns the xcrun SDK name for the settings. An explicit sdk wins;
// otherwise Intel archs select the simulator SDK of a mobile OS.
func SDKName(s *model.Settings) string {
	if s.SDK != "" {
		return s.SDK
	}
	device, simulator, _ := model.SDKsForOS(s.OS)
	if simulator != "" && model.IsSimulatorArch(s.Arch) {
		return simulator
	}
	return device
}

// DeploymentTargetFlag returns e.g. "-mios-version-min=12.0", or "" when no
// os version is set.
func DeploymentTargetFlag(s *model.Settings) string {
	if s.OSVersion == "" {
		return ""
	}
	flag, ok := deploymentTargetFlags[SDKName(s)]
	if !ok {
		return ""
	}
	return flag + "=" + s.OSVersion
}
