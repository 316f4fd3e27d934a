package model

// Apple SDK names as understood by xcrun -sdk.
const (
	SDKMacOSX           = "macosx"
	SDKIPhoneOS         = "iphoneos"
	SDKIPhoneSimulator  = "iphonesimulator"
	SDKWatchOS          = "watchos"
	SDKWatchSimulator   = "watchsimulator"
	SDKAppleTVOS        = "appletvos"
	SDKAppleTVSimulator = "appletvsimulator"
)

// SDKsForOS returns the device and simulator SDK names for an Apple OS.
// macOS has no simulator SDK, so simulator is empty.
func SDKsForOS(os OS) (device, simulator string, ok bool) {
	switch os {
	case Macos:
		return SDKMacOSX, "", true
	case IOS:
		return SDKIPhoneOS, SDKIPhoneSimulator, true
	case WatchOS:
		return SDKWatchOS, SDKWatchSimulator, true
	case TvOS:
		return SDKAppleTVOS, SDKAppleTVSimulator, true
	default:
		return "", "", false
	}
}

// IsSimulatorArch returns true for architectures that build for a simulator
// SDK when no SDK is given explicitly.
func IsSimulatorArch(arch string) bool {
	return arch == "x86" || arch == "x86_64"
}
