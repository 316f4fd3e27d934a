package model

// Platform is the target-OS dependent part of validated settings.
// It is either MacosPlatform or MobilePlatform.
type Platform interface {
	isPlatform()
}

// MacosPlatform carries nothing: build type and bitcode do not apply on macOS.
type MacosPlatform struct{}

// MobilePlatform is used for iOS, watchOS and tvOS.
type MobilePlatform struct {
	BuildType BuildType
	Bitcode   bool
}

func (MacosPlatform) isPlatform()  {}
func (MobilePlatform) isPlatform() {}

// Settings is a validated, immutable settings record.
// Construct it with validate.Settings; do not modify it afterwards.
type Settings struct {
	OS         OS
	Arch       string
	Compiler   string
	OSVersion  string // empty when no deployment target is set
	SDK        string // explicit SDK name, may be empty
	SDKVersion string
	FatArch    []string

	ARC        bool
	Visibility bool
	Xcode      bool

	Platform Platform
}

// Mobile returns the mobile platform options and true for iOS, watchOS and tvOS.
func (s *Settings) Mobile() (MobilePlatform, bool) {
	m, ok := s.Platform.(MobilePlatform)
	return m, ok
}

// BitcodeEnabled returns true if bitcode flags apply to these settings.
func (s *Settings) BitcodeEnabled() bool {
	m, ok := s.Mobile()
	return ok && m.Bitcode
}
