package version

// Version holds the cfmerge release version. Set at build time via ldflags:
//
//	-ldflags "-X 'github.com/cfmerge/cfmerge/pkg/version.Version=v1.2.3'"
var Version = "0.1.0"
