package version

import "fmt"

// Set through -ldflags "-X minihttp/internal/version.Version=...".
var (
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
)

func GetVersion() string {
	return fmt.Sprintf("minihttp %s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

func GetShortVersion() string {
	return Version
}

// ServerToken is the product token used in the Server response header.
func ServerToken() string {
	if Version == "" {
		return "minihttp"
	}
	return "minihttp/" + Version
}
