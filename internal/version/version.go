package version

// Set at build time with -ldflags "-X github.com/bnema/pabx-entitlements/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
)

func String() string {
	if Commit == "" || Commit == "none" {
		return Version
	}

	return Version + " (" + Commit + ")"
}
