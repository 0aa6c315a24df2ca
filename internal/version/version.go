package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/vuegen/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/vuegen/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/vuegen/internal/version.Date={{.Date}}
)

// String returns the one-line version banner
func String() string {
	return "vuegen " + Version + " (" + Commit + ", built " + Date + ")"
}
