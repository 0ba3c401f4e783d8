// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/trackhub/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/trackhub/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/trackhub/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/trackhub
package buildinfo

import "fmt"

// Set via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the tool in HTTP responses, e.g. "trackhub/v1.2.0".
func UserAgent() string {
	return "trackhub/" + Version
}

// Template returns the version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
