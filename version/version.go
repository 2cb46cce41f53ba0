package version //nolint:revive // package name intentionally matches build-info convention

import "fmt"

//nolint:gochecknoglobals //version information is set at build time
var (
	Repository = "github.com/itoolpack/itoolpack"
	Version    string
	Commit     string
	Date       string
)

// String formats the build information, reporting unset fields as "unknown".
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", orUnknown(Version), orUnknown(Commit), orUnknown(Date))
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
