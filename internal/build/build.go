package build

import "fmt"

// Overridden at build time with -ldflags "-X ..."
var (
	ProjectVersion = "dev"
	GitRef         = "unknown"
	BuildDate      = "unknown"
)

var LongVersion = fmt.Sprintf("%s (%s, %s)", ProjectVersion, GitRef, BuildDate)
