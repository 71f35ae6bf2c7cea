package glossa

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the release of the module.
var Version = strings.TrimSpace(rawVersion)
