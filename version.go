package slipbox

import _ "embed"

// Version is the release of the slipbox module.
//
//go:embed VERSION
var Version string
