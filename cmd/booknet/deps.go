package main

import "github.com/cristianoliveira/booknet/internal/core"

// coreClient is built from configuration on first use, after the root
// command has loaded it.
var coreClient = core.NewCore(nil)
