package main

import (
	"facetcrawl/cmd/facetcrawl/commands"
	"facetcrawl/lib/util/serviceutil"
)

func main() {
	serviceutil.LoadEnv()
	commands.ExecuteContext(serviceutil.SignalContext())
}
