package main

import (
	"github.com/origadmin/scaffold/cmd/scaffold/commands"
)

var (
	version   = "0.0.1"
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
)

func main() {
	commands.Execute(commands.BuildInfo{
		Version:   version,
		Commit:    commit,
		TreeState: treeState,
		Date:      date,
		BuiltBy:   builtBy,
	})
}
