package main

import (
	"github.com/strrl/session-resume/cmd/session-resume/commands"
)

func main() {
	commands.Execute()
}
