package main

import (
	"github.com/incidentops/triagebot/cmd"
)

func main() {
	cmd.Execute()
}
