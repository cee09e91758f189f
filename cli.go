//go:build cli
// +build cli

package main

import (
	_ "coilgen.GO/custom"

	"coilgen.GO/cmd"
	"coilgen.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
