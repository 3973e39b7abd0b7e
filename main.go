// Package main is the entry point for the gwoptimizer CLI tool, which
// searches gear/affix combinations for Guild Wars 2 builds.
package main

import "github.com/pable/go-cs-metrics/cmd"

func main() {
	cmd.Execute()
}
