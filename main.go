// Package main is the entry point for the muter CLI.
package main

import "github.com/agoda-com/muter/cmd"

func main() {
	cmd.Execute()
}
