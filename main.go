// Package main is the entry point for the shsplit CLI.
package main

import "shsplit.dev/pkg/shsplit/cmd"

func main() {
	cmd.Execute()
}
