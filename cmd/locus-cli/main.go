package main

import "locus/cmd/locus-cli/cmd"

func main() {
	cmd.Execute()
}
