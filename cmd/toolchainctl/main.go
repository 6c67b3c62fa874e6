package main

import "toolchainctl/internal/cli"

func main() {
	cli.Execute()
}
