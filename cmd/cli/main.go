package main

import "carhub/cmd/cli/command"

func main() {
	command.Execute()
}
