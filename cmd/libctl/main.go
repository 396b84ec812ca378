package main

import "github.com/TanzidTowfiq/Library-Management-Software/cmd/libctl/commands"

func main() {
	commands.Execute()
}
