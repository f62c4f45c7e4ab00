package main

import "github.com/larago/larago/cmd/larago/commands"

func main() {
	commands.Execute()
}
