package main

import "github.com/diogo/aichat/internal/commands"

func main() {
	commands.Execute()
}
