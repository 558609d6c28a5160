package main

import "github.com/pixfolio/pixfolio/cmd"

func main() {
	cmd.Execute()
}
