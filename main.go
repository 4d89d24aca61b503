package main

import "vizshell/cmd"

func main() {
	cmd.Execute()
}
