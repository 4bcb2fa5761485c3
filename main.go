package main

import "github.com/kamal-hamza/tokenlint/cmd"

func main() {
	cmd.Execute()
}
