package main

import "github.com/momentumlab/momentum/cmd"

func main() {
	cmd.Execute()
}
