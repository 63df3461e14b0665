package main

import "github.com/ce-dot-net/acetrail/cmd"

func main() {
	cmd.Execute()
}
