package main

import "disasterhub/cmd"

func main() {
	cmd.Execute()
}
