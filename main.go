package main

import "kousu/cmd"

func main() {
	cmd.Execute()
}
