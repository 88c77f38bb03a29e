package main

import "chartserve/cmd"

func main() {
	cmd.Execute()
}
