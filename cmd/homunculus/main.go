package main

import "homunculus/internal/cli"

func main() {
	cli.Execute()
}
