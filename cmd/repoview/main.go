package main

import (
	"repoview/internal/cli"
)

func main() {
	cli.Execute()
}
