package main

import "github.com/ssmelov/snipmark/internal/cli"

func main() {
	cli.Execute()
}
