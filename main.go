package main

import (
	"os"

	"scanquote/cli"
)

func main() {
	os.Exit(cli.Execute())
}
