package main

import (
	"os"

	"listing/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
