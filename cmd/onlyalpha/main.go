// onlyalpha strips a text file down to ASCII letters, spaces and newlines.
package main

import (
	"os"

	"github.com/hupe1980/onlyalpha/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
