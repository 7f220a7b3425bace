// Command giftgrid plans collectible gift layouts from the terminal.
package main

import (
	"os"

	"github.com/mesh-intelligence/giftgrid/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
