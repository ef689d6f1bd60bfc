package main

import (
	"os"

	"github.com/hollowbyte/it2jump/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
