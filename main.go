package main

import (
	"os"

	"github.com/bytetechedu/bytetech/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
