package main

import (
	"os"

	"github.com/tkoeppen/ftpsync/cmd/ftpsync/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
