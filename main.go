package main

import (
	"os"

	"github.com/slggamerTrue/languageLearning/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
