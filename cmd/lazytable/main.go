package main

import (
	"os"

	"github.com/rebeliceyang/lazytable/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
