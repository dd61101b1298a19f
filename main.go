package main

import (
	"fmt"
	"os"

	"github.com/stateful/emailbuilder/internal/cmd"
	"github.com/stateful/emailbuilder/internal/log"
	"github.com/stateful/emailbuilder/internal/version"
)

func root() int {
	defer log.Flush()

	root := cmd.Root()
	root.Version = version.String()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func main() {
	os.Exit(root())
}
