package main

import (
	"os"

	"github.com/charliek/git-preserves/internal/cli"
	"github.com/charliek/git-preserves/internal/domain"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(domain.GetExitCode(err))
	}
}
