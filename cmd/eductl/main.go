package main

import (
	"fmt"
	"os"

	"github.com/noah-isme/edu-advisor-api/cmd/eductl/cli"
)

var (
	version = "0.1.0-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewSummaryCommand())
	root.AddCommand(cli.NewQueriesCommand())
	root.AddCommand(cli.NewReportsCommand())
	root.AddCommand(cli.NewAdmissionsCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
