package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var apiURL string

func main() {
	app := &cli.App{
		Name:  "marketctl",
		Usage: "operator CLI for the marketplace ledger API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "api",
				Usage:       "base URL of the marketplace API",
				Value:       "http://localhost:9015",
				EnvVars:     []string{"MARKETPLACE_API_URL"},
				Destination: &apiURL,
			},
		},
		Commands: []*cli.Command{
			createTaskCommand(),
			applyCommand(),
			acceptCommand(),
			submitCommand(),
			approveCommand(),
			autoApproveCommand(),
			cancelCommand(),
			expireCommand(),
			getTaskCommand(),
			applicantsCommand(),
			balanceCommand(),
			withdrawCommand(),
			rateCommand(),
			ratingCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
