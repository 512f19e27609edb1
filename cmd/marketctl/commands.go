package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"
)

func createTaskCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "post a new task with its reward locked in escrow",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "creator", Required: true},
			&cli.StringFlag{Name: "title", Required: true},
			&cli.StringFlag{Name: "metadata-ref", Required: true},
			&cli.StringFlag{Name: "category", Value: "other"},
			&cli.StringFlag{Name: "tags-digest"},
			&cli.DurationFlag{Name: "apply-in", Value: 24 * time.Hour, Usage: "apply deadline relative to now"},
			&cli.DurationFlag{Name: "deliver-in", Value: 72 * time.Hour, Usage: "delivery deadline relative to now"},
			&cli.StringFlag{Name: "reward", Required: true, Usage: "reward in wei"},
		},
		Action: func(c *cli.Context) error {
			now := time.Now().UTC()
			return callAPI(http.MethodPost, "/api/tasks", map[string]interface{}{
				"creator":           c.String("creator"),
				"title":             c.String("title"),
				"metadata_ref":      c.String("metadata-ref"),
				"category":          c.String("category"),
				"tags_digest":       c.String("tags-digest"),
				"apply_deadline":    now.Add(c.Duration("apply-in")),
				"delivery_deadline": now.Add(c.Duration("deliver-in")),
				"reward":            c.String("reward"),
			})
		},
	}
}

func applyCommand() *cli.Command {
	return &cli.Command{
		Name:  "apply",
		Usage: "apply to an open task",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "task", Required: true},
			&cli.StringFlag{Name: "applicant", Required: true},
		},
		Action: func(c *cli.Context) error {
			path := fmt.Sprintf("/api/tasks/%d/apply", c.Uint64("task"))
			return callAPI(http.MethodPost, path, map[string]interface{}{
				"applicant": c.String("applicant"),
			})
		},
	}
}

func acceptCommand() *cli.Command {
	return &cli.Command{
		Name:  "accept",
		Usage: "accept an applicant as the task's worker",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "task", Required: true},
			&cli.StringFlag{Name: "creator", Required: true},
			&cli.StringFlag{Name: "worker", Required: true},
		},
		Action: func(c *cli.Context) error {
			path := fmt.Sprintf("/api/tasks/%d/accept", c.Uint64("task"))
			return callAPI(http.MethodPost, path, map[string]interface{}{
				"creator": c.String("creator"),
				"worker":  c.String("worker"),
			})
		},
	}
}

func submitCommand() *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "submit completed work",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "task", Required: true},
			&cli.StringFlag{Name: "worker", Required: true},
			&cli.StringFlag{Name: "submission-ref", Required: true},
		},
		Action: func(c *cli.Context) error {
			path := fmt.Sprintf("/api/tasks/%d/submit", c.Uint64("task"))
			return callAPI(http.MethodPost, path, map[string]interface{}{
				"worker":         c.String("worker"),
				"submission_ref": c.String("submission-ref"),
			})
		},
	}
}

func approveCommand() *cli.Command {
	return &cli.Command{
		Name:  "approve",
		Usage: "approve submitted work and release the payout",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "task", Required: true},
			&cli.StringFlag{Name: "creator", Required: true},
		},
		Action: func(c *cli.Context) error {
			path := fmt.Sprintf("/api/tasks/%d/approve", c.Uint64("task"))
			return callAPI(http.MethodPost, path, map[string]interface{}{
				"creator": c.String("creator"),
			})
		},
	}
}

func autoApproveCommand() *cli.Command {
	return &cli.Command{
		Name:  "auto-approve",
		Usage: "trigger auto approval after the review window elapsed",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "task", Required: true},
		},
		Action: func(c *cli.Context) error {
			path := fmt.Sprintf("/api/tasks/%d/auto-approve", c.Uint64("task"))
			return callAPI(http.MethodPost, path, nil)
		},
	}
}

func cancelCommand() *cli.Command {
	return &cli.Command{
		Name:  "cancel",
		Usage: "cancel a task and refund the creator",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "task", Required: true},
			&cli.StringFlag{Name: "creator", Required: true},
		},
		Action: func(c *cli.Context) error {
			path := fmt.Sprintf("/api/tasks/%d/cancel", c.Uint64("task"))
			return callAPI(http.MethodPost, path, map[string]interface{}{
				"creator": c.String("creator"),
			})
		},
	}
}

func expireCommand() *cli.Command {
	return &cli.Command{
		Name:  "expire",
		Usage: "expire a task past its deadline and refund the creator",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "task", Required: true},
		},
		Action: func(c *cli.Context) error {
			path := fmt.Sprintf("/api/tasks/%d/expire", c.Uint64("task"))
			return callAPI(http.MethodPost, path, nil)
		},
	}
}

func getTaskCommand() *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: "fetch a task record",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "task", Required: true},
			&cli.BoolFlag{Name: "resolve", Usage: "attach the IPFS metadata document"},
		},
		Action: func(c *cli.Context) error {
			path := fmt.Sprintf("/api/tasks/%d", c.Uint64("task"))
			if c.Bool("resolve") {
				path += "?resolve=true"
			}
			return callAPI(http.MethodGet, path, nil)
		},
	}
}

func applicantsCommand() *cli.Command {
	return &cli.Command{
		Name:  "applicants",
		Usage: "list a task's applicants in application order",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "task", Required: true},
		},
		Action: func(c *cli.Context) error {
			path := fmt.Sprintf("/api/tasks/%d/applicants", c.Uint64("task"))
			return callAPI(http.MethodGet, path, nil)
		},
	}
}

func balanceCommand() *cli.Command {
	return &cli.Command{
		Name:  "balance",
		Usage: "show an account's withdrawable balance",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "account", Required: true},
		},
		Action: func(c *cli.Context) error {
			return callAPI(http.MethodGet, "/api/balances/"+c.String("account"), nil)
		},
	}
}

func withdrawCommand() *cli.Command {
	return &cli.Command{
		Name:  "withdraw",
		Usage: "withdraw an account's full pending balance",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "account", Required: true},
		},
		Action: func(c *cli.Context) error {
			return callAPI(http.MethodPost, "/api/withdrawals", map[string]interface{}{
				"account": c.String("account"),
			})
		},
	}
}

func rateCommand() *cli.Command {
	return &cli.Command{
		Name:  "rate",
		Usage: "rate the counterparty of a completed task",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "task", Required: true},
			&cli.StringFlag{Name: "rater", Required: true},
			&cli.UintFlag{Name: "stars", Required: true},
			&cli.BoolFlag{Name: "creator", Usage: "rate the creator instead of the worker"},
		},
		Action: func(c *cli.Context) error {
			endpoint := "rate-worker"
			if c.Bool("creator") {
				endpoint = "rate-creator"
			}
			path := fmt.Sprintf("/api/tasks/%d/%s", c.Uint64("task"), endpoint)
			return callAPI(http.MethodPost, path, map[string]interface{}{
				"rater": c.String("rater"),
				"stars": c.Uint("stars"),
			})
		},
	}
}

func ratingCommand() *cli.Command {
	return &cli.Command{
		Name:  "rating",
		Usage: "show an account's rating aggregate",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "account", Required: true},
		},
		Action: func(c *cli.Context) error {
			return callAPI(http.MethodGet, "/api/ratings/"+c.String("account"), nil)
		},
	}
}
