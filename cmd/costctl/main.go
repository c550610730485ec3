// costctl is a terminal client for the cloudtrim API.
//
// Usage:
//
//	costctl health
//	costctl status
//	costctl costs [--history]
//	costctl recommendations
//	costctl apply <id>
//	costctl checkout
//	costctl dashboard
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/cloudtrim/cloudtrim/internal/client"
	"github.com/cloudtrim/cloudtrim/internal/handler"
	"github.com/cloudtrim/cloudtrim/internal/model"
	"github.com/cloudtrim/cloudtrim/internal/money"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "costctl",
		Usage:     "Inspect costs and work through recommendations",
		Version:   version,
		Reader:    in,
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   "http://localhost:3001",
				Usage:   "Base URL of the cloudtrim API",
				EnvVars: []string{"COSTCTL_API_URL"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: client.DefaultTimeout,
				Usage: "Per-request timeout",
			},
		},
		Commands: []*cli.Command{
			healthCommand(),
			statusCommand(),
			costsCommand(),
			recommendationsCommand(),
			applyCommand(),
			checkoutCommand(),
			dashboardCommand(),
		},
	}
}

func apiClient(c *cli.Context) (*client.Client, error) {
	timeout := c.Duration("timeout")
	if timeout <= 0 {
		timeout = client.DefaultTimeout
	}
	return client.New(c.String("api-url"), client.WithHTTPClient(&http.Client{Timeout: timeout}))
}

func healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check that the API is up",
		Action: func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			h, err := api.Health(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%s (%s)\n", h.Status, h.Timestamp)
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the account, cloud connection and monthly spend",
		Action: func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}

			var (
				user    model.User
				aws     handler.AWSStatusResponse
				summary model.CostSummary
			)
			g, ctx := errgroup.WithContext(c.Context)
			g.Go(func() (err error) {
				user, err = api.Me(ctx)
				return err
			})
			g.Go(func() (err error) {
				aws, err = api.AWSStatus(ctx)
				return err
			})
			g.Go(func() (err error) {
				summary, err = api.Costs(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			defer tw.Flush()
			fmt.Fprintf(tw, "User\t%s (%s)\n", user.Email, user.Tier)
			fmt.Fprintf(tw, "AWS\t%s\n", connection(aws))
			fmt.Fprintf(tw, "Monthly\t$%s\n", summary.Monthly)
			return nil
		},
	}
}

func connection(st handler.AWSStatusResponse) string {
	if !st.Connected {
		return "not connected"
	}
	return "connected, last sync " + st.LastSync
}

func costsCommand() *cli.Command {
	return &cli.Command{
		Name:  "costs",
		Usage: "Show the monthly cost summary",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "history",
				Usage: "Show the 90-day daily history instead",
			},
		},
		Action: func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			defer tw.Flush()

			if c.Bool("history") {
				points, err := api.CostHistory(c.Context)
				if err != nil {
					return err
				}
				fmt.Fprintln(tw, "DATE\tCOST")
				for _, p := range points {
					fmt.Fprintf(tw, "%s\t$%s\n", p.Date, money.Format(decimal.NewFromFloat(p.Cost)))
				}
				return nil
			}

			sum, err := api.Costs(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "Monthly\t$%s\n", sum.Monthly)
			fmt.Fprintf(tw, "Waste\t$%s\n", sum.Waste)
			fmt.Fprintf(tw, "Savings\t%d%%\n", sum.SavingsPercent)
			for _, svc := range sortedKeys(sum.ByService) {
				fmt.Fprintf(tw, "  %s\t$%s\n", svc, money.Format(decimal.NewFromFloat(sum.ByService[svc])))
			}
			return nil
		},
	}
}

func recommendationsCommand() *cli.Command {
	return &cli.Command{
		Name:    "recommendations",
		Aliases: []string{"recs"},
		Usage:   "List cost-saving recommendations",
		Action: func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			recs, err := api.Recommendations(c.Context)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			defer tw.Flush()
			fmt.Fprintln(tw, "ID\tSERVICE\tTITLE\tSAVINGS\tCOMPLEXITY")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t$%s (%d%%)\t%s\n",
					r.ID, r.Service, r.Title, money.Format(decimal.NewFromFloat(r.Savings)), r.SavingsPercent, r.Complexity)
			}
			return nil
		},
	}
}

func applyCommand() *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Usage:     "Apply a recommendation and queue its remediation",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("apply takes exactly one recommendation id")
			}
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			s, err := newSession(c.Context, api, c.App.Writer)
			if err != nil {
				return err
			}
			return s.apply(c.Context, c.Args().First())
		},
	}
}

func checkoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "Start a Pro checkout session",
		Action: func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			session, err := api.Checkout(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "session %s\n%s\n", session.SessionID, session.URL)
			return nil
		},
	}
}

func dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Interactive dashboard; type 'help' for commands",
		Action: func(c *cli.Context) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			s, err := newSession(c.Context, api, c.App.Writer)
			if err != nil {
				return err
			}
			return s.loop(c.Context, c.App.Reader)
		},
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
