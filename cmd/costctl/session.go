package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cloudtrim/cloudtrim/internal/dashboard"
	"github.com/cloudtrim/cloudtrim/internal/handler"
	"github.com/cloudtrim/cloudtrim/internal/model"
)

type recommendationAPI interface {
	Recommendations(ctx context.Context) ([]model.Recommendation, error)
	Remediate(ctx context.Context, id string) (handler.Ack, error)
}

// tickerStep is the interval between frames of the savings counter.
const tickerStep = 250 * time.Millisecond

// session is one dashboard run: a board seeded from the API list and the
// sample cards, plus the navigation state. State lives only as long as the
// session.
type session struct {
	api     recommendationAPI
	out     io.Writer
	recs    []model.Recommendation
	samples []dashboard.CardRecommendation
	board   *dashboard.Board
	view    *dashboard.View

	tickerDuration time.Duration
	wait           func(ctx context.Context, d time.Duration) error
}

func newSession(ctx context.Context, api recommendationAPI, out io.Writer) (*session, error) {
	recs, err := api.Recommendations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load recommendations: %w", err)
	}

	samples := dashboard.SampleRecommendations()
	ids := make([]string, 0, len(recs)+len(samples))
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	for _, c := range samples {
		ids = append(ids, c.ID)
	}

	return &session{
		api:            api,
		out:            out,
		recs:           recs,
		samples:        samples,
		board:          dashboard.NewBoard(ids...),
		view:           dashboard.NewView(),
		tickerDuration: dashboard.DefaultTickerDuration,
		wait:           sleep,
	}, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// apply flips the local status first and only then tells the server.
// A failed remediate call is reported but does not undo the local change.
func (s *session) apply(ctx context.Context, id string) error {
	if err := s.board.Apply(id); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s: applied\n", id)

	if _, err := s.api.Remediate(ctx, id); err != nil {
		fmt.Fprintf(s.out, "warning: remediation request for %s failed: %v\n", id, err)
		return nil
	}
	fmt.Fprintf(s.out, "%s: remediation queued\n", id)
	return nil
}

func (s *session) rollback(id string) error {
	if err := s.board.Rollback(id); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s: rolled back\n", id)
	return nil
}

func (s *session) list() {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS")
	for _, r := range s.recs {
		st, _ := s.board.Status(r.ID)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Title, st)
	}
}

func (s *session) cards() {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	for _, c := range dashboard.MetricCards(s.board) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t(%s)\n", c.Title, c.Value, c.Change, c.Trend)
	}
}

// top lists the sample cards under "Top Recommendations".
func (s *session) top() {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "ID\tTITLE\tSAVINGS/MO\tSTATUS")
	for _, c := range s.samples {
		st, _ := s.board.Status(c.ID)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Title, dashboard.FormatCurrency(c.SavingsPerMonth), st)
	}
}

// savings counts "Potential Savings" up to its target, one frame per
// tickerStep, redrawing the same line.
func (s *session) savings(ctx context.Context) error {
	target := dashboard.PotentialSavings().InexactFloat64()
	for elapsed := time.Duration(0); ; elapsed += tickerStep {
		fmt.Fprintf(s.out, "\rPotential Savings: %s", dashboard.TickerText(target, elapsed, s.tickerDuration))
		if dashboard.TickerDone(elapsed, s.tickerDuration) {
			break
		}
		if err := s.wait(ctx, tickerStep); err != nil {
			fmt.Fprintln(s.out)
			return err
		}
	}
	fmt.Fprintln(s.out)
	return nil
}

const sessionHelp = `commands:
  list                 recommendations and their status
  top                  top recommendation cards with savings
  cards                headline metrics
  savings              animate the potential savings counter
  apply <id>           apply a pending recommendation
  rollback <id>        roll back an applied recommendation
  tab dashboard|settings
  modal open|close
  faq <n>              expand or collapse FAQ entry n
  menu                 toggle the mobile menu
  quit`

// loop reads one command per line until EOF or quit.
func (s *session) loop(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(s.out, "[%s]> ", s.view.Tab())
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if done := s.exec(ctx, strings.Fields(scanner.Text())); done {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (s *session) exec(ctx context.Context, args []string) (done bool) {
	if len(args) == 0 {
		return false
	}

	var err error
	switch cmd, rest := args[0], args[1:]; {
	case cmd == "quit" || cmd == "exit":
		return true
	case cmd == "help":
		fmt.Fprintln(s.out, sessionHelp)
	case cmd == "list":
		s.list()
	case cmd == "top":
		s.top()
	case cmd == "cards":
		s.cards()
	case cmd == "savings":
		err = s.savings(ctx)
	case cmd == "apply" && len(rest) == 1:
		err = s.apply(ctx, rest[0])
	case cmd == "rollback" && len(rest) == 1:
		err = s.rollback(rest[0])
	case cmd == "tab" && len(rest) == 1:
		err = s.view.SetTab(dashboard.Tab(rest[0]))
	case cmd == "modal" && len(rest) == 1 && rest[0] == "open":
		s.view.OpenModal()
		fmt.Fprintln(s.out, "modal: open")
	case cmd == "modal" && len(rest) == 1 && rest[0] == "close":
		s.view.CloseModal()
		fmt.Fprintln(s.out, "modal: closed")
	case cmd == "faq" && len(rest) == 1:
		var n int
		if n, err = strconv.Atoi(rest[0]); err == nil {
			s.view.ToggleFAQ(n)
			if open := s.view.ExpandedFAQ(); open == dashboard.NoFAQ {
				fmt.Fprintln(s.out, "faq: collapsed")
			} else {
				fmt.Fprintf(s.out, "faq: %d expanded\n", open)
			}
		}
	case cmd == "menu":
		s.view.ToggleMobileMenu()
		if s.view.MobileMenuOpen() {
			fmt.Fprintln(s.out, "menu: open")
		} else {
			fmt.Fprintln(s.out, "menu: closed")
		}
	default:
		err = fmt.Errorf("unknown command %q, try 'help'", strings.Join(args, " "))
	}

	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	return false
}
