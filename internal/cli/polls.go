package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
)

type PollListCmd struct {
	Organizer string `help:"Only list polls owned by this organizer id."`
}

func (c *PollListCmd) Run(ctx *Context) error {
	background := context.Background()

	var polls []*domain.Poll
	if c.Organizer != "" {
		var err error
		if polls, err = ctx.App.Polls.ListForOrganizer(background, c.Organizer); err != nil {
			return err
		}
	} else {
		for poll, err := range ctx.App.PollRepo.List(background) {
			if err != nil {
				return err
			}
			polls = append(polls, poll)
		}
	}

	rows := make([][]string, 0, len(polls))
	for _, p := range polls {
		rows = append(rows, []string{
			p.ID, p.Title, p.OrganizerID, pollState(p), strconv.Itoa(len(p.Slots)), p.UpdatedAt.Format(time.RFC3339),
		})
	}
	if err := ctx.printTable([]string{"ID", "TITLE", "ORGANIZER", "STATE", "SLOTS", "UPDATED"}, rows); err != nil {
		return err
	}
	if skipped := ctx.App.PollRepo.SkippedRecords(); skipped > 0 {
		_, err := fmt.Fprintf(ctx.Out, "%d unreadable poll records skipped\n", skipped)
		return err
	}
	return nil
}

func pollState(p *domain.Poll) string {
	switch {
	case p.IsClosed():
		return "closed"
	case p.IsActive():
		return "active"
	default:
		return "paused"
	}
}

type PollResultsCmd struct {
	ID   string `arg:"" help:"Poll id."`
	JSON bool   `help:"Print the results as JSON."`
}

func (c *PollResultsCmd) Run(ctx *Context) error {
	results, err := ctx.App.Polls.Results(context.Background(), c.ID)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.printJSON(results)
	}

	rows := make([][]string, 0, len(results.Slots))
	for _, s := range results.Slots {
		marker := ""
		if results.Winner != nil && results.Winner.Slot.ID == s.Slot.ID {
			marker = "*"
			if results.Winner.IsManual {
				marker = "* (manual)"
			}
		}
		rows = append(rows, []string{
			s.Slot.Date,
			s.Slot.StartTime + "-" + s.Slot.EndTime,
			strconv.Itoa(s.Stats.Yes),
			strconv.Itoa(s.Stats.Maybe),
			strconv.Itoa(s.Stats.No),
			strconv.Itoa(s.Score),
			marker,
		})
	}
	return ctx.printTable([]string{"DATE", "TIME", "YES", "IF NEED BE", "NO", "SCORE", "WINNER"}, rows)
}

type SummarizeCmd struct {
	JSON    bool          `help:"Print the summary as JSON."`
	Timeout time.Duration `help:"Abort the job after this long." default:"5m"`
}

func (c *SummarizeCmd) Run(ctx *Context) error {
	background, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	summaries, err := ctx.App.Summary.SummarizeWinners(background)
	if err != nil {
		return fmt.Errorf("failed to summarize winners: %w", err)
	}
	if c.JSON {
		return ctx.printJSON(summaries)
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		winner, score := "-", "-"
		if s.Winner != nil {
			winner = s.Winner.Slot.Date + " " + s.Winner.Slot.StartTime
			score = strconv.Itoa(s.Winner.Score)
		}
		state := "open"
		if s.Closed {
			state = "closed"
		}
		rows = append(rows, []string{s.PollID, s.Title, state, winner, score})
	}
	return ctx.printTable([]string{"POLL", "TITLE", "STATE", "WINNER", "SCORE"}, rows)
}
