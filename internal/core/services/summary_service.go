package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type summaryService struct {
	pollRepo ports.PollRepository
}

func NewSummaryService(pollRepo ports.PollRepository) ports.SummaryService {
	return &summaryService{
		pollRepo: pollRepo,
	}
}

// SummarizeWinners resolves the winner of every stored poll. Polls are scored
// concurrently; the result keeps the repository's listing order.
func (s *summaryService) SummarizeWinners(ctx context.Context) ([]domain.WinnerSummary, error) {
	var polls []*domain.Poll
	for poll, err := range s.pollRepo.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to fetch all polls: %w", err)
		}
		polls = append(polls, poll)
	}

	summaries := make([]domain.WinnerSummary, len(polls))
	var wg sync.WaitGroup
	for i, poll := range polls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			summary := domain.WinnerSummary{
				PollID:      poll.ID,
				Title:       poll.Title,
				OrganizerID: poll.OrganizerID,
				Closed:      poll.IsClosed(),
			}
			if w, ok := ResolveWinner(poll); ok {
				summary.Winner = &w
			}
			summaries[i] = summary
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}
