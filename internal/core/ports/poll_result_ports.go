package ports

import (
	"context"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
)

type SummaryService interface {
	SummarizeWinners(ctx context.Context) ([]domain.WinnerSummary, error)
}
