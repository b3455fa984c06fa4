package useCases

import (
	"context"
	"net/http"

	"uniLeaderboard/internal/domain/model"
)

// SwapSource retrieves the complete swap history relevant to a token from an
// external indexed data source. A failed page aborts the whole fetch; callers
// never see partial results.
type SwapSource interface {
	FetchAllSwaps(ctx context.Context, network, tokenAddress string, startBlock, endBlock *uint64) ([]model.Swap, error)
}

// LeaderboardService runs the full pipeline for one query: validate, fetch,
// classify, aggregate, and materialize a leaderboard document.
type LeaderboardService interface {
	BuildLeaderboard(ctx context.Context, q model.LeaderboardQuery) (*model.Leaderboard, error)
}

// SwapPublisher pushes classified swap batches to downstream consumers.
type SwapPublisher interface {
	PublishSwaps(ctx context.Context, token string, swaps []model.Swap) error
}

// Broadcaster defines an interface for pushing leaderboard updates to
// WebSocket/API layers.
type Broadcaster interface {
	BroadcastLeaderboard(lb *model.Leaderboard)
	Handler() func(http.ResponseWriter, *http.Request)
}
