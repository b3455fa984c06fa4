// Package repository defines the storage interfaces used by domain services.
// Following the dependency inversion principle, domain logic depends on these
// interfaces and infrastructure packages provide the concrete implementations.
package repository

import (
	"context"

	"uniLeaderboard/internal/domain/model"
)

// LeaderboardCache is a key-value front for computed leaderboard documents,
// keyed by network and token address. Implementations should prioritize
// speed over durability; a miss is (nil, nil), never an error.
type LeaderboardCache interface {
	// SaveLeaderboard stores a computed document for the network/token pair.
	SaveLeaderboard(ctx context.Context, network, token string, lb *model.Leaderboard) error

	// GetLeaderboard retrieves a previously stored document, or nil on a miss.
	GetLeaderboard(ctx context.Context, network, token string) (*model.Leaderboard, error)
}

// SwapArchive stores raw swap records fetched during live runs for
// historical analysis. Implementations should prioritize durability;
// archive writes never gate a leaderboard response.
type SwapArchive interface {
	// SaveSwaps persists a batch of swap records retrieved for a token.
	SaveSwaps(ctx context.Context, network, token string, swaps []model.Swap) error

	// GetSwapsSince retrieves archived swaps for a token from the given
	// block number onward.
	GetSwapsSince(ctx context.Context, token string, sinceBlock uint64) ([]model.Swap, error)
}
