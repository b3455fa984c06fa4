package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"uniLeaderboard/config"
	"uniLeaderboard/internal/domain/model"
	"uniLeaderboard/internal/domain/repository"
	"uniLeaderboard/internal/domain/useCases"
	"uniLeaderboard/pkg/utils"
)

// Input validation errors. These are rejected before any remote call and are
// never retried.
var (
	ErrInvalidTokenAddress = errors.New("invalid token address format, expected 0x-prefixed 40-char hex string")
	ErrInvalidLimit        = errors.New("limit must be positive")
	ErrInvalidBlockRange   = errors.New("end block precedes start block")
)

var tokenAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// ValidTokenAddress reports whether s is a 0x-prefixed 40-character hex
// address.
func ValidTokenAddress(s string) bool {
	return tokenAddressPattern.MatchString(s)
}

// IsInvalidInput reports whether err stems from a malformed query rather
// than a failed fetch.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidTokenAddress) ||
		errors.Is(err, ErrInvalidLimit) ||
		errors.Is(err, ErrInvalidBlockRange) ||
		errors.Is(err, config.ErrUnknownNetwork)
}

// CachedLeaderboardService runs the fetch-then-aggregate pipeline with a
// transparent document cache in front of it. Each call owns its own
// accumulators, so concurrent runs never share mutable state. Cache, archive,
// publisher, and broadcaster are all optional; a nil dependency is skipped.
type CachedLeaderboardService struct {
	source      useCases.SwapSource
	cache       repository.LeaderboardCache
	archive     repository.SwapArchive
	publisher   useCases.SwapPublisher
	broadcaster useCases.Broadcaster
}

// NewCachedLeaderboardService wires the pipeline. Only source is required.
func NewCachedLeaderboardService(
	source useCases.SwapSource,
	cache repository.LeaderboardCache,
	archive repository.SwapArchive,
	publisher useCases.SwapPublisher,
	broadcaster useCases.Broadcaster,
) *CachedLeaderboardService {
	return &CachedLeaderboardService{
		source:      source,
		cache:       cache,
		archive:     archive,
		publisher:   publisher,
		broadcaster: broadcaster,
	}
}

var _ useCases.LeaderboardService = (*CachedLeaderboardService)(nil)

// BuildLeaderboard validates the query, fetches the full swap history, and
// aggregates it into a leaderboard document. A fetch failure aborts the whole
// run: no partial document is ever produced. Zero swaps is not an error and
// yields an empty-traders, all-zero-summary document.
func (s *CachedLeaderboardService) BuildLeaderboard(ctx context.Context, q model.LeaderboardQuery) (*model.Leaderboard, error) {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 {
		return nil, ErrInvalidLimit
	}

	// Demo mode bypasses the pipeline entirely.
	if q.Demo {
		return BuildLeaderboard(utils.DemoTraderStats(), limit), nil
	}

	token := strings.ToLower(q.TokenAddress)
	if !ValidTokenAddress(token) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTokenAddress, q.TokenAddress)
	}
	if q.StartBlock != nil && q.EndBlock != nil && *q.EndBlock < *q.StartBlock {
		return nil, ErrInvalidBlockRange
	}

	network := q.Network
	if network == "" {
		network = config.DefaultNetwork
	}
	netCfg, err := config.NetworkByName(network)
	if err != nil {
		return nil, err
	}

	// Only default-shaped queries hit the cache: the cache key carries no
	// block range or limit, so anything else would serve the wrong document.
	cacheable := q.StartBlock == nil && q.EndBlock == nil && limit == DefaultLimit
	if cacheable && s.cache != nil {
		cached, err := s.cache.GetLeaderboard(ctx, network, token)
		if err != nil {
			log.Printf("leaderboard cache read for %s_%s failed: %v", network, token, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	// Queries without an explicit start block cover roughly the last month
	// of the queried chain.
	startBlock := q.StartBlock
	if startBlock == nil {
		sb := netCfg.DefaultStartBlock()
		startBlock = &sb
	}

	swaps, err := s.source.FetchAllSwaps(ctx, network, token, startBlock, q.EndBlock)
	if err != nil {
		return nil, fmt.Errorf("fetching swaps for %s on %s: %w", token, network, err)
	}

	stats := AggregateTraderStats(swaps, token)
	lb := BuildLeaderboard(stats, limit)

	if cacheable && s.cache != nil {
		if err := s.cache.SaveLeaderboard(ctx, network, token, lb); err != nil {
			log.Printf("leaderboard cache write for %s_%s failed: %v", network, token, err)
		}
	}

	if len(swaps) > 0 {
		s.distribute(ctx, network, token, swaps, lb)
	}

	return lb, nil
}

// distribute pushes the run's results to the optional side channels. All of
// it is best effort: archive, feed, and broadcast failures are logged and
// never fail the run.
func (s *CachedLeaderboardService) distribute(ctx context.Context, network, token string, swaps []model.Swap, lb *model.Leaderboard) {
	if s.archive != nil {
		if err := s.archive.SaveSwaps(ctx, network, token, swaps); err != nil {
			log.Printf("archiving %d swaps for %s failed: %v", len(swaps), token, err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishSwaps(ctx, token, swaps); err != nil {
			log.Printf("publishing %d swaps for %s failed: %v", len(swaps), token, err)
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastLeaderboard(lb)
	}
}
