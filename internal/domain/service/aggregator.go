// Package service implements the domain services behind the leaderboard
// pipeline. It depends only on domain models and repository interfaces.
package service

import (
	"log"
	"sort"

	"github.com/shopspring/decimal"

	"uniLeaderboard/internal/domain/model"
)

// DefaultLimit caps the leaderboard size when the caller does not choose one.
const DefaultLimit = 20

// AggregateTraderStats classifies every swap relative to the target token and
// folds it into a per-sender accumulator. Swaps whose pool does not contain
// the target token are skipped; the fetcher should not emit those, but the
// aggregator re-validates. The returned slice preserves first-seen address
// order, which later serves as the sort tie-break.
func AggregateTraderStats(swaps []model.Swap, targetToken string) []*model.TraderStats {
	byAddress := make(map[string]*model.TraderStats)
	ordered := make([]*model.TraderStats, 0)

	for _, swap := range swaps {
		isBuy, tokenAmount, usdAmount, err := swap.Classify(targetToken)
		if err != nil {
			log.Printf("skipping swap %s: %v", swap.ID, err)
			continue
		}

		stats, ok := byAddress[swap.Sender]
		if !ok {
			stats = model.NewTraderStats(swap.Sender)
			byAddress[swap.Sender] = stats
			ordered = append(ordered, stats)
		}

		if isBuy {
			stats.TotalBuys++
			stats.TotalBuyVolumeToken = stats.TotalBuyVolumeToken.Add(tokenAmount)
			stats.TotalBuyVolumeUSD = stats.TotalBuyVolumeUSD.Add(usdAmount)
		} else {
			stats.TotalSells++
			stats.TotalSellVolumeToken = stats.TotalSellVolumeToken.Add(tokenAmount)
			stats.TotalSellVolumeUSD = stats.TotalSellVolumeUSD.Add(usdAmount)
		}
	}

	return ordered
}

// BuildLeaderboard sorts the accumulated stats by total USD volume
// (descending, first-seen order breaking ties), truncates to limit, and
// materializes the final document. The summary covers the truncated slice
// only: it describes the page being returned, not the full population.
func BuildLeaderboard(stats []*model.TraderStats, limit int) *model.Leaderboard {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := make([]*model.TraderStats, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalVolumeUSD().Cmp(ranked[j].TotalVolumeUSD()) > 0
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	traders := make([]model.TraderEntry, len(ranked))
	totalVolume := decimal.Zero
	var totalBuys, totalSells uint32
	for i, s := range ranked {
		traders[i] = materializeEntry(s)
		totalVolume = totalVolume.Add(s.TotalVolumeUSD())
		totalBuys += s.TotalBuys
		totalSells += s.TotalSells
	}

	average := "0.00"
	if len(ranked) > 0 {
		average = totalVolume.Div(decimal.NewFromInt(int64(len(ranked)))).StringFixed(2)
	}

	return &model.Leaderboard{
		Traders: traders,
		Summary: model.SummaryStats{
			TotalTraders:           len(ranked),
			TotalVolumeUSD:         totalVolume.StringFixed(2),
			TotalBuyTransactions:   totalBuys,
			TotalSellTransactions:  totalSells,
			AverageVolumePerTrader: average,
		},
	}
}

// materializeEntry formats an accumulator for output. Formatting happens only
// here; intermediate sums are never rendered to strings.
func materializeEntry(s *model.TraderStats) model.TraderEntry {
	net := s.NetVolumeToken()
	netStr := net.StringFixed(4)
	if !net.IsNegative() {
		netStr = "+" + netStr
	}

	return model.TraderEntry{
		Address:              s.Address,
		TotalBuys:            s.TotalBuys,
		TotalSells:           s.TotalSells,
		TotalBuyVolumeToken:  s.TotalBuyVolumeToken.StringFixed(4),
		TotalSellVolumeToken: s.TotalSellVolumeToken.StringFixed(4),
		TotalBuyVolumeUSD:    s.TotalBuyVolumeUSD.StringFixed(2),
		TotalSellVolumeUSD:   s.TotalSellVolumeUSD.StringFixed(2),
		TotalVolumeUSD:       s.TotalVolumeUSD().StringFixed(2),
		NetVolumeToken:       netStr,
		BuySellRatio:         buySellRatio(s.TotalBuys, s.TotalSells),
	}
}

// buySellRatio treats zero sells as a ratio equal to the raw buy count,
// never as an infinity sentinel.
func buySellRatio(buys, sells uint32) float64 {
	switch {
	case sells > 0:
		return float64(buys) / float64(sells)
	case buys > 0:
		return float64(buys)
	default:
		return 0
	}
}
