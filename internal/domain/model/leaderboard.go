package model

import "github.com/shopspring/decimal"

// TraderStats is the running accumulator for a single trader address.
// Counts and volumes only grow; an accumulator is created the first time an
// address appears in a run and lives until the run's leaderboard is built.
type TraderStats struct {
	Address              string
	TotalBuys            uint32
	TotalSells           uint32
	TotalBuyVolumeToken  decimal.Decimal
	TotalSellVolumeToken decimal.Decimal
	TotalBuyVolumeUSD    decimal.Decimal
	TotalSellVolumeUSD   decimal.Decimal
}

// NewTraderStats creates a zeroed accumulator for the given address.
func NewTraderStats(address string) *TraderStats {
	return &TraderStats{
		Address:              address,
		TotalBuyVolumeToken:  decimal.Zero,
		TotalSellVolumeToken: decimal.Zero,
		TotalBuyVolumeUSD:    decimal.Zero,
		TotalSellVolumeUSD:   decimal.Zero,
	}
}

// TotalVolumeUSD is the trader's combined buy and sell volume in USD.
func (s *TraderStats) TotalVolumeUSD() decimal.Decimal {
	return s.TotalBuyVolumeUSD.Add(s.TotalSellVolumeUSD)
}

// NetVolumeToken is buy volume minus sell volume in token units, signed.
func (s *TraderStats) NetVolumeToken() decimal.Decimal {
	return s.TotalBuyVolumeToken.Sub(s.TotalSellVolumeToken)
}

// LeaderboardQuery describes one leaderboard run.
type LeaderboardQuery struct {
	TokenAddress string
	Network      string
	StartBlock   *uint64
	EndBlock     *uint64
	Limit        int
	Demo         bool
}

// TraderEntry is the materialized, display-ready view of a trader's
// accumulator. Volume fields are fixed-precision decimal strings: token
// amounts at 4 places, USD amounts at 2.
type TraderEntry struct {
	Address              string  `json:"address"`
	TotalBuys            uint32  `json:"total_buys"`
	TotalSells           uint32  `json:"total_sells"`
	TotalBuyVolumeToken  string  `json:"total_buy_volume_token"`
	TotalSellVolumeToken string  `json:"total_sell_volume_token"`
	TotalBuyVolumeUSD    string  `json:"total_buy_volume_usd"`
	TotalSellVolumeUSD   string  `json:"total_sell_volume_usd"`
	TotalVolumeUSD       string  `json:"total_volume_usd"`
	NetVolumeToken       string  `json:"net_volume_token"`
	BuySellRatio         float64 `json:"buy_sell_ratio"`
}

// SummaryStats covers the returned trader slice only, not the full
// population behind it.
type SummaryStats struct {
	TotalTraders           int    `json:"total_traders"`
	TotalVolumeUSD         string `json:"total_volume_usd"`
	TotalBuyTransactions   uint32 `json:"total_buy_transactions"`
	TotalSellTransactions  uint32 `json:"total_sell_transactions"`
	AverageVolumePerTrader string `json:"average_volume_per_trader"`
}

// Leaderboard is the final document produced by a run.
type Leaderboard struct {
	Traders []TraderEntry `json:"traders"`
	Summary SummaryStats  `json:"summary"`
}
