package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"uniLeaderboard/internal/domain/model"
)

// DemoTraderStats returns the canned trader population served in demo mode,
// in a fixed order so demo output is reproducible.
func DemoTraderStats() []*model.TraderStats {
	demoTraders := []struct {
		address         string
		buys, sells     uint32
		buyVol, sellVol string
		buyUSD, sellUSD string
	}{
		{"0x1234567890123456789012345678901234567890", 45, 32, "1234.5678", "987.1234", "125000.50", "98000.25"},
		{"0x2345678901234567890123456789012345678901", 23, 41, "567.8901", "789.2345", "87500.75", "95000.00"},
		{"0x3456789012345678901234567890123456789012", 67, 28, "2345.6789", "456.7890", "156000.25", "45000.80"},
		{"0x4567890123456789012345678901234567890123", 12, 18, "345.6789", "234.5678", "34500.00", "28900.50"},
		{"0x5678901234567890123456789012345678901234", 89, 76, "3456.7890", "2345.6789", "245000.75", "198000.25"},
		{"0x6789012345678901234567890123456789012345", 34, 56, "1234.5678", "1567.8901", "89000.50", "112000.75"},
		{"0x7890123456789012345678901234567890123456", 78, 43, "2789.0123", "1234.5678", "189000.25", "87500.50"},
		{"0x8901234567890123456789012345678901234567", 25, 67, "567.8901", "1890.1234", "56000.75", "145000.25"},
	}

	stats := make([]*model.TraderStats, 0, len(demoTraders))
	for _, t := range demoTraders {
		s := model.NewTraderStats(t.address)
		s.TotalBuys = t.buys
		s.TotalSells = t.sells
		s.TotalBuyVolumeToken = decimal.RequireFromString(t.buyVol)
		s.TotalSellVolumeToken = decimal.RequireFromString(t.sellVol)
		s.TotalBuyVolumeUSD = decimal.RequireFromString(t.buyUSD)
		s.TotalSellVolumeUSD = decimal.RequireFromString(t.sellUSD)
		stats = append(stats, s)
	}
	return stats
}

// SwapGenerator produces synthetic swap records for load tests and fixtures.
type SwapGenerator struct {
	token string
	other string
	block uint64
}

// NewSwapGenerator creates a generator for swaps against the given target
// token, paired with a fixed counter-token.
func NewSwapGenerator(targetToken string) *SwapGenerator {
	return &SwapGenerator{
		token: targetToken,
		other: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
		block: 18_400_000,
	}
}

// GenerateSwaps creates count synthetic swaps. Directions alternate and
// amounts grow with the index so aggregation results stay deterministic
// apart from the generated IDs.
func (g *SwapGenerator) GenerateSwaps(count int) []model.Swap {
	senders := []string{
		"0xaaa0000000000000000000000000000000000001",
		"0xaaa0000000000000000000000000000000000002",
		"0xaaa0000000000000000000000000000000000003",
		"0xaaa0000000000000000000000000000000000004",
	}

	swaps := make([]model.Swap, count)
	for i := 0; i < count; i++ {
		amount := fmt.Sprintf("%d.5", 1+i%10)
		if i%2 == 0 {
			amount = "-" + amount
		}
		g.block++
		swaps[i] = model.Swap{
			ID:        uuid.New().String(),
			Timestamp: strconv.FormatInt(time.Now().Unix(), 10),
			Sender:    senders[i%len(senders)],
			Recipient: senders[(i+1)%len(senders)],
			Amount0:   amount,
			Amount1:   "0.1",
			AmountUSD: fmt.Sprintf("%d.00", 100+i*10),
			Pool: model.Pool{
				ID:     "0xpool000000000000000000000000000000000001",
				Token0: model.Token{ID: g.token, Symbol: "TGT", Name: "Target", Decimals: "18"},
				Token1: model.Token{ID: g.other, Symbol: "WETH", Name: "Wrapped Ether", Decimals: "18"},
			},
			Transaction: model.Transaction{BlockNumber: strconv.FormatUint(g.block, 10)},
		}
	}
	return swaps
}
