package model

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrTokenNotInPool is returned when a swap's pool contains the target token
// on neither side.
var ErrTokenNotInPool = errors.New("target token not found in swap pool")

// Token is one side of a Uniswap v3 pool, as indexed by the subgraph.
type Token struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals string `json:"decimals"`
}

// Pool identifies the pair a swap was executed against.
type Pool struct {
	ID        string `json:"id"`
	Token0    Token  `json:"token0"`
	Token1    Token  `json:"token1"`
	Tick      string `json:"tick"`
	SqrtPrice string `json:"sqrtPrice"`
}

// Transaction carries the on-chain context of a swap.
type Transaction struct {
	BlockNumber string `json:"blockNumber"`
}

// Swap is a single trade event as returned by the subgraph. Numeric fields
// stay strings until classification so no precision is lost in transit.
type Swap struct {
	ID          string      `json:"id"`
	Timestamp   string      `json:"timestamp"`
	Sender      string      `json:"sender"`
	Recipient   string      `json:"recipient"`
	Amount0     string      `json:"amount0"`
	Amount1     string      `json:"amount1"`
	AmountUSD   string      `json:"amountUSD"`
	Pool        Pool        `json:"pool"`
	Transaction Transaction `json:"transaction"`
}

// InPool reports whether the target token is one side of the swap's pool.
// Addresses are compared case-insensitively.
func (s *Swap) InPool(targetToken string) bool {
	target := strings.ToLower(targetToken)
	return strings.ToLower(s.Pool.Token0.ID) == target ||
		strings.ToLower(s.Pool.Token1.ID) == target
}

// Classify determines the trade direction of the swap relative to the target
// token. A negative amount on the target side means tokens flowed into the
// pool, which the subgraph's accounting records as a buy for the sender.
// The polarity must not be inverted: every downstream consumer depends on it.
//
// Returns the direction, the absolute token amount, and the USD amount of the
// swap. The USD amount is unsigned and attributed whole to the classified side.
func (s *Swap) Classify(targetToken string) (isBuy bool, tokenAmount, usdAmount decimal.Decimal, err error) {
	target := strings.ToLower(targetToken)

	var raw string
	switch target {
	case strings.ToLower(s.Pool.Token0.ID):
		raw = s.Amount0
	case strings.ToLower(s.Pool.Token1.ID):
		raw = s.Amount1
	default:
		return false, decimal.Zero, decimal.Zero, ErrTokenNotInPool
	}

	rawAmount, err := decimal.NewFromString(raw)
	if err != nil {
		return false, decimal.Zero, decimal.Zero, err
	}
	usdAmount, err = decimal.NewFromString(s.AmountUSD)
	if err != nil {
		return false, decimal.Zero, decimal.Zero, err
	}

	return rawAmount.IsNegative(), rawAmount.Abs(), usdAmount, nil
}
