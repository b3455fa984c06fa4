package dto

import (
	"uniLeaderboard/internal/domain/model"
)

// LeaderboardRequest is the API request shape for a leaderboard run.
type LeaderboardRequest struct {
	TokenAddress string  `json:"token_address"`
	StartBlock   *uint64 `json:"start_block,omitempty"`
	EndBlock     *uint64 `json:"end_block,omitempty"`
	Limit        int     `json:"limit,omitempty"`
	Demo         bool    `json:"demo,omitempty"`
	Network      string  `json:"network,omitempty"`
}

// ToQuery converts the request to a domain query.
func (r *LeaderboardRequest) ToQuery() model.LeaderboardQuery {
	return model.LeaderboardQuery{
		TokenAddress: r.TokenAddress,
		Network:      r.Network,
		StartBlock:   r.StartBlock,
		EndBlock:     r.EndBlock,
		Limit:        r.Limit,
		Demo:         r.Demo,
	}
}

// SwapRecordDTO is the flattened, classified swap shape published on the
// swap feed for downstream consumers.
type SwapRecordDTO struct {
	ID          string `json:"id"`
	Token       string `json:"token"`
	Sender      string `json:"sender"`
	Side        string `json:"side"`
	TokenAmount string `json:"token_amount"`
	AmountUSD   string `json:"amount_usd"`
	BlockNumber string `json:"block_number"`
	Timestamp   string `json:"timestamp"`
}

// SwapRecordFromModel classifies a swap against the target token and
// flattens it for the feed.
func SwapRecordFromModel(s *model.Swap, targetToken string) (*SwapRecordDTO, error) {
	isBuy, tokenAmount, usdAmount, err := s.Classify(targetToken)
	if err != nil {
		return nil, err
	}

	side := "sell"
	if isBuy {
		side = "buy"
	}

	return &SwapRecordDTO{
		ID:          s.ID,
		Token:       targetToken,
		Sender:      s.Sender,
		Side:        side,
		TokenAmount: tokenAmount.String(),
		AmountUSD:   usdAmount.String(),
		BlockNumber: s.Transaction.BlockNumber,
		Timestamp:   s.Timestamp,
	}, nil
}
