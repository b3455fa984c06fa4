package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"uniLeaderboard/internal/domain/model"
	"uniLeaderboard/internal/domain/repository"
)

// ClickHouseRepository implements the SwapArchive interface using ClickHouse
// as the backend database. Fetched swap records are kept for historical
// analysis; amounts are stored as their original decimal strings so no
// precision is lost at rest.
type ClickHouseRepository struct {
	conn driver.Conn
}

type ClickHouseConfig struct {
	Addr     string
	Username string
	Password string
	Timeout  int
}

func NewClickHouseRepository(cfg ClickHouseConfig) (*ClickHouseRepository, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: "default",
			Username: cfg.Username,
			Password: cfg.Password,
		},
		DialTimeout: time.Duration(cfg.Timeout) * time.Second,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, err
	}

	// Check the connection
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	// Ensure tables exist
	if err := createTablesIfNotExist(conn); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &ClickHouseRepository{conn: conn}, nil
}

// Ensure ClickHouseRepository implements the SwapArchive interface
var _ repository.SwapArchive = (*ClickHouseRepository)(nil)

func createTablesIfNotExist(conn driver.Conn) error {
	return conn.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS swap_records (
			swap_id String,
			network String,
			token String,
			pool String,
			token0 String,
			token1 String,
			sender String,
			recipient String,
			amount0 String,
			amount1 String,
			amount_usd String,
			block_number UInt64,
			ts UInt64,
			fetched_at DateTime DEFAULT now()
		) ENGINE = MergeTree()
		ORDER BY (token, block_number)
	`)
}

// SaveSwaps batch-inserts the swap records of one leaderboard run.
func (r *ClickHouseRepository) SaveSwaps(ctx context.Context, network, token string, swaps []model.Swap) error {
	batch, err := r.conn.PrepareBatch(ctx, `
		INSERT INTO swap_records (
			swap_id, network, token, pool, token0, token1,
			sender, recipient, amount0, amount1, amount_usd, block_number, ts
		)
	`)
	if err != nil {
		return fmt.Errorf("preparing swap batch: %w", err)
	}

	for _, s := range swaps {
		block, _ := strconv.ParseUint(s.Transaction.BlockNumber, 10, 64)
		ts, _ := strconv.ParseUint(s.Timestamp, 10, 64)
		if err := batch.Append(
			s.ID,
			network,
			token,
			s.Pool.ID,
			s.Pool.Token0.ID,
			s.Pool.Token1.ID,
			s.Sender,
			s.Recipient,
			s.Amount0,
			s.Amount1,
			s.AmountUSD,
			block,
			ts,
		); err != nil {
			return fmt.Errorf("appending swap %s: %w", s.ID, err)
		}
	}

	return batch.Send()
}

// GetSwapsSince retrieves archived swaps for a token from the given block
// onward, oldest first. Only the fields needed for re-aggregation are
// reconstructed.
func (r *ClickHouseRepository) GetSwapsSince(ctx context.Context, token string, sinceBlock uint64) ([]model.Swap, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT swap_id, pool, token0, token1, sender, recipient,
		       amount0, amount1, amount_usd, block_number, ts
		FROM swap_records
		WHERE token = ? AND block_number >= ?
		ORDER BY block_number
	`, token, sinceBlock)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var swaps []model.Swap
	for rows.Next() {
		var (
			s         model.Swap
			block, ts uint64
		)
		if err := rows.Scan(
			&s.ID,
			&s.Pool.ID,
			&s.Pool.Token0.ID,
			&s.Pool.Token1.ID,
			&s.Sender,
			&s.Recipient,
			&s.Amount0,
			&s.Amount1,
			&s.AmountUSD,
			&block,
			&ts,
		); err != nil {
			return nil, err
		}
		s.Transaction.BlockNumber = strconv.FormatUint(block, 10)
		s.Timestamp = strconv.FormatUint(ts, 10)
		swaps = append(swaps, s)
	}

	return swaps, rows.Err()
}

func (r *ClickHouseRepository) Close() error {
	return r.conn.Close()
}
