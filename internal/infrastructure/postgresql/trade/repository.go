package trade

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agrihedge/hedging-worker/pkg/errors"
	"github.com/agrihedge/hedging-worker/pkg/logger"
	"github.com/agrihedge/hedging-worker/pkg/postgresql"
)

type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) *repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

var _ TradeRepository = (*repository)(nil)

// StoreBatch stores all trades of one matched batch.
func (r *repository) StoreBatch(ctx context.Context, trades []*Trade) error {
	copyCount, err := r.db.CopyFrom(ctx, pgx.Identifier{"trades"}, []string{
		"id",
		"commodity",
		"buy_order_id",
		"sell_order_id",
		"price",
		"quantity",
		"batch_id",
		"executed_at",
	}, pgx.CopyFromSlice(len(trades), func(i int) ([]any, error) {
		trade := trades[i]
		return []any{
			trade.ID,
			trade.Commodity,
			trade.BuyOrderID,
			trade.SellOrderID,
			trade.Price,
			trade.Quantity,
			trade.BatchID,
			trade.ExecutedAt,
		}, nil
	}))

	if err != nil {
		r.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "error",
			Value: err.Error(),
		})
		return errors.TracerFromError(err)
	}

	r.logger.InfoContext(ctx, "Inserted batch of trades", logger.Field{
		Key:   "copyCount",
		Value: copyCount,
	})

	return nil
}

// List lists trades.
func (r *repository) List(ctx context.Context, filter Filter) ([]*Trade, error) {
	query := `SELECT id, commodity, buy_order_id, sell_order_id, price, quantity, batch_id, executed_at FROM trades WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.Commodity != "" {
		query += fmt.Sprintf(" AND commodity = $%d", argIndex)
		args = append(args, filter.Commodity)
		argIndex++
	}

	if filter.BatchID != "" {
		query += fmt.Sprintf(" AND batch_id = $%d", argIndex)
		args = append(args, filter.BatchID)
		argIndex++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND executed_at >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND executed_at <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	query += " ORDER BY executed_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	trades := []*Trade{}
	for rows.Next() {
		trade := &Trade{}
		err := rows.Scan(
			&trade.ID,
			&trade.Commodity,
			&trade.BuyOrderID,
			&trade.SellOrderID,
			&trade.Price,
			&trade.Quantity,
			&trade.BatchID,
			&trade.ExecutedAt,
		)
		if err != nil {
			return nil, errors.TracerFromError(err)
		}
		trades = append(trades, trade)
	}

	return trades, nil
}
