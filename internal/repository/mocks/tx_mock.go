package mocks

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// TxMock satisfies pgx.Tx and database.TxBeginner for service tests.
// Repository calls are mocked separately, so none of the SQL surface is
// ever exercised; the transaction methods just track lifecycle calls.
type TxMock struct {
	Commits   int
	Rollbacks int
}

func NewTxMock() *TxMock {
	return &TxMock{}
}

func (t *TxMock) Begin(ctx context.Context) (pgx.Tx, error) {
	return t, nil
}

func (t *TxMock) Commit(ctx context.Context) error {
	t.Commits++
	return nil
}

func (t *TxMock) Rollback(ctx context.Context) error {
	t.Rollbacks++
	return nil
}

func (t *TxMock) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *TxMock) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}

func (t *TxMock) LargeObjects() pgx.LargeObjects {
	return pgx.LargeObjects{}
}

func (t *TxMock) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *TxMock) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *TxMock) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *TxMock) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (t *TxMock) Conn() *pgx.Conn {
	return nil
}
