package testutil

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MockTxBeginner satisfies the service layer's transaction beginner. The
// returned transaction records commits and rollbacks but performs no SQL;
// repository mocks ignore the handle entirely.
type MockTxBeginner struct {
	BeginErr  error
	CommitErr error
	Last      *MockTx
}

func NewMockTxBeginner() *MockTxBeginner {
	return &MockTxBeginner{}
}

func (m *MockTxBeginner) Begin(_ context.Context) (pgx.Tx, error) {
	if m.BeginErr != nil {
		return nil, m.BeginErr
	}
	m.Last = &MockTx{commitErr: m.CommitErr}
	return m.Last, nil
}

// MockTx is a no-op pgx.Tx.
type MockTx struct {
	Committed  bool
	RolledBack bool
	commitErr  error
}

func (t *MockTx) Begin(_ context.Context) (pgx.Tx, error) {
	return nil, errors.New("nested transactions not supported")
}

func (t *MockTx) Commit(_ context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback(_ context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

func (t *MockTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not implemented")
}

func (t *MockTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults {
	return nil
}

func (t *MockTx) LargeObjects() pgx.LargeObjects {
	return pgx.LargeObjects{}
}

func (t *MockTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not implemented")
}

func (t *MockTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *MockTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (t *MockTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return nil
}

func (t *MockTx) Conn() *pgx.Conn {
	return nil
}
