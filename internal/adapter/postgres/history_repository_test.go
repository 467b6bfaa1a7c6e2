package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mocktail/internal/domain"
)

type stubRows struct {
	rows [][]any
	idx  int
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = row[i].(string)
		case *int:
			*v = row[i].(int)
		}
	}
	return nil
}

func (r *stubRows) Err() error { return nil }
func (r *stubRows) Close()     {}

type execCall struct {
	sql  string
	args []any
}

type stubTx struct {
	execs      []execCall
	execErr    error
	committed  bool
	rolledBack bool
}

func (t *stubTx) Exec(ctx context.Context, sql string, args ...any) error {
	if t.execErr != nil {
		return t.execErr
	}
	t.execs = append(t.execs, execCall{sql: sql, args: args})
	return nil
}

func (t *stubTx) Commit(ctx context.Context) error   { t.committed = true; return nil }
func (t *stubTx) Rollback(ctx context.Context) error { t.rolledBack = true; return nil }

type stubDB struct {
	rows     *stubRows
	queryErr error
	tx       *stubTx
	beginErr error
}

func (db *stubDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if db.queryErr != nil {
		return nil, db.queryErr
	}
	return db.rows, nil
}

func (db *stubDB) Exec(ctx context.Context, sql string, args ...any) error { return nil }

func (db *stubDB) Begin(ctx context.Context) (Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	return db.tx, nil
}

func (db *stubDB) Close() {}

func TestLoadScansRowsInOrder(t *testing.T) {
	db := &stubDB{rows: &stubRows{rows: [][]any{
		{"voltage_fizz", "Voltage Fizz", 2, 117},
		{"base_water", "Water", 1, 0},
	}}}

	repo := NewHistoryRepository(db)
	history, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.OrderItem{
		{DrinkID: "voltage_fizz", DrinkName: "Voltage Fizz", Quantity: 2, Calories: 117},
		{DrinkID: "base_water", DrinkName: "Water", Quantity: 1, Calories: 0},
	}, history)
}

func TestLoadEmptyTableReturnsEmpty(t *testing.T) {
	db := &stubDB{rows: &stubRows{}}

	history, err := NewHistoryRepository(db).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestLoadPropagatesQueryError(t *testing.T) {
	db := &stubDB{queryErr: errors.New("connection lost")}

	_, err := NewHistoryRepository(db).Load(context.Background())
	assert.Error(t, err)
}

func TestAppendInsertsEveryItemAndCommits(t *testing.T) {
	tx := &stubTx{}
	db := &stubDB{tx: tx}

	items := []domain.OrderItem{
		{DrinkID: "a", DrinkName: "A", Quantity: 1, Calories: 10},
		{DrinkID: "b", DrinkName: "B", Quantity: 2, Calories: 20},
	}

	require.NoError(t, NewHistoryRepository(db).Append(context.Background(), items))

	require.Len(t, tx.execs, 2)
	assert.Equal(t, "a", tx.execs[0].args[0])
	assert.Equal(t, "b", tx.execs[1].args[0])
	assert.True(t, tx.committed)
}

func TestAppendRollsBackOnInsertFailure(t *testing.T) {
	tx := &stubTx{execErr: errors.New("constraint violation")}
	db := &stubDB{tx: tx}

	err := NewHistoryRepository(db).Append(context.Background(), []domain.OrderItem{
		{DrinkID: "a", DrinkName: "A", Quantity: 1, Calories: 10},
	})

	require.Error(t, err)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}
