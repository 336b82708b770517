package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Store{DB: db}, mock
}

func TestDebitPointsWritesLedgerInOneTx(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE users\s+SET points_balance = points_balance - \$1`).
		WithArgs(int64(300), "u1").
		WillReturnRows(sqlmock.NewRows([]string{"points_balance"}).AddRow(int64(200)))
	mock.ExpectExec(`INSERT INTO ledger_entries`).
		WithArgs(sqlmock.AnyArg(), "u1", EntryPurchaseDebit, int64(-300), "item", "i1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	newBal, err := st.DebitPoints(context.Background(), "u1", 300, EntryPurchaseDebit, "item", "i1")
	require.NoError(t, err)
	require.EqualValues(t, 200, newBal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebitPointsGuardMiss(t *testing.T) {
	tests := []struct {
		name    string
		exists  bool
		wantErr error
	}{
		{"existing user short on points", true, ErrInsufficientPoints},
		{"unknown user", false, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, mock := newMockStore(t)

			mock.ExpectBegin()
			mock.ExpectQuery(`UPDATE users\s+SET points_balance = points_balance - \$1`).
				WithArgs(int64(300), "u1").
				WillReturnRows(sqlmock.NewRows([]string{"points_balance"}))
			mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE id = \$1\)`).
				WithArgs("u1").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))
			mock.ExpectRollback()

			_, err := st.DebitPoints(context.Background(), "u1", 300, EntryPurchaseDebit, "item", "i1")
			require.ErrorIs(t, err, tt.wantErr)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDebitPointsRejectsNegativeAmount(t *testing.T) {
	st, _ := newMockStore(t)

	_, err := st.DebitPoints(context.Background(), "u1", -5, EntryPurchaseDebit, "item", "i1")
	require.Error(t, err)
}

func TestSetPointsBalanceReturnsPrevious(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT points_balance FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"points_balance"}).AddRow(int64(450)))
	mock.ExpectExec(`UPDATE users SET points_balance = \$1`).
		WithArgs(int64(120), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO ledger_entries`).
		WithArgs(sqlmock.AnyArg(), "u1", EntryAdminSet, int64(-330), "admin", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	prev, err := st.SetPointsBalance(context.Background(), "u1", 120)
	require.NoError(t, err)
	require.EqualValues(t, 450, prev)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTakeStoreItemStock(t *testing.T) {
	t.Run("decrements when in stock", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectExec(`UPDATE store_items\s+SET quantity = quantity - 1\s+WHERE id = \$1 AND quantity > 0`).
			WithArgs("i1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, st.TakeStoreItemStock(context.Background(), "i1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sold out", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectExec(`UPDATE store_items\s+SET quantity = quantity - 1`).
			WithArgs("i1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM store_items WHERE id = \$1\)`).
			WithArgs("i1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := st.TakeStoreItemStock(context.Background(), "i1")
		require.ErrorIs(t, err, ErrOutOfStock)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing item", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectExec(`UPDATE store_items\s+SET quantity = quantity - 1`).
			WithArgs("nope").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM store_items WHERE id = \$1\)`).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := st.TakeStoreItemStock(context.Background(), "nope")
		require.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInsertRaffleEntryMapsUniqueViolation(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO raffle_entries`).
		WithArgs(sqlmock.AnyArg(), "r1", "u1", "alice").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "raffle_entries_raffle_id_user_id_key"})

	_, err := st.InsertRaffleEntry(context.Background(), "r1", "u1", "alice")
	require.ErrorIs(t, err, ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListLedgerEntriesFilterPlaceholders(t *testing.T) {
	st, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "type", "amount", "ref_type", "ref_id", "created_at"})
	mock.ExpectQuery(`FROM ledger_entries WHERE user_id = \$1 AND type = \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("u1", EntryPurchaseDebit, 50, 0).
		WillReturnRows(rows)

	out, err := st.ListLedgerEntries(context.Background(), LedgerFilter{UserID: "u1", Type: EntryPurchaseDebit}, 50, 0)
	require.NoError(t, err)
	require.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}
