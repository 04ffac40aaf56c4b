package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"voice_courier/internal/domain"
	"voice_courier/internal/storage/txn"
)

type accountRow struct {
	ContributorID   int64     `db:"contributor_id"`
	AccountID       string    `db:"account_id"`
	Email           string    `db:"email"`
	Username        string    `db:"username"`
	CurrentLanguage string    `db:"current_language"`
	Age             string    `db:"age"`
	Gender          string    `db:"gender"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r accountRow) toDomain() *domain.Account {
	return &domain.Account{
		ContributorID:   r.ContributorID,
		AccountID:       r.AccountID,
		Email:           r.Email,
		Username:        r.Username,
		CurrentLanguage: r.CurrentLanguage,
		Demographics:    domain.Demographics{Age: r.Age, Gender: r.Gender},
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

const accountColumns = `contributor_id, account_id, email, username, current_language,
	age, gender, created_at, updated_at`

type AccountStore struct {
	db *sqlx.DB
}

func NewAccountStore(db *sqlx.DB) *AccountStore {
	return &AccountStore{db: db}
}

// Save inserts the contributor mapping or replaces the one already stored.
func (s *AccountStore) Save(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (
			contributor_id, account_id, email, username, current_language, age, gender
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (contributor_id) DO UPDATE SET
			account_id = EXCLUDED.account_id,
			email = EXCLUDED.email,
			username = EXCLUDED.username,
			current_language = EXCLUDED.current_language,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			updated_at = NOW()
		RETURNING created_at, updated_at`

	return txn.Executor(ctx, s.db).QueryRowxContext(ctx, query,
		account.ContributorID,
		account.AccountID,
		account.Email,
		account.Username,
		account.CurrentLanguage,
		account.Demographics.Age,
		account.Demographics.Gender,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
}

func (s *AccountStore) GetByContributor(ctx context.Context, contributorID int64) (*domain.Account, error) {
	return s.get(ctx, "SELECT "+accountColumns+" FROM accounts WHERE contributor_id = $1", contributorID)
}

// GetByAccountID returns the most recently updated contributor linked to the
// external account.
func (s *AccountStore) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.get(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE account_id = $1 ORDER BY updated_at DESC LIMIT 1",
		accountID,
	)
}

func (s *AccountStore) SetLanguage(ctx context.Context, contributorID int64, language string) error {
	res, err := txn.Executor(ctx, s.db).ExecContext(ctx,
		"UPDATE accounts SET current_language = $2, updated_at = NOW() WHERE contributor_id = $1",
		contributorID, language,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *AccountStore) Delete(ctx context.Context, contributorID int64) error {
	res, err := txn.Executor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM accounts WHERE contributor_id = $1",
		contributorID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *AccountStore) get(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var row accountRow
	err := sqlx.GetContext(ctx, txn.Executor(ctx, s.db), &row, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
