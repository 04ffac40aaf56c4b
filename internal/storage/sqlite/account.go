package sqlite

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
	ContributorID   int64  `db:"contributor_id"`
	AccountID       string `db:"account_id"`
	Email           string `db:"email"`
	Username        string `db:"username"`
	CurrentLanguage string `db:"current_language"`
	Age             string `db:"age"`
	Gender          string `db:"gender"`
	CreatedAt       string `db:"created_at"`
	UpdatedAt       string `db:"updated_at"`
}

func (r accountRow) toDomain() *domain.Account {
	return &domain.Account{
		ContributorID:   r.ContributorID,
		AccountID:       r.AccountID,
		Email:           r.Email,
		Username:        r.Username,
		CurrentLanguage: r.CurrentLanguage,
		Demographics:    domain.Demographics{Age: r.Age, Gender: r.Gender},
		CreatedAt:       parseTime(r.CreatedAt),
		UpdatedAt:       parseTime(r.UpdatedAt),
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

func (s *AccountStore) Save(ctx context.Context, account *domain.Account) error {
	now := time.Now().UTC()

	var createdAt string
	err := sqlx.GetContext(ctx, txn.Executor(ctx, s.db), &createdAt, `
		INSERT INTO accounts (
			contributor_id, account_id, email, username, current_language, age, gender, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (contributor_id) DO UPDATE SET
			account_id = excluded.account_id,
			email = excluded.email,
			username = excluded.username,
			current_language = excluded.current_language,
			age = excluded.age,
			gender = excluded.gender,
			updated_at = excluded.updated_at
		RETURNING created_at`,
		account.ContributorID,
		account.AccountID,
		account.Email,
		account.Username,
		account.CurrentLanguage,
		account.Demographics.Age,
		account.Demographics.Gender,
		timestamp(now),
		timestamp(now),
	)
	if err != nil {
		return err
	}

	account.CreatedAt = parseTime(createdAt)
	account.UpdatedAt = now
	return nil
}

func (s *AccountStore) GetByContributor(ctx context.Context, contributorID int64) (*domain.Account, error) {
	return s.get(ctx, "SELECT "+accountColumns+" FROM accounts WHERE contributor_id = ?", contributorID)
}

func (s *AccountStore) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.get(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE account_id = ? ORDER BY updated_at DESC LIMIT 1",
		accountID,
	)
}

func (s *AccountStore) SetLanguage(ctx context.Context, contributorID int64, language string) error {
	res, err := txn.Executor(ctx, s.db).ExecContext(ctx,
		"UPDATE accounts SET current_language = ?, updated_at = ? WHERE contributor_id = ?",
		language, timestamp(time.Now()), contributorID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *AccountStore) Delete(ctx context.Context, contributorID int64) error {
	res, err := txn.Executor(ctx, s.db).ExecContext(ctx, "DELETE FROM accounts WHERE contributor_id = ?", contributorID)
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
