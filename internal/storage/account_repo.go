package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/techsaavy8784/face-recognization-wallet/pkg/types"
)

// ErrDuplicateAddress is returned when an insert collides with the unique
// index on account.address.
var ErrDuplicateAddress = errors.New("account address already exists")

const uniqueViolation = "23505"

// AccountRepository handles account data operations
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// CreateAccountParams are the caller-supplied fields of a new account row.
type CreateAccountParams struct {
	UID      int64
	Mnemonic string
	Address  string
	Token    string
	Feature  []byte
}

// Create inserts a new account and returns it with the assigned id.
func (r *AccountRepository) Create(ctx context.Context, params CreateAccountParams) (*types.Account, error) {
	query := `
		INSERT INTO account (uid, mnemonic, address, token, feature)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uid, COALESCE(mnemonic, ''), COALESCE(address, ''), COALESCE(token, ''), COALESCE(feature, ''::bytea)
	`

	var account types.Account
	var feature []byte
	err := r.store.pool.QueryRow(ctx, query,
		params.UID,
		params.Mnemonic,
		params.Address,
		params.Token,
		params.Feature,
	).Scan(
		&account.ID,
		&account.UID,
		&account.Mnemonic,
		&account.Address,
		&account.Token,
		&feature,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateAddress
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	account.Feature = feature
	return &account, nil
}

// GetByAddress retrieves the account whose address matches exactly.
// Returns nil when no row matches.
func (r *AccountRepository) GetByAddress(ctx context.Context, address string) (*types.Account, error) {
	query := `
		SELECT id, uid, COALESCE(mnemonic, ''), COALESCE(address, ''), COALESCE(token, ''), COALESCE(feature, ''::bytea)
		FROM account
		WHERE address = $1
		LIMIT 1
	`

	var account types.Account
	var feature []byte
	err := r.store.pool.QueryRow(ctx, query, address).Scan(
		&account.ID,
		&account.UID,
		&account.Mnemonic,
		&account.Address,
		&account.Token,
		&feature,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by address: %w", err)
	}

	account.Feature = feature
	return &account, nil
}
