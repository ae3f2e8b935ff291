package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
)

// AccountRepository implements repository.AccountRepository using PostgreSQL.
type AccountRepository struct {
	db DBTX
}

// NewAccountRepository creates a new AccountRepository instance.
func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create persists a new account.
func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	const query = `
		INSERT INTO accounts (id, email, phone, channel_name, password_hash, avatar_asset_id, avatar_url, subscriber_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.Email,
		account.Phone,
		account.ChannelName,
		account.PasswordHash,
		nullString(account.Avatar.ID),
		nullString(account.Avatar.URL),
		account.SubscriberCount,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uniqueViolationError(pgErr)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its identifier.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	const query = accountSelect + ` WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	return account, nil
}

// GetByEmail retrieves an account by its email address.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	const query = accountSelect + ` WHERE email = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

// Update persists profile changes as a single write. The subscriber
// counter is excluded: it is only mutated through its atomic operators.
func (r *AccountRepository) Update(ctx context.Context, account *model.Account) error {
	const query = `
		UPDATE accounts
		SET email = $2, phone = $3, channel_name = $4, password_hash = $5, avatar_asset_id = $6, avatar_url = $7, updated_at = $8
		WHERE id = $1
	`

	account.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		account.ID,
		account.Email,
		account.Phone,
		account.ChannelName,
		account.PasswordHash,
		nullString(account.Avatar.ID),
		nullString(account.Avatar.URL),
		account.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uniqueViolationError(pgErr)
		}
		return fmt.Errorf("failed to update account: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// Delete removes the account record.
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM accounts WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// AdjustSubscriberCount applies delta to the cached subscriber counter
// as a single atomic operation. The counter floors at zero.
func (r *AccountRepository) AdjustSubscriberCount(ctx context.Context, channelID uuid.UUID, delta int64) error {
	const query = `
		UPDATE accounts
		SET subscriber_count = GREATEST(subscriber_count + $2, 0), updated_at = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, channelID, delta, time.Now())
	if err != nil {
		return fmt.Errorf("failed to adjust subscriber count: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// ReconcileSubscriberCount recomputes the cached counter from the edge
// table. Reconciling an absent account is a no-op: the edges are being
// or have been removed along with it.
func (r *AccountRepository) ReconcileSubscriberCount(ctx context.Context, channelID uuid.UUID) error {
	const query = `
		UPDATE accounts
		SET subscriber_count = (SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1), updated_at = $2
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, channelID, time.Now()); err != nil {
		return fmt.Errorf("failed to reconcile subscriber count: %w", err)
	}

	return nil
}

const accountSelect = `
		SELECT id, email, phone, channel_name, password_hash, avatar_asset_id, avatar_url, subscriber_count, created_at, updated_at
		FROM accounts`

// scanAccount scans a single row into an Account model.
func scanAccount(row pgx.Row) (*model.Account, error) {
	var (
		account       model.Account
		avatarAssetID *string
		avatarURL     *string
	)

	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Phone,
		&account.ChannelName,
		&account.PasswordHash,
		&avatarAssetID,
		&avatarURL,
		&account.SubscriberCount,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if avatarAssetID != nil {
		account.Avatar.ID = *avatarAssetID
	}
	if avatarURL != nil {
		account.Avatar.URL = *avatarURL
	}

	return &account, nil
}

// uniqueViolationError maps a unique constraint violation to the
// field-specific conflict sentinel.
func uniqueViolationError(pgErr *pgconn.PgError) error {
	switch pgErr.ConstraintName {
	case "accounts_email_key":
		return repository.ErrEmailTaken
	case "accounts_phone_key":
		return repository.ErrPhoneTaken
	case "accounts_channel_name_key":
		return repository.ErrChannelNameTaken
	default:
		return repository.ErrDuplicateAccount
	}
}

// Compile-time verification that AccountRepository implements repository.AccountRepository.
var _ repository.AccountRepository = (*AccountRepository)(nil)
