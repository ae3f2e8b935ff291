package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/assets"
	"github.com/viewly/viewly/internal/auth"
	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
)

// TokenIssuer issues signed session tokens for authenticated accounts.
type TokenIssuer interface {
	Issue(accountID uuid.UUID, email string) (string, error)
}

// Compile-time verification that the auth token manager satisfies the port.
var _ TokenIssuer = (*auth.TokenManager)(nil)

// RegisterInput contains the input parameters for creating an account.
type RegisterInput struct {
	Email       string
	Phone       string
	ChannelName string
	Password    string

	// Avatar is optional; when present it is stored before the account
	// record is written.
	Avatar *assets.Content
}

// UpdateProfileInput carries partial profile changes. Nil fields keep
// their prior values.
type UpdateProfileInput struct {
	Email       *string
	Phone       *string
	ChannelName *string
	Password    *string
	Avatar      *assets.Content
}

// IdentityService defines account registration, authentication, and
// profile management.
type IdentityService interface {
	// Register creates an account. The returned account never carries
	// the credential hash.
	Register(ctx context.Context, input RegisterInput) (*model.Account, error)

	// Authenticate verifies credentials and issues a session token.
	Authenticate(ctx context.Context, email, password string) (*model.Account, string, error)

	// GetAccount retrieves an account by id, hash stripped.
	GetAccount(ctx context.Context, accountID uuid.UUID) (*model.Account, error)

	// UpdateProfile applies partial profile changes. A new avatar is
	// stored before the record write; the old avatar is destroyed last.
	UpdateProfile(ctx context.Context, accountID uuid.UUID, input UpdateProfileInput) (*model.Account, error)

	// DeleteAccount enqueues an asynchronous purge of the account and
	// everything it owns. The record itself is removed by the purge
	// orchestrator.
	DeleteAccount(ctx context.Context, accountID uuid.UUID) error
}

type identityService struct {
	accounts repository.AccountRepository
	gateway  AssetGateway
	tokens   TokenIssuer
	queue    repository.MessageQueue
	logger   *slog.Logger
}

// NewIdentityService creates a new IdentityService instance.
func NewIdentityService(
	accounts repository.AccountRepository,
	gateway AssetGateway,
	tokens TokenIssuer,
	queue repository.MessageQueue,
	logger *slog.Logger,
) IdentityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &identityService{
		accounts: accounts,
		gateway:  gateway,
		tokens:   tokens,
		queue:    queue,
		logger:   logger,
	}
}

// Register validates, hashes the password, stores the avatar, and
// writes the account record. A failed record write compensates by
// removing the stored avatar so no orphan asset survives.
func (s *identityService) Register(ctx context.Context, input RegisterInput) (*model.Account, error) {
	if len(input.Password) < model.MinPasswordLength {
		return nil, model.ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := model.NewAccount(input.Email, input.Phone, input.ChannelName, hash)
	if err != nil {
		return nil, err
	}

	// Cheap pre-check; the unique constraint remains authoritative.
	if _, err := s.accounts.GetByEmail(ctx, input.Email); err == nil {
		return nil, repository.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if input.Avatar != nil {
		ref, err := s.gateway.Store(ctx, *input.Avatar, model.AssetKindImage, folderAvatars)
		if err != nil {
			return nil, err
		}
		account.SetAvatar(ref)
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if removeErr := s.gateway.Remove(ctx, account.Avatar.ID, model.AssetKindImage); removeErr != nil {
			s.logger.Warn("failed to remove avatar after registration failure",
				slog.String("asset_id", account.Avatar.ID),
				slog.String("error", removeErr.Error()),
			)
		}
		return nil, err
	}

	return account.Sanitized(), nil
}

// Authenticate verifies the email/password pair and issues a session
// token. The hash comparison result is the only credential signal.
func (s *identityService) Authenticate(ctx context.Context, email, password string) (*model.Account, string, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return nil, "", ErrUnauthorized
	}

	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}

	return account.Sanitized(), token, nil
}

// GetAccount retrieves an account with the credential hash stripped.
func (s *identityService) GetAccount(ctx context.Context, accountID uuid.UUID) (*model.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Sanitized(), nil
}

// UpdateProfile applies identity-field changes and optionally swaps the
// avatar. The new avatar is stored first, the record written second,
// and the old avatar destroyed last; a failed record write compensates
// by removing the new avatar.
func (s *identityService) UpdateProfile(ctx context.Context, accountID uuid.UUID, input UpdateProfileInput) (*model.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if *input.Email == "" {
			return nil, model.ErrEmptyEmail
		}
		if !model.ValidEmail(*input.Email) {
			return nil, model.ErrInvalidEmail
		}
		account.Email = *input.Email
	}
	if input.Phone != nil {
		if *input.Phone == "" {
			return nil, model.ErrEmptyPhone
		}
		account.Phone = *input.Phone
	}
	if input.ChannelName != nil {
		if *input.ChannelName == "" {
			return nil, model.ErrEmptyChannelName
		}
		account.ChannelName = *input.ChannelName
	}
	if input.Password != nil {
		if len(*input.Password) < model.MinPasswordLength {
			return nil, model.ErrPasswordTooShort
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = hash
	}

	oldAvatarID := account.Avatar.ID
	if input.Avatar != nil {
		ref, err := s.gateway.Store(ctx, *input.Avatar, model.AssetKindImage, folderAvatars)
		if err != nil {
			return nil, err
		}
		account.SetAvatar(ref)
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		if input.Avatar != nil {
			if removeErr := s.gateway.Remove(ctx, account.Avatar.ID, model.AssetKindImage); removeErr != nil {
				s.logger.Warn("failed to remove avatar after profile update failure",
					slog.String("asset_id", account.Avatar.ID),
					slog.String("error", removeErr.Error()),
				)
			}
		}
		return nil, err
	}

	if input.Avatar != nil && oldAvatarID != "" {
		// The record already points at the new avatar; a failed removal
		// only orphans the old blob.
		if err := s.gateway.Remove(ctx, oldAvatarID, model.AssetKindImage); err != nil {
			s.logger.Warn("failed to remove replaced avatar",
				slog.String("asset_id", oldAvatarID),
				slog.String("error", err.Error()),
			)
		}
	}

	return account.Sanitized(), nil
}

// DeleteAccount enqueues a purge task for the account. Removal of the
// record and everything it owns happens in the purge worker.
func (s *identityService) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return err
	}

	task := repository.PurgeTask{AccountID: accountID}
	if err := s.queue.PublishPurgeTask(ctx, task); err != nil {
		return fmt.Errorf("publish purge task: %w", err)
	}

	return nil
}
