// Package app contains the wallet-account lifecycle orchestration.
package app

import (
	"bytes"
	"context"
	"errors"

	"github.com/techsaavy8784/face-recognization-wallet/internal/logger"
	"github.com/techsaavy8784/face-recognization-wallet/internal/storage"
	"github.com/techsaavy8784/face-recognization-wallet/internal/wallet"
	apperrors "github.com/techsaavy8784/face-recognization-wallet/pkg/errors"
	"github.com/techsaavy8784/face-recognization-wallet/pkg/types"
)

// AccountStore is the persistence surface the service depends on.
type AccountStore interface {
	GetByAddress(ctx context.Context, address string) (*types.Account, error)
	Create(ctx context.Context, params storage.CreateAccountParams) (*types.Account, error)
}

// Provisioner generates wallet identities.
type Provisioner interface {
	Generate() (mnemonic string, address string, err error)
}

// TokenIssuer mints session tokens for (address, uid).
type TokenIssuer interface {
	Issue(address string, uid int64) (string, error)
}

// FeatureArchiver stores a feature blob in an external object gateway. The
// mnemonic is used to sign the gateway request on behalf of the new wallet.
type FeatureArchiver interface {
	Archive(ctx context.Context, address, mnemonic string, feature []byte) error
}

// WalletData is the payload a successful wallet operation yields. Fields the
// operation deliberately withholds are left zero-valued.
type WalletData struct {
	Address  string
	Mnemonic string
	Token    string
	Feature  []byte
}

// WalletService orchestrates provisioning, persistence and token issuance
// for the wallet endpoints. It holds no per-request state.
type WalletService struct {
	accounts AccountStore
	prov     Provisioner
	issuer   TokenIssuer
	archiver FeatureArchiver // optional
}

// NewWalletService creates a new wallet service
func NewWalletService(accounts AccountStore, prov Provisioner, issuer TokenIssuer) *WalletService {
	return &WalletService{
		accounts: accounts,
		prov:     prov,
		issuer:   issuer,
	}
}

// SetFeatureArchiver enables best-effort archiving of feature blobs to an
// object gateway. Archiving failures never fail the wallet operation.
func (s *WalletService) SetFeatureArchiver(a FeatureArchiver) {
	s.archiver = a
}

// GetWallet looks up the account by address and mints a fresh token for it.
// The stored mnemonic and feature blob are returned alongside the token.
func (s *WalletService) GetWallet(ctx context.Context, uid int64, address string) (*WalletData, error) {
	account, err := s.accounts.GetByAddress(ctx, address)
	if err != nil {
		return nil, apperrors.Persistence("find_account", err)
	}
	if account == nil {
		return nil, apperrors.ErrAccountNotFound
	}

	token, err := s.issuer.Issue(address, uid)
	if err != nil {
		return nil, apperrors.Issuance(err)
	}

	return &WalletData{
		Address:  address,
		Mnemonic: account.Mnemonic,
		Token:    token,
		Feature:  account.Feature,
	}, nil
}

// CreateWallet provisions a new wallet, mints its first token and persists
// the account. The mnemonic and feature are never echoed back; the mnemonic
// is retrievable later through GetWallet only. Nothing is persisted when any
// step fails.
func (s *WalletService) CreateWallet(ctx context.Context, uid int64, feature []byte) (*WalletData, error) {
	mnemonic, address, err := s.prov.Generate()
	if err != nil {
		return nil, provisioningError(err)
	}

	token, err := s.issuer.Issue(address, uid)
	if err != nil {
		return nil, apperrors.Issuance(err)
	}

	account, err := s.accounts.Create(ctx, storage.CreateAccountParams{
		UID:      uid,
		Mnemonic: mnemonic,
		Address:  address,
		Token:    token,
		Feature:  feature,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateAddress) {
			return nil, apperrors.DuplicateAddress(address)
		}
		return nil, apperrors.Persistence("create_account", err)
	}

	logger.Info(ctx, "wallet created", "account_id", account.ID, "uid", uid, "address", address)

	if s.archiver != nil && len(feature) > 0 {
		if err := s.archiver.Archive(ctx, address, mnemonic, feature); err != nil {
			logger.Warn(ctx, "feature archive failed", "address", address, "error", err)
		}
	}

	return &WalletData{
		Address: address,
		Token:   token,
	}, nil
}

// RecoverWallet looks up the account by the submitted recover key and mints a
// fresh token for it. The response carries the address as stored in the row,
// not the literal recover key, and never the mnemonic.
func (s *WalletService) RecoverWallet(ctx context.Context, uid int64, feature []byte, recoverKey string) (*WalletData, error) {
	account, err := s.accounts.GetByAddress(ctx, recoverKey)
	if err != nil {
		return nil, apperrors.Persistence("find_account", err)
	}
	if account == nil {
		return nil, apperrors.ErrAccountNotFound
	}

	// No biometric match is performed here; the submitted blob is only
	// compared for observability.
	if len(feature) > 0 && !bytes.Equal(feature, account.Feature) {
		logger.Debug(ctx, "recover feature does not match stored blob", "uid", uid, "account_id", account.ID)
	}

	token, err := s.issuer.Issue(recoverKey, uid)
	if err != nil {
		return nil, apperrors.Issuance(err)
	}

	return &WalletData{
		Address: account.Address,
		Token:   token,
		Feature: account.Feature,
	}, nil
}

// provisioningError maps a provisioner failure to the envelope message naming
// the failed sub-step.
func provisioningError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, wallet.ErrMnemonic):
		return apperrors.Provisioning("generate_mnemonic", err)
	case errors.Is(err, wallet.ErrKeypair):
		return apperrors.Provisioning("derive_keypair", err)
	default:
		return apperrors.Provisioning("derive_address", err)
	}
}
