package api

import (
	"context"

	"github.com/techsaavy8784/face-recognization-wallet/internal/app"
)

// WalletService is the subset of app.WalletService used by the API layer.
// It is an interface to allow handler-level unit tests without a database.
type WalletService interface {
	GetWallet(ctx context.Context, uid int64, address string) (*app.WalletData, error)
	CreateWallet(ctx context.Context, uid int64, feature []byte) (*app.WalletData, error)
	RecoverWallet(ctx context.Context, uid int64, feature []byte, recoverKey string) (*app.WalletData, error)
}
