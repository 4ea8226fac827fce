package gateway

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/techsaavy8784/face-recognization-wallet/internal/logger"
	"github.com/techsaavy8784/face-recognization-wallet/internal/wallet"
)

// FeatureStore archives wallet feature blobs into a gateway bucket. Requests
// are signed with the owning wallet's key so the gateway can attribute the
// object to the wallet itself rather than the server account.
type FeatureStore struct {
	client *Client
	bucket string
}

// NewFeatureStore creates a feature store writing into bucket.
func NewFeatureStore(client *Client, bucket string) *FeatureStore {
	return &FeatureStore{client: client, bucket: bucket}
}

// Archive uploads the feature blob under the wallet address. The blob is
// staged through a temp file because the gateway accepts multipart files only.
func (fs *FeatureStore) Archive(ctx context.Context, address, mnemonic string, feature []byte) error {
	signature, err := wallet.SignMessage(mnemonic, []byte(fs.bucket))
	if err != nil {
		return fmt.Errorf("failed to sign gateway request: %w", err)
	}

	if err := fs.client.CreateBucket(ctx, fs.bucket, fs.bucket, signature); err != nil {
		return err
	}

	path := filepath.Join(os.TempDir(), address+".feature")
	if err := os.WriteFile(path, feature, 0o600); err != nil {
		return fmt.Errorf("failed to stage feature blob: %w", err)
	}
	defer os.Remove(path)

	fid, err := fs.client.Upload(ctx, path, fs.bucket, fs.bucket, signature)
	if err != nil {
		return err
	}

	logger.Info(ctx, "feature archived", "address", address, "fid", fid)
	return nil
}
