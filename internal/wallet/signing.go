package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignMessage signs msg with the key derived from mnemonic using EIP-191
// personal-sign hashing and returns the hex-encoded 65-byte signature.
func SignMessage(mnemonic string, msg []byte) (string, error) {
	key, err := KeyFromMnemonic(mnemonic, "")
	if err != nil {
		return "", err
	}

	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	return hex.EncodeToString(sig), nil
}

// VerifyEVMSignature recovers the signer of an EIP-191 personal-sign
// signature and compares it against the expected address. The signature may
// be 0x-prefixed; the recovery byte may be 0/1 or 27/28.
func VerifyEVMSignature(signedMsg, msg, address string) (bool, error) {
	raw := strings.TrimPrefix(signedMsg, "0x")
	sig, err := hex.DecodeString(raw)
	if err != nil {
		return false, fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return false, fmt.Errorf("invalid signature length: %d", len(sig))
	}

	recoverSig := make([]byte, crypto.SignatureLength)
	copy(recoverSig, sig)
	if recoverSig[64] >= 27 {
		recoverSig[64] -= 27
	}

	pubkey, err := crypto.SigToPub(accounts.TextHash([]byte(msg)), recoverSig)
	if err != nil {
		return false, fmt.Errorf("failed to recover public key: %w", err)
	}

	recovered := crypto.PubkeyToAddress(*pubkey).Hex()
	return strings.EqualFold(recovered, address), nil
}
