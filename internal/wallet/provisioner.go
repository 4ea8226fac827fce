// Package wallet derives wallet identities from mnemonics and signs and
// verifies messages with the derived keys.
package wallet

import (
	"crypto/ecdsa"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

// Sentinel errors identifying which provisioning step failed.
var (
	ErrMnemonic = errors.New("mnemonic generation failed")
	ErrKeypair  = errors.New("keypair derivation failed")
)

// entropyLen is the number of random alphanumeric characters used as BIP39
// entropy. 16 ASCII bytes yield a 128-bit entropy, i.e. a 12-word mnemonic.
const entropyLen = 16

const entropyCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"0123456789"

// derivationPath is the BIP44 external path for Ethereum: m/44'/60'/0'/0/0.
var derivationPath = []uint32{
	hdkeychain.HardenedKeyStart + 44,
	hdkeychain.HardenedKeyStart + 60,
	hdkeychain.HardenedKeyStart + 0,
	0,
	0,
}

// Provisioner generates wallet identities. It holds no state and is safe to
// call concurrently.
type Provisioner struct{}

// NewProvisioner creates a new Provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// GenerateMnemonic creates a fresh recovery phrase from a random
// 16-character alphanumeric seed.
func (p *Provisioner) GenerateMnemonic() (string, error) {
	entropy, err := randomCode(entropyLen)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMnemonic, err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMnemonic, err)
	}
	return mnemonic, nil
}

// Generate provisions a new wallet: a fresh mnemonic and the address of the
// keypair deterministically derived from it.
func (p *Provisioner) Generate() (mnemonic string, address string, err error) {
	mnemonic, err = p.GenerateMnemonic()
	if err != nil {
		return "", "", err
	}

	key, err := KeyFromMnemonic(mnemonic, "")
	if err != nil {
		return "", "", err
	}

	return mnemonic, AddressFromKey(key), nil
}

// KeyFromMnemonic deterministically derives the wallet's secp256k1 private
// key from a mnemonic, optionally salted with a password.
func KeyFromMnemonic(mnemonic, password string) (*ecdsa.PrivateKey, error) {
	seed := bip39.NewSeed(mnemonic, password)

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeypair, err)
	}
	for _, index := range derivationPath {
		key, err = key.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("%w: derive child at %d: %v", ErrKeypair, index, err)
		}
	}

	privKey, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeypair, err)
	}
	// Convert through go-ethereum so the key carries crypto.S256(); the
	// curve type btcec sets is rejected by crypto.Sign's identity check.
	ecdsaKey, err := crypto.ToECDSA(privKey.Serialize())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeypair, err)
	}
	return ecdsaKey, nil
}

// AddressFromKey converts a private key into the canonical 0x-prefixed
// Ethereum address encoding.
func AddressFromKey(key *ecdsa.PrivateKey) string {
	return crypto.PubkeyToAddress(key.PublicKey).Hex()
}

// randomCode returns n random bytes drawn from the alphanumeric charset.
func randomCode(n int) ([]byte, error) {
	max := big.NewInt(int64(len(entropyCharset)))
	code := make([]byte, n)
	for i := range code {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, err
		}
		code[i] = entropyCharset[idx.Int64()]
	}
	return code, nil
}
