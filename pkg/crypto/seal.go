package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"
)

var randomRead = func(b []byte) (int, error) { return io.ReadFull(rand.Reader, b) }

const sealSaltLabel = "synx-wallet-seed-v1"

// Sealer encrypts wallet seed material at rest with AES-GCM. The key is
// derived from the configured wallet platform secret via scrypt so a leaked
// database dump alone cannot restore a wallet.
type Sealer struct {
	key []byte
}

// NewSealer derives the sealing key from the given secret
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, errors.New("sealing secret must not be empty")
	}
	key, err := scrypt.Key([]byte(secret), []byte(sealSaltLabel), 1<<15, 8, 1, 32)
	if err != nil {
		return nil, err
	}
	return &Sealer{key: key}, nil
}

// Seal encrypts plaintext and returns a hex string safe to persist
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := randomRead(nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(ciphertext), nil
}

// Open decrypts a hex string produced by Seal
func (s *Sealer) Open(sealedHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(sealedHex)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
