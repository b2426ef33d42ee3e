// Package crypto seals KYC documents at rest with a key derived from the
// operator's document key.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"

	"github.com/AlexZinkM/vendora/internal/model"
)

const (
	// scrypt parameters for document sealing, one derivation per document.
	// N=2^15 (~32MB RAM, tens of ms)
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

var ErrEmptyKey = errors.New("document key is empty")

// SealDocument encrypts payload and returns the JSON envelope to store.
// key must be []byte so the caller can zero it after use.
func SealDocument(name, mimeType string, payload, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(key, salt)
	if err != nil {
		return nil, err
	}

	ciphertext := aesGCM.Seal(nil, nonce, payload, []byte(name))

	doc := model.SealedDocument{
		Name:       name,
		MimeType:   mimeType,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sealed document: %w", err)
	}
	return data, nil
}

func newGCM(key, salt []byte) (cipher.AEAD, error) {
	// Derive key from the document key
	derived, err := scrypt.Key(key, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(derived)

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
