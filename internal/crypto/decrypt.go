package crypto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AlexZinkM/vendora/internal/model"
)

var ErrInvalidKey = errors.New("invalid document key")

// OpenDocument decrypts an envelope produced by SealDocument.
// The returned payload belongs to the caller, who should clear it after use.
func OpenDocument(sealed, key []byte) (*model.SealedDocument, []byte, error) {
	if len(key) == 0 {
		return nil, nil, ErrEmptyKey
	}
	if len(sealed) == 0 {
		return nil, nil, errors.New("sealed document is empty")
	}

	var doc model.SealedDocument
	if err := json.Unmarshal(sealed, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal sealed document: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(doc.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(doc.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	if len(nonce) != nonceLen {
		return nil, nil, errors.New("invalid nonce length")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(doc.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(key, salt)
	if err != nil {
		return nil, nil, err
	}

	payload, err := aesGCM.Open(nil, nonce, ciphertext, []byte(doc.Name))
	if err != nil {
		return nil, nil, ErrInvalidKey
	}

	return &doc, payload, nil
}

// ReadDocumentName reads the document name from an envelope without decryption
func ReadDocumentName(sealed []byte) (string, error) {
	var doc model.SealedDocument
	if err := json.Unmarshal(sealed, &doc); err != nil {
		return "", fmt.Errorf("failed to unmarshal sealed document: %w", err)
	}
	return doc.Name, nil
}
