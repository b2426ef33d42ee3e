package validation

import (
	"encoding/base64"
	"errors"
	"strings"
)

// AllowedDocumentTypes lists the MIME types accepted for KYC uploads.
var AllowedDocumentTypes = []string{"application/pdf", "image/png", "image/jpeg", "image/jpg"}

// ErrInvalidDataURL is returned for payloads that are not base64 data URLs.
var ErrInvalidDataURL = errors.New("invalid data url")

// DocumentInput is one uploaded file, encoded as a data URL.
type DocumentInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// BusinessVerificationInput carries the identity and CAC registration
// documents.
type BusinessVerificationInput struct {
	IDDocument  *DocumentInput `json:"idDocument"`
	CACDocument *DocumentInput `json:"cacDocument"`
}

// Validate checks both documents.
func (in BusinessVerificationInput) Validate() error {
	errs := Errors{}
	document(errs, "idDocument", in.IDDocument)
	document(errs, "cacDocument", in.CACDocument)
	return errs.orNil()
}

func document(errs Errors, field string, doc *DocumentInput) {
	if doc == nil || doc.Name == "" {
		errs.add(field, "File is required")
		return
	}
	if !strings.HasPrefix(doc.Data, "data:") {
		errs.add(field, "Invalid file data")
		return
	}
	if !allowedType(doc.Type) {
		errs.add(field, "File must be PDF, PNG, JPEG or JPG")
	}
}

func allowedType(t string) bool {
	for _, allowed := range AllowedDocumentTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

// Extension returns the part of the file name after the last dot.
func (d DocumentInput) Extension() string {
	idx := strings.LastIndex(d.Name, ".")
	if idx < 0 {
		return d.Name
	}
	return d.Name[idx+1:]
}

// DecodeData decodes a "data:<mime>;base64,<payload>" URL.
func (d DocumentInput) DecodeData() (mime string, payload []byte, err error) {
	rest, ok := strings.CutPrefix(d.Data, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, ErrInvalidDataURL
	}
	payload, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, ErrInvalidDataURL
	}
	return mime, payload, nil
}
