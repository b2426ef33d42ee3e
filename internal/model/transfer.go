package model

import "github.com/AlexZinkM/vendora/internal/validation"

// CodeState is the segmented code input of a transfer session
type CodeState struct {
	Length int      `json:"length"`
	Digits []string `json:"digits"`
	Focus  int      `json:"focus"`
}

// TransferState represents response for the /wallet/send/{flow} endpoints
type TransferState struct {
	Flow          string                      `json:"flow"`
	Open          bool                        `json:"open"`
	Step          string                      `json:"step"`
	Terminal      bool                        `json:"terminal"`
	RecipientType string                      `json:"recipientType,omitempty"`
	Crypto        *validation.SendCryptoInput `json:"crypto,omitempty"`
	Fiat          *validation.SendFiatInput   `json:"fiat,omitempty"`
	Fee           string                      `json:"fee"`
	FeeAsset      string                      `json:"feeAsset"`
	Code          CodeState                   `json:"code"`
	Transaction   *Transaction                `json:"transaction,omitempty"`
}

// RecipientRequest represents request for POST /wallet/send/fiat/recipient
type RecipientRequest struct {
	RecipientType validation.RecipientType `json:"recipientType"`
}

// CodeRequest represents request for POST /wallet/send/{flow}/code.
// An empty action with a code pastes it from the first box and submits.
type CodeRequest struct {
	Action string `json:"action"`
	Value  string `json:"value,omitempty"`
	Index  int    `json:"index"`
	Code   string `json:"code,omitempty"`
}
