package model

// SealedDocument is the at-rest form of an uploaded KYC document
type SealedDocument struct {
	Name       string `json:"name"`
	MimeType   string `json:"mimeType"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// BalanceResponse is the wallet overview
type BalanceResponse struct {
	Asset        string `json:"asset"`
	Crypto       string `json:"crypto"`
	Pending      string `json:"pending"`
	Currency     string `json:"currency"`
	Fiat         string `json:"fiat,omitempty"`
	Rate         string `json:"rate,omitempty"`
	RateError    string `json:"rateError,omitempty"`
	Transactions int    `json:"transactions"`
}

// ReceiveResponse carries the deposit address and its QR code (base64 PNG)
type ReceiveResponse struct {
	Asset   string `json:"asset"`
	Chain   string `json:"chain"`
	Address string `json:"address"`
	QR      string `json:"qr"`
}
