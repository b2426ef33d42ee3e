package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the document key may be prompted at runtime - use GetDocumentKeyBytes()
type Config struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	StorageDriver string        `envconfig:"STORAGE_DRIVER" default:"badger"`
	DataDir       string        `envconfig:"DATA_DIR" default:"./data"`
	DatabaseURL   string        `envconfig:"DATABASE_URL"`
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"168h"`
	CookieSecure  bool          `envconfig:"COOKIE_SECURE" default:"false"`
	AppURL        string        `envconfig:"APP_URL" default:"http://localhost:3000"`

	MailtrapToken       string `envconfig:"MAILTRAP_TOKEN"`
	MailtrapSenderEmail string `envconfig:"MAILTRAP_SENDER_EMAIL" default:"hello@vendora.io"`
	MailtrapSenderName  string `envconfig:"MAILTRAP_SENDER_NAME" default:"Vendora"`

	DocumentKey    string   `envconfig:"DOCUMENT_KEY"`
	RatesURL       string   `envconfig:"RATES_URL" default:"https://api.coingecko.com/api/v3/simple/price?ids=usd-coin&vs_currencies=ngn"`
	CORSOrigins    []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	TransferFee    string   `envconfig:"TRANSFER_FEE" default:"0.02"`
	DepositAddress string   `envconfig:"DEPOSIT_ADDRESS" default:"0x52908400098527886E0F7030069857D2E4169EE7"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads and checks the configuration without touching the global one.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if _, err := decimal.NewFromString(c.TransferFee); err != nil {
		return nil, fmt.Errorf("invalid TRANSFER_FEE %q: %w", c.TransferFee, err)
	}
	c.AppURL = strings.TrimRight(c.AppURL, "/")
	return c, nil
}

// Set installs c as the global configuration, mostly for tests.
func Set(c *Config) {
	cfg = c
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetSessionTTL returns the lifetime of a session token
func GetSessionTTL() time.Duration {
	return Get().SessionTTL
}

// GetTransferFee returns the flat fee charged per transfer
func GetTransferFee() decimal.Decimal {
	fee, _ := decimal.NewFromString(Get().TransferFee)
	return fee
}

var documentKey []byte

// PromptForDocumentKey prompts the operator for the KYC document key in the
// terminal, unless DOCUMENT_KEY is set. The key is read without echoing and
// kept in memory. Call this at startup before the server begins handling
// requests.
func PromptForDocumentKey() error {
	if key := Get().DocumentKey; key != "" {
		documentKey = []byte(key)
		return nil
	}

	raw, err := ReadSecret("Enter document key: ")
	if err != nil {
		return err
	}
	documentKey = raw
	return nil
}

// ReadSecret reads one line from the terminal without echoing it.
func ReadSecret(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run interactively or set the value in the environment")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("secret cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}

// SetDocumentKey stores key as the document key, mostly for tests.
func SetDocumentKey(key []byte) {
	documentKey = append([]byte(nil), key...)
}

// GetDocumentKeyBytes returns a copy of the document key.
// Caller must zero the returned slice after use.
func GetDocumentKeyBytes() ([]byte, error) {
	if len(documentKey) == 0 {
		return nil, errors.New("document key not set: call PromptForDocumentKey at startup")
	}
	out := make([]byte, len(documentKey))
	copy(out, documentKey)
	return out, nil
}
