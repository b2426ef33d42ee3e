package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AlexZinkM/vendora/internal/api"
	"github.com/AlexZinkM/vendora/internal/auth"
	"github.com/AlexZinkM/vendora/internal/client"
	"github.com/AlexZinkM/vendora/internal/config"
	"github.com/AlexZinkM/vendora/internal/domain"
	"github.com/AlexZinkM/vendora/internal/email"
	"github.com/AlexZinkM/vendora/internal/logging"
	"github.com/AlexZinkM/vendora/internal/metrics"
	"github.com/AlexZinkM/vendora/internal/service"
	"github.com/AlexZinkM/vendora/internal/storage"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API.

Configuration is read from the environment (JWT_SECRET is required).
The KYC document key is taken from DOCUMENT_KEY or prompted for.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// setup loads the configuration, starts logging and opens the store.
func setup(ctx context.Context) (*config.Config, domain.RepoManager, error) {
	if err := config.Init(); err != nil {
		return nil, nil, err
	}
	cfg := config.Get()

	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	repo, err := storage.Open(ctx, storage.Options{
		Driver:      cfg.StorageDriver,
		DataDir:     cfg.DataDir,
		DatabaseURL: cfg.DatabaseURL,
		Logger:      logging.GetLogger(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s storage: %w", cfg.StorageDriver, err)
	}
	return cfg, repo, nil
}

func newMailer(cfg *config.Config) email.Mailer {
	if cfg.MailtrapToken == "" {
		logging.Warn("MAILTRAP_TOKEN not set, emails are only logged")
		return email.LogMailer{}
	}
	return email.NewMailtrapClient("", cfg.MailtrapToken, email.Sender{
		Email: cfg.MailtrapSenderEmail,
		Name:  cfg.MailtrapSenderName,
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, repo, err := setup(ctx)
	if err != nil {
		return err
	}
	defer logging.Sync()
	defer repo.Close()

	if err := config.PromptForDocumentKey(); err != nil {
		return err
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, config.GetSessionTTL())
	if err != nil {
		return err
	}

	m := metrics.New()
	mailer := newMailer(cfg)
	rates := client.NewCoinGeckoClient(cfg.RatesURL)

	handler := api.SetupRouter(api.Services{
		Auth:         service.NewAuthService(repo, issuer, mailer, cfg.AppURL, m),
		Verification: service.NewVerificationService(repo, config.GetDocumentKeyBytes, mailer, m),
		Wallet:       service.NewWalletService(repo, rates, cfg.DepositAddress, m),
		Transfer:     service.NewTransferService(repo, config.GetTransferFee(), m),
		Issuer:       issuer,
		Metrics:      m,
		CORSOrigins:  cfg.CORSOrigins,
		SecureCookie: cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.StorageDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
