package api

import (
	"net/http"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/AlexZinkM/vendora/internal/auth"
	"github.com/AlexZinkM/vendora/internal/handler"
	"github.com/AlexZinkM/vendora/internal/logging"
	"github.com/AlexZinkM/vendora/internal/metrics"
	"github.com/AlexZinkM/vendora/internal/service"
)

// Services are the dependencies of the router.
type Services struct {
	Auth         *service.AuthService
	Verification *service.VerificationService
	Wallet       *service.WalletService
	Transfer     *service.TransferService
	Issuer       *auth.Issuer
	Metrics      *metrics.Metrics
	CORSOrigins  []string
	SecureCookie bool
}

// SetupRouter sets up router with handlers
func SetupRouter(s Services) http.Handler {
	authHandler := handler.NewAuthHandler(s.Auth, s.SecureCookie)
	verificationHandler := handler.NewVerificationHandler(s.Verification)
	walletHandler := handler.NewWalletHandler(s.Wallet)
	transferHandler := handler.NewTransferHandler(s.Transfer)

	mux := http.NewServeMux()
	protected := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, s.Issuer.Middleware(fn))
	}

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.WrapHandler)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}` + "\n"))
	})
	if s.Metrics != nil {
		mux.Handle("GET /metrics", s.Metrics.Handler())
	}

	// Auth endpoints
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /auth/password/forgot", authHandler.ForgotPassword)
	mux.HandleFunc("POST /auth/password/reset", authHandler.ResetPassword)
	protected("GET /auth/me", authHandler.Me)

	// Verification endpoints
	protected("POST /verification/business", verificationHandler.SubmitBusiness)
	protected("GET /verification/status", verificationHandler.Status)

	// Wallet endpoints
	protected("GET /wallet/balance", walletHandler.GetBalance)
	protected("POST /wallet/receive", walletHandler.Receive)
	protected("GET /wallet/transactions", walletHandler.TransactionHistory)
	protected("GET /wallet/beneficiaries", walletHandler.ListBeneficiaries)
	protected("POST /wallet/beneficiaries", walletHandler.CreateBeneficiary)
	protected("PUT /wallet/beneficiaries/{id}", walletHandler.UpdateBeneficiary)
	protected("DELETE /wallet/beneficiaries/{id}", walletHandler.DeleteBeneficiary)

	// Transfer endpoints
	protected("GET /wallet/send/{flow}", transferHandler.State)
	protected("POST /wallet/send/{flow}/open", transferHandler.Open)
	protected("POST /wallet/send/{flow}/close", transferHandler.Close)
	protected("POST /wallet/send/{flow}/recipient", transferHandler.Recipient)
	protected("POST /wallet/send/{flow}/details", transferHandler.Details)
	protected("POST /wallet/send/{flow}/confirm", transferHandler.Confirm)
	protected("POST /wallet/send/{flow}/code", transferHandler.Code)

	var h http.Handler = mux
	if s.Metrics != nil {
		h = s.Metrics.Middleware(h)
	}
	h = logging.Middleware(h)
	return newCORS(s.CORSOrigins).Handler(h)
}

func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
}
