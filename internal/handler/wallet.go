package handler

import (
	"net/http"

	"github.com/AlexZinkM/vendora/internal/model"
	"github.com/AlexZinkM/vendora/internal/service"
	"github.com/AlexZinkM/vendora/internal/validation"
)

// WalletHandler serves balances, transactions and beneficiaries
type WalletHandler struct {
	svc *service.WalletService
}

func NewWalletHandler(svc *service.WalletService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// GetBalance handles GET /wallet/balance
// @Summary      Get wallet balance (NGN = USDC * rate)
// @Description  Gets the USDC balance with its naira value. The naira value is left out when no rate is available
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.svc.Balance(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// Receive handles POST /wallet/receive
// @Summary      Deposit address
// @Description  Returns the deposit address for the asset and chain with a base64 PNG QR code
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      validation.ReceiveCryptoInput  true  "Asset and chain"
// @Success      200      {object}  model.ReceiveResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/receive [post]
func (h *WalletHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var in validation.ReceiveCryptoInput
	if !decode(w, r, &in) {
		return
	}

	res, err := h.svc.Receive(in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// TransactionHistory handles GET /wallet/transactions
// @Summary      Transaction history
// @Description  Lists transfers newest first. Dates are YYYY-MM-DD or RFC 3339 and inclusive
// @Tags         wallet
// @Produce      json
// @Param        kind  query     string  false  "crypto or fiat"
// @Param        from  query     string  false  "start date"
// @Param        to    query     string  false  "end date"
// @Success      200   {object}  model.TransactionListResponse
// @Failure      400   {object}  model.ErrorResponse
// @Router       /wallet/transactions [get]
func (h *WalletHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := service.ParseTransactionFilter(q.Get("kind"), q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	txs, err := h.svc.ListTransactions(r.Context(), userID(r), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := model.TransactionListResponse{Transactions: make([]model.Transaction, 0, len(txs))}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, model.NewTransaction(tx))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListBeneficiaries handles GET /wallet/beneficiaries
// @Summary      Saved recipients
// @Tags         beneficiaries
// @Produce      json
// @Param        kind  query     string  false  "fiat or crypto"
// @Success      200   {object}  model.BeneficiaryListResponse
// @Router       /wallet/beneficiaries [get]
func (h *WalletHandler) ListBeneficiaries(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListBeneficiaries(r.Context(), userID(r), r.URL.Query().Get("kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := model.BeneficiaryListResponse{Beneficiaries: make([]model.Beneficiary, 0, len(list))}
	for _, b := range list {
		resp.Beneficiaries = append(resp.Beneficiaries, model.NewBeneficiary(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateBeneficiary handles POST /wallet/beneficiaries
// @Summary      Save a recipient
// @Tags         beneficiaries
// @Accept       json
// @Produce      json
// @Param        request  body      validation.BeneficiaryInput  true  "Recipient"
// @Success      201      {object}  model.Beneficiary
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/beneficiaries [post]
func (h *WalletHandler) CreateBeneficiary(w http.ResponseWriter, r *http.Request) {
	var in validation.BeneficiaryInput
	if !decode(w, r, &in) {
		return
	}

	b, err := h.svc.CreateBeneficiary(r.Context(), userID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.NewBeneficiary(*b))
}

// UpdateBeneficiary handles PUT /wallet/beneficiaries/{id}
// @Summary      Edit a recipient
// @Tags         beneficiaries
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Beneficiary ID"
// @Param        request  body      validation.BeneficiaryInput  true  "Recipient"
// @Success      200      {object}  model.Beneficiary
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallet/beneficiaries/{id} [put]
func (h *WalletHandler) UpdateBeneficiary(w http.ResponseWriter, r *http.Request) {
	var in validation.BeneficiaryInput
	if !decode(w, r, &in) {
		return
	}

	b, err := h.svc.UpdateBeneficiary(r.Context(), userID(r), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.NewBeneficiary(*b))
}

// DeleteBeneficiary handles DELETE /wallet/beneficiaries/{id}
// @Summary      Remove a recipient
// @Tags         beneficiaries
// @Produce      json
// @Param        id   path      string  true  "Beneficiary ID"
// @Success      200  {object}  model.SuccessResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/beneficiaries/{id} [delete]
func (h *WalletHandler) DeleteBeneficiary(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBeneficiary(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}
