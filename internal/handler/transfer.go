package handler

import (
	"net/http"

	"github.com/AlexZinkM/vendora/internal/model"
	"github.com/AlexZinkM/vendora/internal/service"
	"github.com/AlexZinkM/vendora/internal/validation"
	"github.com/AlexZinkM/vendora/internal/wizard"
)

// TransferHandler drives the send wizards. {flow} is crypto or fiat.
type TransferHandler struct {
	svc *service.TransferService
}

func NewTransferHandler(svc *service.TransferService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

func flowKind(w http.ResponseWriter, r *http.Request) (wizard.Kind, bool) {
	kind, ok := wizard.ParseKind(r.PathValue("flow"))
	if !ok {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "Unknown transfer flow", Code: "NOT_FOUND"})
	}
	return kind, ok
}

// State handles GET /wallet/send/{flow}
// @Summary      Current transfer step
// @Tags         transfer
// @Produce      json
// @Param        flow  path      string  true  "crypto or fiat"
// @Success      200   {object}  model.TransferState
// @Router       /wallet/send/{flow} [get]
func (h *TransferHandler) State(w http.ResponseWriter, r *http.Request) {
	kind, ok := flowKind(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.State(r.Context(), userID(r), kind))
}

// Open handles POST /wallet/send/{flow}/open
// @Summary      Open the transfer wizard
// @Tags         transfer
// @Produce      json
// @Param        flow  path      string  true  "crypto or fiat"
// @Success      200   {object}  model.TransferState
// @Router       /wallet/send/{flow}/open [post]
func (h *TransferHandler) Open(w http.ResponseWriter, r *http.Request) {
	kind, ok := flowKind(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Open(r.Context(), userID(r), kind))
}

// Close handles POST /wallet/send/{flow}/close
// @Summary      Close the transfer wizard and discard its data
// @Tags         transfer
// @Produce      json
// @Param        flow  path      string  true  "crypto or fiat"
// @Success      200   {object}  model.TransferState
// @Router       /wallet/send/{flow}/close [post]
func (h *TransferHandler) Close(w http.ResponseWriter, r *http.Request) {
	kind, ok := flowKind(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Close(r.Context(), userID(r), kind))
}

// Recipient handles POST /wallet/send/{flow}/recipient
// @Summary      Choose a saved or new recipient (fiat)
// @Tags         transfer
// @Accept       json
// @Produce      json
// @Param        flow     path      string                  true  "fiat"
// @Param        request  body      model.RecipientRequest  true  "Recipient type"
// @Success      200      {object}  model.TransferState
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/send/{flow}/recipient [post]
func (h *TransferHandler) Recipient(w http.ResponseWriter, r *http.Request) {
	kind, ok := flowKind(w, r)
	if !ok {
		return
	}
	var req model.RecipientRequest
	if !decode(w, r, &req) {
		return
	}

	st, err := h.svc.ChooseRecipient(r.Context(), userID(r), kind, req.RecipientType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Details handles POST /wallet/send/{flow}/details
// @Summary      Submit transfer details
// @Description  Body is validation.SendCryptoInput for crypto and validation.SendFiatInput for fiat
// @Tags         transfer
// @Accept       json
// @Produce      json
// @Param        flow     path      string                      true  "crypto or fiat"
// @Param        request  body      validation.SendCryptoInput  true  "Transfer details"
// @Success      200      {object}  model.TransferState
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/send/{flow}/details [post]
func (h *TransferHandler) Details(w http.ResponseWriter, r *http.Request) {
	kind, ok := flowKind(w, r)
	if !ok {
		return
	}

	var (
		st  *model.TransferState
		err error
	)
	switch kind {
	case wizard.KindCrypto:
		var in validation.SendCryptoInput
		if !decode(w, r, &in) {
			return
		}
		st, err = h.svc.SubmitCryptoDetails(r.Context(), userID(r), in)
	case wizard.KindFiat:
		var in validation.SendFiatInput
		if !decode(w, r, &in) {
			return
		}
		st, err = h.svc.SubmitFiatDetails(r.Context(), userID(r), in)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Confirm handles POST /wallet/send/{flow}/confirm
// @Summary      Accept the transfer summary
// @Tags         transfer
// @Produce      json
// @Param        flow  path      string  true  "crypto or fiat"
// @Success      200   {object}  model.TransferState
// @Failure      409   {object}  model.ErrorResponse
// @Router       /wallet/send/{flow}/confirm [post]
func (h *TransferHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	kind, ok := flowKind(w, r)
	if !ok {
		return
	}

	st, err := h.svc.Confirm(r.Context(), userID(r), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Code handles POST /wallet/send/{flow}/code
// @Summary      Edit or submit the authenticator code
// @Description  action is input, paste, backspace, left, right or submit. {"code": "123456"} pastes and submits in one call
// @Tags         transfer
// @Accept       json
// @Produce      json
// @Param        flow     path      string             true  "crypto or fiat"
// @Param        request  body      model.CodeRequest  true  "Code action"
// @Success      200      {object}  model.TransferState
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/send/{flow}/code [post]
func (h *TransferHandler) Code(w http.ResponseWriter, r *http.Request) {
	kind, ok := flowKind(w, r)
	if !ok {
		return
	}
	var req model.CodeRequest
	if !decode(w, r, &req) {
		return
	}

	st, err := h.svc.Code(r.Context(), userID(r), kind, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
