package handler

import (
	"net/http"

	"github.com/AlexZinkM/vendora/internal/service"
	"github.com/AlexZinkM/vendora/internal/validation"
)

// VerificationHandler serves the KYC endpoints
type VerificationHandler struct {
	svc *service.VerificationService
}

func NewVerificationHandler(svc *service.VerificationService) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

// SubmitBusiness handles POST /verification/business
// @Summary      Submit business verification documents
// @Description  Documents are data URLs (PDF, PNG, JPEG) and are stored encrypted
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        request  body      validation.BusinessVerificationInput  true  "ID and CAC documents"
// @Success      201      {object}  model.SubmitVerificationResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /verification/business [post]
func (h *VerificationHandler) SubmitBusiness(w http.ResponseWriter, r *http.Request) {
	var in validation.BusinessVerificationInput
	if !decode(w, r, &in) {
		return
	}

	res, err := h.svc.Submit(r.Context(), userID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Status handles GET /verification/status
// @Summary      Verification status
// @Tags         verification
// @Produce      json
// @Success      200  {object}  model.VerificationStatusResponse
// @Router       /verification/status [get]
func (h *VerificationHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
