package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invara/invoicing_backend/internal/dto"
	"github.com/invara/invoicing_backend/internal/middleware"

	portssvc "github.com/invara/invoicing_backend/internal/core/ports/services"
)

// creditNoteHandler handles reversals of paid invoices.
type creditNoteHandler struct {
	creditNoteService portssvc.CreditNoteSvcFacade
}

func newCreditNoteHandler(cns portssvc.CreditNoteSvcFacade) *creditNoteHandler {
	return &creditNoteHandler{creditNoteService: cns}
}

func registerCreditNoteRoutes(tenants *gin.RouterGroup, creditNoteService portssvc.CreditNoteSvcFacade) {
	h := newCreditNoteHandler(creditNoteService)

	tenants.POST("/:tenantID/invoices/:invoiceID/reverse", h.reverseInvoice)
	tenants.GET("/:tenantID/invoices/:invoiceID/credit-notes", h.listCreditNotes)
	tenants.GET("/:tenantID/credit-notes/:creditNoteID", h.getCreditNote)
}

// reverseInvoice godoc
// @Summary Reverse a paid invoice
// @Description Issues a sealed credit note against a paid invoice and flips the invoice to CREDITED. The original record is never rewritten.
// @Tags credit-notes
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param invoiceID path string true "Invoice ID"
// @Param request body dto.ReverseInvoiceRequest true "Reversal amount and reason"
// @Success 201 {object} dto.CreditNoteResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Invoice not paid"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/reverse [post]
func (h *creditNoteHandler) reverseInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReverseInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reverse invoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	creditNote, err := h.creditNoteService.ReverseInvoice(c.Request.Context(), c.Param("tenantID"), c.Param("invoiceID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reverse invoice")
		return
	}

	logger.Info("Credit note issued",
		slog.String("credit_note_id", creditNote.CreditNoteID),
		slog.String("original_invoice_id", creditNote.OriginalInvoiceID))
	c.JSON(http.StatusCreated, dto.ToCreditNoteResponse(creditNote))
}

// listCreditNotes godoc
// @Summary List credit notes for an invoice
// @Tags credit-notes
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {array} dto.CreditNoteResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/credit-notes [get]
func (h *creditNoteHandler) listCreditNotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	creditNotes, err := h.creditNoteService.ListCreditNotesByInvoice(c.Request.Context(), c.Param("tenantID"), c.Param("invoiceID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list credit notes")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditNoteResponses(creditNotes))
}

// getCreditNote godoc
// @Summary Get a credit note
// @Tags credit-notes
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param creditNoteID path string true "Credit note ID"
// @Success 200 {object} dto.CreditNoteResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/credit-notes/{creditNoteID} [get]
func (h *creditNoteHandler) getCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	creditNote, err := h.creditNoteService.GetCreditNoteByID(c.Request.Context(), c.Param("tenantID"), c.Param("creditNoteID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve credit note")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditNoteResponse(creditNote))
}
