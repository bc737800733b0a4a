package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invara/invoicing_backend/internal/dto"
	"github.com/invara/invoicing_backend/internal/middleware"

	portssvc "github.com/invara/invoicing_backend/internal/core/ports/services"
)

// invoiceHandler handles the invoice lifecycle. Every status change goes
// through the service facade; there is no direct status endpoint.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

func registerInvoiceRoutes(tenants *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := tenants.Group("/:tenantID/invoices")
	{
		invoices.POST("", h.createDraft)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID", h.updateDraft)
		invoices.DELETE("/:invoiceID", h.deleteDraft)
		invoices.POST("/:invoiceID/issue", h.issueInvoice)
		invoices.POST("/:invoiceID/send", h.markSent)
		invoices.POST("/:invoiceID/view", h.markViewed)
		invoices.POST("/:invoiceID/payments", h.recordPayment)
		invoices.POST("/:invoiceID/void", h.voidInvoice)
	}
}

// createDraft godoc
// @Summary Create a draft invoice
// @Description Creates a freely editable draft. Drafts carry no number, hash or token.
// @Tags invoices
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param invoice body dto.CreateInvoiceRequest true "Draft details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices [post]
func (h *invoiceHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create draft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.CreateDraft(c.Request.Context(), c.Param("tenantID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create draft")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Returns the tenant's invoices newest first, paginated.
// @Tags invoices
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), c.Param("tenantID"), userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Returns the invoice with its line items and, when issued, its frozen snapshots.
// @Tags invoices
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("tenantID"), c.Param("invoiceID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateDraft godoc
// @Summary Update a draft invoice
// @Description Replaces a draft's editable content. Rejected once the invoice leaves DRAFT.
// @Tags invoices
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param invoiceID path string true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Not a draft"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID} [put]
func (h *invoiceHandler) updateDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update draft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.UpdateDraft(c.Request.Context(), c.Param("tenantID"), c.Param("invoiceID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// deleteDraft godoc
// @Summary Delete a draft invoice
// @Description Deletes a draft. Issued invoices can only be voided, never deleted.
// @Tags invoices
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param invoiceID path string true "Invoice ID"
// @Success 204 "Deleted"
// @Failure 409 {object} map[string]string "Not a draft"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID} [delete]
func (h *invoiceHandler) deleteDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.DeleteDraft(c.Request.Context(), c.Param("tenantID"), c.Param("invoiceID"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete draft")
		return
	}
	c.Status(http.StatusNoContent)
}

// issueInvoice godoc
// @Summary Issue an invoice
// @Description Runs the atomic issuance unit: assigns the sequential number, freezes party snapshots, seals the content hash and mints the public verification token.
// @Tags invoices
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.IssueInvoiceResponse
// @Failure 409 {object} map[string]string "Not a draft"
// @Failure 422 {object} map[string]string "Precondition failed"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/issue [post]
func (h *invoiceHandler) issueInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.invoiceService.IssueInvoice(c.Request.Context(), c.Param("tenantID"), c.Param("invoiceID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to issue invoice")
		return
	}

	logger.Info("Invoice issued",
		slog.String("invoice_id", c.Param("invoiceID")),
		slog.String("display_number", resp.Invoice.DisplayNumber))
	c.JSON(http.StatusOK, resp)
}

// markSent godoc
// @Summary Mark an invoice as sent
// @Tags invoices
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 409 {object} map[string]string "Invalid transition"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/send [post]
func (h *invoiceHandler) markSent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.MarkSent(c.Request.Context(), c.Param("tenantID"), c.Param("invoiceID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark invoice as sent")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// markViewed godoc
// @Summary Mark an invoice as viewed
// @Tags invoices
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 409 {object} map[string]string "Invalid transition"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/view [post]
func (h *invoiceHandler) markViewed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.MarkViewed(c.Request.Context(), c.Param("tenantID"), c.Param("invoiceID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark invoice as viewed")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// recordPayment godoc
// @Summary Record a payment
// @Description Applies a payment to an issued invoice. The invoice flips to PAID once the total is fully covered; overpayment is rejected.
// @Tags invoices
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param invoiceID path string true "Invoice ID"
// @Param payment body dto.RecordPaymentRequest true "Payment amount"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/payments [post]
func (h *invoiceHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for record payment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), c.Param("tenantID"), c.Param("invoiceID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// voidInvoice godoc
// @Summary Void an invoice
// @Description Voids an unpaid issued invoice with a mandatory reason. The sealed content stays intact and verifiable.
// @Tags invoices
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param invoiceID path string true "Invoice ID"
// @Param request body dto.VoidInvoiceRequest true "Void reason"
// @Success 204 "Voided"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/void [post]
func (h *invoiceHandler) voidInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.VoidInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for void invoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.VoidInvoice(c.Request.Context(), c.Param("tenantID"), c.Param("invoiceID"), req, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to void invoice")
		return
	}
	c.Status(http.StatusNoContent)
}
