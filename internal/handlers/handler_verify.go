package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invara/invoicing_backend/internal/middleware"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/invara/invoicing_backend/internal/core/ports/services"
)

// verifyHandler serves the unauthenticated verification portal.
type verifyHandler struct {
	verificationService portssvc.VerificationSvcFacade
}

func newVerifyHandler(vs portssvc.VerificationSvcFacade) *verifyHandler {
	return &verifyHandler{verificationService: vs}
}

// registerVerifyRoutes mounts the public verification endpoint behind a
// per-IP rate limit.
func registerVerifyRoutes(r *gin.Engine, verificationService portssvc.VerificationSvcFacade, limiterInstance *limiter.Limiter) {
	h := newVerifyHandler(verificationService)
	r.GET("/verify/:token", middleware.RateLimit(limiterInstance), h.verify)
}

// verify godoc
// @Summary Verify a document
// @Description Resolves a verification token to a redacted summary and reports whether the stored content still matches its seal. Unknown and malformed tokens return the same not-verified shape.
// @Tags verify
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} dto.VerifyResponse
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /verify/{token} [get]
func (h *verifyHandler) verify(c *gin.Context) {
	// Always 200. Status codes must not leak whether a token exists.
	resp := h.verificationService.Verify(c.Request.Context(), c.Param("token"))
	c.JSON(http.StatusOK, resp)
}
