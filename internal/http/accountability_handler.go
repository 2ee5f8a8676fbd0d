package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caioln/sfa-service/internal/model"
)

func (h *Handler) registerAccountabilityRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/accountability", h.listAccountabilities)
	router.GET("/accountability/:id", h.getAccountability)
	router.GET("/stats/accountability/per-status", h.accountabilityPerStatus)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/accountability", h.createAccountability)
	protected.PUT("/accountability/:id", h.updateAccountability)
	protected.DELETE("/accountability/:id", h.deleteAccountability)
}

type accountabilityCreateRequest struct {
	AgreementID   int64  `json:"agreement_id" binding:"required"`
	Status        string `json:"status"`
	Justificativa string `json:"justificativa"`
	TipoPrestacao string `json:"tipo_prestacao"`
	Notas         string `json:"notas"`
}

func (h *Handler) createAccountability(c *gin.Context) {
	var req accountabilityCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	accountability := model.Accountability{
		AgreementID:   req.AgreementID,
		Status:        req.Status,
		Justificativa: req.Justificativa,
		TipoPrestacao: req.TipoPrestacao,
		Notas:         req.Notas,
	}
	if err := h.accountability.CreateAccountability(c.Request.Context(), &accountability); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, accountability)
}

func (h *Handler) listAccountabilities(c *gin.Context) {
	page, limit, err := pageParams(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	agreementID, err := queryInt64(c, "agreement_id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	filter := model.AccountabilityFilter{
		AgreementID:   agreementID,
		Status:        queryString(c, "status"),
		TipoPrestacao: queryString(c, "tipo_prestacao"),
	}
	accountabilities, info, err := h.accountability.ListAccountabilities(c.Request.Context(), filter, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(accountabilities, info))
}

func (h *Handler) accountabilityPerStatus(c *gin.Context) {
	counts, err := h.accountability.StatusCounts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": counts})
}

func (h *Handler) getAccountability(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	accountability, err := h.accountability.GetAccountability(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, accountability)
}

type accountabilityUpdateRequest struct {
	Status        *string `json:"status"`
	Justificativa *string `json:"justificativa"`
	TipoPrestacao *string `json:"tipo_prestacao"`
	Notas         *string `json:"notas"`
}

func (h *Handler) updateAccountability(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	var req accountabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	accountability, err := h.accountability.UpdateAccountability(c.Request.Context(), id, model.AccountabilityUpdate{
		Status:        req.Status,
		Justificativa: req.Justificativa,
		TipoPrestacao: req.TipoPrestacao,
		Notas:         req.Notas,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, accountability)
}

func (h *Handler) deleteAccountability(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if err := h.accountability.DeleteAccountability(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
