package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caioln/sfa-service/internal/model"
)

func (h *Handler) registerProcessRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/administrative-processes", h.listProcesses)
	router.GET("/administrative-processes/:id", h.getProcess)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/administrative-processes", h.createProcess)
	protected.PUT("/administrative-processes/:id", h.updateProcess)
	protected.DELETE("/administrative-processes/:id", h.deleteProcess)
}

type processCreateRequest struct {
	ContractID          int64  `json:"contract_id" binding:"required"`
	NumeroProcesso      string `json:"numero_processo"`
	ModalidadeLicitacao string `json:"modalidade_licitacao"`
	Justificativa       string `json:"justificativa"`
	SituacaoFisica      string `json:"situacao_fisica"`
}

func (h *Handler) createProcess(c *gin.Context) {
	var req processCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	process := model.AdministrativeProcess{
		ContractID:          req.ContractID,
		NumeroProcesso:      req.NumeroProcesso,
		ModalidadeLicitacao: req.ModalidadeLicitacao,
		Justificativa:       req.Justificativa,
		SituacaoFisica:      req.SituacaoFisica,
	}
	if err := h.processes.CreateProcess(c.Request.Context(), &process); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, process)
}

func (h *Handler) listProcesses(c *gin.Context) {
	page, limit, err := pageParams(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	contractID, err := queryInt64(c, "contract_id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	processes, info, err := h.processes.ListProcesses(c.Request.Context(), model.ProcessFilter{ContractID: contractID}, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(processes, info))
}

func (h *Handler) getProcess(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	process, err := h.processes.GetProcess(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, process)
}

type processUpdateRequest struct {
	NumeroProcesso      *string `json:"numero_processo"`
	ModalidadeLicitacao *string `json:"modalidade_licitacao"`
	Justificativa       *string `json:"justificativa"`
	SituacaoFisica      *string `json:"situacao_fisica"`
}

func (h *Handler) updateProcess(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	var req processUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	process, err := h.processes.UpdateProcess(c.Request.Context(), id, model.ProcessUpdate{
		NumeroProcesso:      req.NumeroProcesso,
		ModalidadeLicitacao: req.ModalidadeLicitacao,
		Justificativa:       req.Justificativa,
		SituacaoFisica:      req.SituacaoFisica,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, process)
}

func (h *Handler) deleteProcess(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if err := h.processes.DeleteProcess(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
