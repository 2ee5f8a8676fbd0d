package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caioln/sfa-service/internal/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) registerAgreementRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/agreements", h.listAgreements)
	router.GET("/agreements/:id", h.getAgreement)
	router.GET("/stats/agreements/count", h.countAgreements)
	router.GET("/charts/agreements/value-comparison", h.valueComparisonChart)
	router.GET("/charts/agreements/paid-evolution", h.paidEvolutionChart)

	router.GET("/agreement-values", h.listAgreementValues)
	router.GET("/agreement-values/:id", h.getAgreementValues)

	router.GET("/agreement-dates", h.listAgreementDates)
	router.GET("/agreement-dates/:id", h.getAgreementDates)
	router.GET("/stats/agreement-dates/count", h.countAgreementDates)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/agreements/import", h.importAgreements)
	protected.PUT("/agreements/:id", h.updateAgreement)
	protected.DELETE("/agreements/:id", h.deleteAgreement)
	protected.DELETE("/agreements", h.deleteAllAgreements)
	protected.PUT("/agreement-values/:id", h.updateAgreementValues)
	protected.DELETE("/agreement-values/:id", h.deleteAgreementValues)
	protected.PUT("/agreement-dates/:id", h.updateAgreementDates)
	protected.DELETE("/agreement-dates/:id", h.deleteAgreementDates)
}

func (h *Handler) importAgreements(c *gin.Context) {
	sources, err := readSources(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	report, err := h.agreements.ImportAgreements(c.Request.Context(), sources)
	if err != nil {
		if report != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "report": report})
			return
		}
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func agreementFilter(c *gin.Context) model.AgreementFilter {
	return model.AgreementFilter{
		CodigoPlanoTrabalho: queryString(c, "codigo_plano_trabalho"),
		Concedente:          queryString(c, "concedente"),
		Convenente:          queryString(c, "convenente"),
		Objeto:              queryString(c, "objeto"),
	}
}

func (h *Handler) listAgreements(c *gin.Context) {
	page, limit, err := pageParams(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	agreements, info, err := h.agreements.ListAgreements(c.Request.Context(), agreementFilter(c), page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(agreements, info))
}

func (h *Handler) countAgreements(c *gin.Context) {
	total, err := h.agreements.CountAgreements(c.Request.Context(), agreementFilter(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *Handler) getAgreement(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	agreement, err := h.agreements.GetAgreement(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreement)
}

type agreementUpdateRequest struct {
	CodigoPlanoTrabalho *string `json:"codigo_plano_trabalho"`
	Concedente          *string `json:"concedente"`
	Convenente          *string `json:"convenente"`
	Objeto              *string `json:"objeto"`
}

func (h *Handler) updateAgreement(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	var req agreementUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	agreement, err := h.agreements.UpdateAgreement(c.Request.Context(), id, model.AgreementUpdate{
		CodigoPlanoTrabalho: req.CodigoPlanoTrabalho,
		Concedente:          req.Concedente,
		Convenente:          req.Convenente,
		Objeto:              req.Objeto,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreement)
}

func (h *Handler) deleteAgreement(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if err := h.agreements.DeleteAgreement(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteAllAgreements(c *gin.Context) {
	if err := h.agreements.DeleteAllAgreements(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listAgreementValues(c *gin.Context) {
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
	values, info, err := h.agreements.ListAgreementValues(c.Request.Context(), model.AgreementValuesFilter{AgreementID: agreementID}, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(values, info))
}

func (h *Handler) getAgreementValues(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	values, err := h.agreements.GetAgreementValues(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

type agreementValuesUpdateRequest struct {
	ValorInicialTotal                   *float64 `json:"valor_inicial_total"`
	ValorInicialRepasseConcedente       *float64 `json:"valor_inicial_repasse_concedente"`
	ValorInicialContrapartidaConvenente *float64 `json:"valor_inicial_contrapartida_convenente"`
	ValorAtualizadoTotal                *float64 `json:"valor_atualizado_total"`
	ValorPago                           *float64 `json:"valor_pago"`
}

func (h *Handler) updateAgreementValues(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	var req agreementValuesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	values, err := h.agreements.UpdateAgreementValues(c.Request.Context(), id, model.AgreementValuesUpdate{
		ValorInicialTotal:                   req.ValorInicialTotal,
		ValorInicialRepasseConcedente:       req.ValorInicialRepasseConcedente,
		ValorInicialContrapartidaConvenente: req.ValorInicialContrapartidaConvenente,
		ValorAtualizadoTotal:                req.ValorAtualizadoTotal,
		ValorPago:                           req.ValorPago,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

func (h *Handler) deleteAgreementValues(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if err := h.agreements.DeleteAgreementValues(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listAgreementDates(c *gin.Context) {
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
	dates, info, err := h.agreements.ListAgreementDates(c.Request.Context(), model.AgreementDatesFilter{AgreementID: agreementID}, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(dates, info))
}

func (h *Handler) countAgreementDates(c *gin.Context) {
	agreementID, err := queryInt64(c, "agreement_id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	total, err := h.agreements.CountAgreementDates(c.Request.Context(), model.AgreementDatesFilter{AgreementID: agreementID})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *Handler) getAgreementDates(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	dates, err := h.agreements.GetAgreementDates(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}

type agreementDatesUpdateRequest struct {
	DataAssinatura    *string `json:"data_assinatura"`
	DataTermino       *string `json:"data_termino"`
	DataPublicacaoCE  *string `json:"data_publicacao_ce"`
	DataPublicacaoDOE *string `json:"data_publicacao_doe"`
}

func (req agreementDatesUpdateRequest) toUpdate() (model.AgreementDatesUpdate, error) {
	var update model.AgreementDatesUpdate
	var err error
	if update.DataAssinatura, err = parseDateField(req.DataAssinatura); err != nil {
		return update, err
	}
	if update.DataTermino, err = parseDateField(req.DataTermino); err != nil {
		return update, err
	}
	if update.DataPublicacaoCE, err = parseDateField(req.DataPublicacaoCE); err != nil {
		return update, err
	}
	if update.DataPublicacaoDOE, err = parseDateField(req.DataPublicacaoDOE); err != nil {
		return update, err
	}
	return update, nil
}

func (h *Handler) updateAgreementDates(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	var req agreementDatesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		h.handleError(c, err)
		return
	}
	dates, err := h.agreements.UpdateAgreementDates(c.Request.Context(), id, update)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}

func (h *Handler) deleteAgreementDates(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if err := h.agreements.DeleteAgreementDates(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// valueComparisonChart devolve a comparação anual como planilha com gráfico;
// com ?format=json devolve apenas as linhas agregadas.
func (h *Handler) valueComparisonChart(c *gin.Context) {
	if c.Query("format") == "json" {
		rows, err := h.agreements.ValueComparisonByYear(c.Request.Context())
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": rows})
		return
	}
	content, err := h.agreements.ValueComparisonChart(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\"comparativo_valores.xlsx\"")
	c.Data(http.StatusOK, xlsxContentType, content)
}

func (h *Handler) paidEvolutionChart(c *gin.Context) {
	if c.Query("format") == "json" {
		rows, err := h.agreements.PaidByYear(c.Request.Context())
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": rows})
		return
	}
	content, err := h.agreements.PaidEvolutionChart(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\"evolucao_pagamentos.xlsx\"")
	c.Data(http.StatusOK, xlsxContentType, content)
}
