package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caioln/sfa-service/internal/model"
)

func (h *Handler) registerContractRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/contracts", h.listContracts)
	router.GET("/contracts/:id", h.getContract)
	router.GET("/contracts/:id/pdf", h.contractPDF)
	router.GET("/stats/contracts/count", h.countContracts)

	router.GET("/contract-values", h.listContractValues)
	router.GET("/contract-values/:id", h.getContractValues)

	router.GET("/contract-dates", h.listContractDates)
	router.GET("/contract-dates/:id", h.getContractDates)
	router.GET("/stats/contract-dates/count", h.countContractDates)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/contracts/import", h.importContracts)
	protected.PUT("/contracts/:id", h.updateContract)
	protected.DELETE("/contracts/:id", h.deleteContract)
	protected.PUT("/contract-values/:id", h.updateContractValues)
	protected.DELETE("/contract-values/:id", h.deleteContractValues)
	protected.PUT("/contract-dates/:id", h.updateContractDates)
	protected.DELETE("/contract-dates/:id", h.deleteContractDates)
}

func (h *Handler) importContracts(c *gin.Context) {
	sources, err := readSources(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	report, err := h.contracts.ImportContracts(c.Request.Context(), sources)
	if err != nil {
		// O lote não é atômico: devolve o relatório parcial junto do erro.
		if report != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "report": report})
			return
		}
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func contractFilter(c *gin.Context) model.ContractFilter {
	return model.ContractFilter{
		NumeroContrato: queryString(c, "numero_contrato"),
		CpfCnpj:        queryString(c, "cpf_cnpj"),
		Contratante:    queryString(c, "contratante"),
		Contratado:     queryString(c, "contratado"),
		TipoObjeto:     queryString(c, "tipo_objeto"),
		Objeto:         queryString(c, "objeto"),
	}
}

func (h *Handler) listContracts(c *gin.Context) {
	page, limit, err := pageParams(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	contracts, info, err := h.contracts.ListContracts(c.Request.Context(), contractFilter(c), page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(contracts, info))
}

func (h *Handler) countContracts(c *gin.Context) {
	total, err := h.contracts.CountContracts(c.Request.Context(), contractFilter(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *Handler) getContract(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	contract, err := h.contracts.GetContract(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) contractPDF(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.contracts.ContractDocument(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\"contrato_"+c.Param("id")+".pdf\"")
	c.Data(http.StatusOK, "application/pdf", content)
}

type contractUpdateRequest struct {
	NumeroContrato *string `json:"numero_contrato"`
	CpfCnpj        *string `json:"cpf_cnpj"`
	Contratante    *string `json:"contratante"`
	Contratado     *string `json:"contratado"`
	TipoObjeto     *string `json:"tipo_objeto"`
	Objeto         *string `json:"objeto"`
}

func (h *Handler) updateContract(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	var req contractUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contract, err := h.contracts.UpdateContract(c.Request.Context(), id, model.ContractUpdate{
		NumeroContrato: req.NumeroContrato,
		CpfCnpj:        req.CpfCnpj,
		Contratante:    req.Contratante,
		Contratado:     req.Contratado,
		TipoObjeto:     req.TipoObjeto,
		Objeto:         req.Objeto,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) deleteContract(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if err := h.contracts.DeleteContract(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func contractValuesFilter(c *gin.Context) (model.ContractValuesFilter, error) {
	var f model.ContractValuesFilter
	var err error
	if f.ContractID, err = queryInt64(c, "contract_id"); err != nil {
		return f, err
	}
	ranges := []struct {
		key    string
		target **float64
	}{
		{"min_valor_original", &f.MinValorOriginal},
		{"max_valor_original", &f.MaxValorOriginal},
		{"min_valor_aditivo", &f.MinValorAditivo},
		{"max_valor_aditivo", &f.MaxValorAditivo},
		{"min_valor_atualizado", &f.MinValorAtualizado},
		{"max_valor_atualizado", &f.MaxValorAtualizado},
		{"min_valor_empenhado", &f.MinValorEmpenhado},
		{"max_valor_empenhado", &f.MaxValorEmpenhado},
		{"min_valor_pago", &f.MinValorPago},
		{"max_valor_pago", &f.MaxValorPago},
	}
	for _, r := range ranges {
		if *r.target, err = queryFloat(c, r.key); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (h *Handler) listContractValues(c *gin.Context) {
	page, limit, err := pageParams(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	filter, err := contractValuesFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	values, info, err := h.contracts.ListContractValues(c.Request.Context(), filter, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(values, info))
}

func (h *Handler) getContractValues(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	values, err := h.contracts.GetContractValues(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

type contractValuesUpdateRequest struct {
	ValorOriginal   *float64 `json:"valor_original"`
	ValorAditivo    *float64 `json:"valor_aditivo"`
	ValorAtualizado *float64 `json:"valor_atualizado"`
	ValorEmpenhado  *float64 `json:"valor_empenhado"`
	ValorPago       *float64 `json:"valor_pago"`
}

func (h *Handler) updateContractValues(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	var req contractValuesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	values, err := h.contracts.UpdateContractValues(c.Request.Context(), id, model.ContractValuesUpdate{
		ValorOriginal:   req.ValorOriginal,
		ValorAditivo:    req.ValorAditivo,
		ValorAtualizado: req.ValorAtualizado,
		ValorEmpenhado:  req.ValorEmpenhado,
		ValorPago:       req.ValorPago,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

func (h *Handler) deleteContractValues(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if err := h.contracts.DeleteContractValues(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func contractDatesFilter(c *gin.Context) (model.ContractDatesFilter, error) {
	contractID, err := queryInt64(c, "contract_id")
	if err != nil {
		return model.ContractDatesFilter{}, err
	}
	return model.ContractDatesFilter{ContractID: contractID}, nil
}

func (h *Handler) listContractDates(c *gin.Context) {
	page, limit, err := pageParams(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	filter, err := contractDatesFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	dates, info, err := h.contracts.ListContractDates(c.Request.Context(), filter, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(dates, info))
}

func (h *Handler) countContractDates(c *gin.Context) {
	filter, err := contractDatesFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	total, err := h.contracts.CountContractDates(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *Handler) getContractDates(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	dates, err := h.contracts.GetContractDates(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}

type contractDatesUpdateRequest struct {
	DataAssinatura         *string `json:"data_assinatura"`
	DataTerminoOriginal    *string `json:"data_termino_original"`
	DataTerminoAposAditivo *string `json:"data_termino_apos_aditivo"`
	DataRescisao           *string `json:"data_rescisao"`
	DataPublicacaoDOE      *string `json:"data_publicacao_doe"`
}

func (req contractDatesUpdateRequest) toUpdate() (model.ContractDatesUpdate, error) {
	var update model.ContractDatesUpdate
	var err error
	if update.DataAssinatura, err = parseDateField(req.DataAssinatura); err != nil {
		return update, err
	}
	if update.DataTerminoOriginal, err = parseDateField(req.DataTerminoOriginal); err != nil {
		return update, err
	}
	if update.DataTerminoAposAditivo, err = parseDateField(req.DataTerminoAposAditivo); err != nil {
		return update, err
	}
	if update.DataRescisao, err = parseDateField(req.DataRescisao); err != nil {
		return update, err
	}
	if update.DataPublicacaoDOE, err = parseDateField(req.DataPublicacaoDOE); err != nil {
		return update, err
	}
	return update, nil
}

func (h *Handler) updateContractDates(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	var req contractDatesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		h.handleError(c, err)
		return
	}
	dates, err := h.contracts.UpdateContractDates(c.Request.Context(), id, update)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}

func (h *Handler) deleteContractDates(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if err := h.contracts.DeleteContractDates(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
