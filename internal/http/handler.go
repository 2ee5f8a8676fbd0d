package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/caioln/sfa-service/internal/ingest"
	"github.com/caioln/sfa-service/internal/service"
)

type Handler struct {
	contracts      *service.ContractService
	processes      *service.ProcessService
	agreements     *service.AgreementService
	accountability *service.AccountabilityService
	log            zerolog.Logger
}

func NewHandler(
	contracts *service.ContractService,
	processes *service.ProcessService,
	agreements *service.AgreementService,
	accountability *service.AccountabilityService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		contracts:      contracts,
		processes:      processes,
		agreements:     agreements,
		accountability: accountability,
		log:            log,
	}
}

// Register monta as rotas. Leituras são públicas; tudo que altera estado
// passa pelo middleware de autenticação.
func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	h.registerContractRoutes(router, authMiddleware)
	h.registerProcessRoutes(router, authMiddleware)
	h.registerAgreementRoutes(router, authMiddleware)
	h.registerAccountabilityRoutes(router, authMiddleware)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrEmptyBatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func listResponse(data interface{}, info service.PageInfo) gin.H {
	return gin.H{
		"data":        data,
		"page":        info.Page,
		"limit":       info.Limit,
		"total":       info.Total,
		"total_pages": info.TotalPages,
	}
}

// readSources abre os arquivos do campo multipart "files" e lê cada um como
// planilha fonte.
func readSources(c *gin.Context) ([]*ingest.Source, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, service.ErrInvalidInput
	}
	files := form.File["files"]

	sources := make([]*ingest.Source, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		source, err := ingest.ReadSource(header.Filename, file)
		file.Close()
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, nil
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, service.ErrInvalidInput
	}
	return id, nil
}

// pageParams lê page/limit da query string. Zero significa ausente; os
// defaults ficam por conta do serviço.
func pageParams(c *gin.Context) (int, int, error) {
	page, err := queryIntValue(c, "page")
	if err != nil {
		return 0, 0, err
	}
	limit, err := queryIntValue(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func queryIntValue(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.ErrInvalidInput
	}
	return value, nil
}

func queryString(c *gin.Context, key string) *string {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	return &raw
}

func queryInt64(c *gin.Context, key string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, service.ErrInvalidInput
	}
	return &value, nil
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, service.ErrInvalidInput
	}
	return &value, nil
}

// parseDate aceita datas em ISO ou no formato brasileiro.
func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{"2006-01-02", "02/01/2006", time.RFC3339}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, service.ErrInvalidInput
}

func parseDateField(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	return parseDate(*raw)
}
