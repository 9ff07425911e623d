package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tabsplit/internal/domain"
	"tabsplit/internal/service"
	"tabsplit/internal/xlsxexport"
)

// TurnHandler exposes the audit trail of pipeline turns.
type TurnHandler struct {
	turnService service.TurnService
}

// NewTurnHandler creates a new TurnHandler.
func NewTurnHandler(turnService service.TurnService) *TurnHandler {
	return &TurnHandler{turnService: turnService}
}

// List handles GET /reciepts/turns
// @Summary List recorded pipeline turns
// @Tags turns
// @Produce json
// @Param kind query string false "Filter by turn kind (parse or split)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 200)" default(50)
// @Success 200 {object} map[string]interface{} "Turn records"
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Security BearerAuth
// @Router /reciepts/turns [get]
func (h *TurnHandler) List(c *gin.Context) {
	kind, err := parseKindFilter(c.Query("kind"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid offset: must be an integer")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid limit: must be an integer")
		return
	}

	turns, total, err := h.turnService.List(c.Request.Context(), kind, offset, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"turns":   turns,
		"meta":    gin.H{"total": total, "offset": offset, "limit": limit},
	})
}

// GetByID handles GET /reciepts/turns/:id
// @Summary Get one recorded turn
// @Tags turns
// @Produce json
// @Param id path string true "Turn ID (UUID)"
// @Success 200 {object} map[string]interface{} "Turn record"
// @Failure 404 {object} ErrorResponse "Turn not found"
// @Security BearerAuth
// @Router /reciepts/turns/{id} [get]
func (h *TurnHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid turn id: must be a valid UUID")
		return
	}

	turn, err := h.turnService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "turn": turn})
}

// Export handles GET /reciepts/turns/export
// @Summary Export recorded turns as an Excel workbook
// @Tags turns
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param kind query string false "Filter by turn kind (parse or split)"
// @Success 200 {file} binary "Workbook"
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Security BearerAuth
// @Router /reciepts/turns/export [get]
func (h *TurnHandler) Export(c *gin.Context) {
	kind, err := parseKindFilter(c.Query("kind"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	turns, err := h.turnService.Export(c.Request.Context(), kind)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := xlsxexport.Write(&buf, turns); err != nil {
		RespondError(c, http.StatusInternalServerError, "export failed")
		return
	}

	filename := fmt.Sprintf("turns_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func parseKindFilter(raw string) (*domain.TurnKind, error) {
	if raw == "" {
		return nil, nil
	}
	kind := domain.TurnKind(raw)
	if kind != domain.TurnKindParse && kind != domain.TurnKindSplit {
		return nil, fmt.Errorf("invalid kind %q: must be parse or split", raw)
	}
	return &kind, nil
}
