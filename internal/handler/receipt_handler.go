package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tabsplit/internal/domain"
	"tabsplit/internal/service"
)

// ReceiptHandler handles the receipt pipeline endpoints.
type ReceiptHandler struct {
	receiptService service.ReceiptService
	splitService   service.SplitService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptService service.ReceiptService, splitService service.SplitService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		splitService:   splitService,
	}
}

// ParseReceiptRequest is the request body for receipt parsing. Exactly one of
// the two image sources must be set.
type ParseReceiptRequest struct {
	ImageURL    string `json:"imageUrl" example:"https://example.com/receipt.jpg"`
	Base64Image string `json:"base64Image"`
}

// ParseReceiptResponse is the success envelope for receipt parsing.
type ParseReceiptResponse struct {
	Success  bool                    `json:"success"`
	Receipt  *domain.Receipt         `json:"receipt"`
	Metadata domain.ResponseMetadata `json:"metadata"`
}

// ComputeSplitRequest is the request body for split computation.
type ComputeSplitRequest struct {
	Receipt      *domain.Receipt      `json:"receipt"`
	Instructions string               `json:"instructions" example:"everyone splits evenly, Priya skipped the wine"`
	Participants []domain.Participant `json:"participants"`
	PriorPlan    *domain.SplitPlan    `json:"priorPlan"`
}

// ComputeSplitResponse is the success envelope for split computation.
type ComputeSplitResponse struct {
	Success  bool                    `json:"success"`
	Split    *domain.SplitPlan       `json:"split"`
	Metadata domain.ResponseMetadata `json:"metadata"`
}

// Parse handles POST /reciepts/parse
// @Summary Parse a receipt image
// @Description Extract structured receipt data from an image URL or base64 payload
// @Tags reciepts
// @Accept json
// @Produce json
// @Param request body ParseReceiptRequest true "Image source"
// @Success 200 {object} ParseReceiptResponse "Structured receipt"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 502 {object} ErrorResponse "Inference upstream failure"
// @Router /reciepts/parse [post]
func (h *ReceiptHandler) Parse(c *gin.Context) {
	var req ParseReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.receiptService.Parse(c.Request.Context(), &service.ParseReceiptInput{
		ImageURL:    req.ImageURL,
		Base64Image: req.Base64Image,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ParseReceiptResponse{
		Success:  true,
		Receipt:  result.Receipt,
		Metadata: result.Metadata,
	})
}

// Split handles POST /reciepts/split
// @Summary Compute a bill split
// @Description Allocate a receipt total across participants from free-text instructions
// @Tags reciepts
// @Accept json
// @Produce json
// @Param request body ComputeSplitRequest true "Split instructions"
// @Success 200 {object} ComputeSplitResponse "Computed split plan"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 422 {object} ErrorResponse "Plan violates settlement invariant"
// @Failure 502 {object} ErrorResponse "Inference upstream failure"
// @Router /reciepts/split [post]
func (h *ReceiptHandler) Split(c *gin.Context) {
	var req ComputeSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.splitService.ComputeSplit(c.Request.Context(), &service.ComputeSplitInput{
		Receipt:      req.Receipt,
		Instructions: req.Instructions,
		Participants: req.Participants,
		PriorPlan:    req.PriorPlan,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ComputeSplitResponse{
		Success:  true,
		Split:    result.Plan,
		Metadata: result.Metadata,
	})
}
