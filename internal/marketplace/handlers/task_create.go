package handlers

import (
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/ledger"
	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/metrics"
)

type CreateTaskRequest struct {
	Creator          string    `json:"creator" binding:"required"`
	Title            string    `json:"title" binding:"required"`
	MetadataRef      string    `json:"metadata_ref" binding:"required"`
	Category         string    `json:"category" binding:"required"`
	TagsDigest       string    `json:"tags_digest"`
	ApplyDeadline    time.Time `json:"apply_deadline" binding:"required"`
	DeliveryDeadline time.Time `json:"delivery_deadline" binding:"required"`
	Reward           string    `json:"reward" binding:"required"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	h.logger.Debugf("POST [CreateTask] Creating task")
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Error decoding request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	creator, ok := parseAddress(c, "creator", req.Creator)
	if !ok {
		return
	}
	reward, ok := parseAmount(c, "reward", req.Reward)
	if !ok {
		return
	}
	category, err := ledger.ParseCategory(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_CATEGORY"})
		return
	}

	params := ledger.CreateTaskParams{
		Creator:          creator,
		Title:            req.Title,
		MetadataRef:      req.MetadataRef,
		Category:         category,
		TagsDigest:       common.HexToHash(req.TagsDigest),
		ApplyDeadline:    req.ApplyDeadline,
		DeliveryDeadline: req.DeliveryDeadline,
		Reward:           reward,
	}

	track := metrics.TrackLedgerOperation("create_task")
	taskID, err := h.ledger.CreateTask(params, requestTime())
	track(err)
	if err != nil {
		h.logger.Errorf("Error creating task: %v", err)
		h.respondLedgerError(c, err)
		return
	}
	metrics.TasksTotal.Set(float64(h.ledger.GetTotalTasks()))

	h.logger.Debugf("Successfully created task with ID: %d", taskID)
	c.JSON(http.StatusCreated, gin.H{"task_id": taskID})
}
