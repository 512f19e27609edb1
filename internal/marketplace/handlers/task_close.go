package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/metrics"
)

type CancelTaskRequest struct {
	Creator string `json:"creator" binding:"required"`
}

func (h *Handler) CancelTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	h.logger.Debugf("POST [CancelTask] Task %d", taskID)

	var req CancelTaskRequest
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

	track := metrics.TrackLedgerOperation("cancel_task")
	err := h.ledger.CancelTask(taskID, creator)
	track(err)
	if err != nil {
		h.logger.Errorf("Error cancelling task %d: %v", taskID, err)
		h.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "status": "cancelled"})
}

// ExpireTask may be called by anyone once the relevant deadline passed.
func (h *Handler) ExpireTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	h.logger.Debugf("POST [ExpireTask] Task %d", taskID)

	track := metrics.TrackLedgerOperation("expire_task")
	err := h.ledger.ExpireTask(taskID, requestTime())
	track(err)
	if err != nil {
		h.logger.Errorf("Error expiring task %d: %v", taskID, err)
		h.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "status": "expired"})
}
