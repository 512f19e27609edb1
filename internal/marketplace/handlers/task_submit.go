package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/metrics"
)

type SubmitWorkRequest struct {
	Worker        string `json:"worker" binding:"required"`
	SubmissionRef string `json:"submission_ref" binding:"required"`
}

func (h *Handler) SubmitWork(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	h.logger.Debugf("POST [SubmitWork] Task %d", taskID)

	var req SubmitWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Error decoding request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  "INVALID_REQUEST",
		})
		return
	}
	worker, ok := parseAddress(c, "worker", req.Worker)
	if !ok {
		return
	}

	track := metrics.TrackLedgerOperation("submit_work")
	err := h.ledger.SubmitWork(taskID, worker, req.SubmissionRef, requestTime())
	track(err)
	if err != nil {
		h.logger.Errorf("Error submitting work on task %d: %v", taskID, err)
		h.respondLedgerError(c, err)
		return
	}

	task, err := h.ledger.GetTask(taskID)
	if err != nil {
		h.respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"task_id":         taskID,
		"review_deadline": task.ReviewDeadline,
	})
}

type ApproveWorkRequest struct {
	Creator string `json:"creator" binding:"required"`
}

func (h *Handler) ApproveWork(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	h.logger.Debugf("POST [ApproveWork] Task %d", taskID)

	var req ApproveWorkRequest
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

	track := metrics.TrackLedgerOperation("approve_work")
	err := h.ledger.ApproveWork(taskID, creator, requestTime())
	track(err)
	if err != nil {
		h.logger.Errorf("Error approving work on task %d: %v", taskID, err)
		h.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "status": "completed"})
}

// AutoApprove may be called by anyone once the review window elapsed;
// no caller identity is required.
func (h *Handler) AutoApprove(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	h.logger.Debugf("POST [AutoApprove] Task %d", taskID)

	track := metrics.TrackLedgerOperation("auto_approve")
	err := h.ledger.AutoApprove(taskID, requestTime())
	track(err)
	if err != nil {
		h.logger.Errorf("Error auto-approving task %d: %v", taskID, err)
		h.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "status": "completed", "automatic": true})
}
