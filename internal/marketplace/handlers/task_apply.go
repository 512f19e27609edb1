package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/metrics"
)

type ApplyToTaskRequest struct {
	Applicant string `json:"applicant" binding:"required"`
}

func (h *Handler) ApplyToTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	h.logger.Debugf("POST [ApplyToTask] Task %d", taskID)

	var req ApplyToTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Error decoding request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  "INVALID_REQUEST",
		})
		return
	}
	applicant, ok := parseAddress(c, "applicant", req.Applicant)
	if !ok {
		return
	}

	track := metrics.TrackLedgerOperation("apply_to_task")
	err := h.ledger.ApplyToTask(taskID, applicant, requestTime())
	track(err)
	if err != nil {
		h.logger.Errorf("Error applying to task %d: %v", taskID, err)
		h.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "applicant": applicant.Hex()})
}

type AcceptWorkerRequest struct {
	Creator string `json:"creator" binding:"required"`
	Worker  string `json:"worker" binding:"required"`
}

func (h *Handler) AcceptWorker(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	h.logger.Debugf("POST [AcceptWorker] Task %d", taskID)

	var req AcceptWorkerRequest
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
	worker, ok := parseAddress(c, "worker", req.Worker)
	if !ok {
		return
	}

	track := metrics.TrackLedgerOperation("accept_worker")
	err := h.ledger.AcceptWorker(taskID, creator, worker, requestTime())
	track(err)
	if err != nil {
		h.logger.Errorf("Error accepting worker on task %d: %v", taskID, err)
		h.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "worker": worker.Hex()})
}
