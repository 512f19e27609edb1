package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/metrics"
)

type RateRequest struct {
	Rater string `json:"rater" binding:"required"`
	Stars uint8  `json:"stars" binding:"required"`
}

func (h *Handler) RateWorker(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	h.logger.Debugf("POST [RateWorker] Task %d", taskID)

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Error decoding request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  "INVALID_REQUEST",
		})
		return
	}
	rater, ok := parseAddress(c, "rater", req.Rater)
	if !ok {
		return
	}

	track := metrics.TrackLedgerOperation("rate_worker")
	err := h.ledger.RateWorker(taskID, rater, req.Stars)
	track(err)
	if err != nil {
		h.logger.Errorf("Error rating worker on task %d: %v", taskID, err)
		h.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "stars": req.Stars})
}

func (h *Handler) RateCreator(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	h.logger.Debugf("POST [RateCreator] Task %d", taskID)

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Error decoding request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  "INVALID_REQUEST",
		})
		return
	}
	rater, ok := parseAddress(c, "rater", req.Rater)
	if !ok {
		return
	}

	track := metrics.TrackLedgerOperation("rate_creator")
	err := h.ledger.RateCreator(taskID, rater, req.Stars)
	track(err)
	if err != nil {
		h.logger.Errorf("Error rating creator on task %d: %v", taskID, err)
		h.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "stars": req.Stars})
}

func (h *Handler) GetRating(c *gin.Context) {
	account, ok := parseAddress(c, "address", c.Param("address"))
	if !ok {
		return
	}
	agg := h.ledger.GetRating(account)
	c.JSON(http.StatusOK, gin.H{
		"account":     account.Hex(),
		"total_stars": agg.TotalStars,
		"count":       agg.Count,
		"average":     agg.Average(),
	})
}
