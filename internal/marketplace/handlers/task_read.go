package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.ledger.GetTask(taskID)
	if err != nil {
		h.respondLedgerError(c, err)
		return
	}

	resp := newTaskResponse(task)
	if c.Query("resolve") == "true" && h.resolver != nil {
		meta, err := h.resolver.Resolve(task.MetadataRef)
		if err != nil {
			// Metadata lives off-ledger; the record is still served.
			h.logger.Warnf("Error resolving metadata %s: %v", task.MetadataRef, err)
		} else {
			resp.Metadata = meta
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetApplicants(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	applicants, err := h.ledger.GetApplicants(taskID)
	if err != nil {
		h.respondLedgerError(c, err)
		return
	}

	out := make([]string, len(applicants))
	for i, addr := range applicants {
		out[i] = addr.Hex()
	}
	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "applicants": out})
}

func (h *Handler) GetTasksByCreator(c *gin.Context) {
	creator, ok := parseAddress(c, "address", c.Param("address"))
	if !ok {
		return
	}
	ids := h.ledger.GetTasksByCreator(creator)
	c.JSON(http.StatusOK, gin.H{"creator": creator.Hex(), "task_ids": ids})
}

func (h *Handler) GetTasksByWorker(c *gin.Context) {
	worker, ok := parseAddress(c, "address", c.Param("address"))
	if !ok {
		return
	}
	ids := h.ledger.GetTasksByWorker(worker)
	c.JSON(http.StatusOK, gin.H{"worker": worker.Hex(), "task_ids": ids})
}

func (h *Handler) GetTotalTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"total_tasks": h.ledger.GetTotalTasks()})
}
