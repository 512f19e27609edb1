package handlers

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/ledger"
	"github.com/Mateiul123/Blockchainworkapp/pkg/content"
	"github.com/Mateiul123/Blockchainworkapp/pkg/logging"
)

type Handler struct {
	ledger   *ledger.TaskLedger
	resolver content.Resolver
	logger   logging.Logger
}

// NewHandler wires the API handlers. resolver may be nil, in which case
// metadata resolution is disabled.
func NewHandler(l *ledger.TaskLedger, resolver content.Resolver, logger logging.Logger) *Handler {
	return &Handler{
		ledger:   l,
		resolver: resolver,
		logger:   logger,
	}
}

// requestTime stamps the logical clock value for this request. Every
// deadline check downstream compares against this one value.
func requestTime() time.Time {
	return time.Now().UTC()
}

// respondLedgerError maps the ledger failure taxonomy onto HTTP.
func (h *Handler) respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "NOT_FOUND"})
	case errors.Is(err, ledger.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "code": "FORBIDDEN"})
	case errors.Is(err, ledger.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "INVALID_STATE"})
	case errors.Is(err, ledger.ErrDeadlinePassed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "DEADLINE_PASSED"})
	case errors.Is(err, ledger.ErrTooEarly):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "TOO_EARLY"})
	case errors.Is(err, ledger.ErrInvalidParameters):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_PARAMETERS"})
	case errors.Is(err, ledger.ErrAlreadyApplied):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "ALREADY_APPLIED"})
	case errors.Is(err, ledger.ErrAlreadyRated):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "ALREADY_RATED"})
	case errors.Is(err, ledger.ErrNotAnApplicant):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "NOT_AN_APPLICANT"})
	case errors.Is(err, ledger.ErrNoBalance):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "NO_BALANCE"})
	default:
		h.logger.Errorf("Unexpected ledger error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error", "code": "INTERNAL_ERROR"})
	}
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id", "code": "INVALID_TASK_ID"})
		return 0, false
	}
	return id, true
}

func parseAddress(c *gin.Context, field, value string) (common.Address, bool) {
	if !common.IsHexAddress(value) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": field + " is not a valid hex address",
			"code":  "INVALID_ADDRESS",
		})
		return common.Address{}, false
	}
	return common.HexToAddress(value), true
}

func parseAmount(c *gin.Context, field, value string) (*big.Int, bool) {
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok || amount.Sign() < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": field + " is not a valid decimal amount",
			"code":  "INVALID_AMOUNT",
		})
		return nil, false
	}
	return amount, true
}

// taskResponse is the JSON form of a task record.
type taskResponse struct {
	TaskID           uint64            `json:"task_id"`
	Creator          string            `json:"creator"`
	Worker           string            `json:"worker,omitempty"`
	Title            string            `json:"title"`
	MetadataRef      string            `json:"metadata_ref"`
	SubmissionRef    string            `json:"submission_ref,omitempty"`
	Reward           string            `json:"reward"`
	Status           string            `json:"status"`
	Category         string            `json:"category"`
	TagsDigest       string            `json:"tags_digest"`
	CreatedAt        time.Time         `json:"created_at"`
	ApplyDeadline    time.Time         `json:"apply_deadline"`
	DeliveryDeadline time.Time         `json:"delivery_deadline"`
	ReviewDeadline   *time.Time        `json:"review_deadline,omitempty"`
	AcceptedAt       *time.Time        `json:"accepted_at,omitempty"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	WorkerRated      bool              `json:"worker_rated"`
	CreatorRated     bool              `json:"creator_rated"`
	Metadata         *content.Metadata `json:"metadata,omitempty"`
}

func newTaskResponse(task ledger.Task) taskResponse {
	resp := taskResponse{
		TaskID:           task.ID,
		Creator:          task.Creator.Hex(),
		Title:            task.Title,
		MetadataRef:      task.MetadataRef,
		SubmissionRef:    task.SubmissionRef,
		Reward:           task.Reward.String(),
		Status:           task.Status.String(),
		Category:         task.Category.String(),
		TagsDigest:       task.TagsDigest.Hex(),
		CreatedAt:        task.CreatedAt,
		ApplyDeadline:    task.ApplyDeadline,
		DeliveryDeadline: task.DeliveryDeadline,
		WorkerRated:      task.WorkerRated,
		CreatorRated:     task.CreatorRated,
	}
	if task.HasWorker() {
		resp.Worker = task.Worker.Hex()
	}
	if !task.ReviewDeadline.IsZero() {
		t := task.ReviewDeadline
		resp.ReviewDeadline = &t
	}
	if !task.AcceptedAt.IsZero() {
		t := task.AcceptedAt
		resp.AcceptedAt = &t
	}
	if !task.CompletedAt.IsZero() {
		t := task.CompletedAt
		resp.CompletedAt = &t
	}
	return resp
}
