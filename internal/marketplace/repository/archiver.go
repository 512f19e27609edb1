// Package repository persists ledger state to ScyllaDB. The archive is
// write-behind: it subscribes to ledger events and mirrors the affected
// records, so a write failure is logged and dropped without ever
// touching ledger state. The in-memory ledger stays the source of
// truth.
package repository

import (
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/ledger"
	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/metrics"
	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/repository/queries"
	"github.com/Mateiul123/Blockchainworkapp/pkg/database"
	"github.com/Mateiul123/Blockchainworkapp/pkg/events"
	"github.com/Mateiul123/Blockchainworkapp/pkg/logging"
)

// Archiver mirrors ledger state into ScyllaDB, one write per event.
type Archiver struct {
	db     *database.Connection
	ledger *ledger.TaskLedger
	logger logging.Logger
}

var _ events.Sink = (*Archiver)(nil)

func NewArchiver(db *database.Connection, l *ledger.TaskLedger, logger logging.Logger) *Archiver {
	return &Archiver{
		db:     db,
		ledger: l,
		logger: logger,
	}
}

// Publish records the transition and refreshes the snapshots it touched.
func (a *Archiver) Publish(event events.Event) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		a.logger.Errorf("Error marshaling %s payload: %v", event.Type, err)
		return
	}

	switch p := event.Payload.(type) {
	case events.TaskCreatedEvent:
		a.writeTransition(p.TaskID, event.Type, payload)
		a.writeTask(p.TaskID)
	case events.ApplicationFiledEvent:
		a.writeTransition(p.TaskID, event.Type, payload)
		a.writeApplicants(p.TaskID)
	case events.WorkerAcceptedEvent:
		a.writeTransition(p.TaskID, event.Type, payload)
		a.writeTask(p.TaskID)
	case events.WorkSubmittedEvent:
		a.writeTransition(p.TaskID, event.Type, payload)
		a.writeTask(p.TaskID)
	case events.WorkApprovedEvent:
		a.writeTransition(p.TaskID, event.Type, payload)
		a.writeTask(p.TaskID)
		a.writeBalance(common.HexToAddress(p.Worker))
		a.writeBalance(a.ledger.Treasury())
	case events.TaskCancelledEvent:
		a.writeTransition(p.TaskID, event.Type, payload)
		a.writeTask(p.TaskID)
		a.writeBalance(common.HexToAddress(p.Creator))
	case events.TaskExpiredEvent:
		a.writeTransition(p.TaskID, event.Type, payload)
		a.writeTask(p.TaskID)
		a.writeBalance(common.HexToAddress(p.Creator))
	case events.FundsWithdrawnEvent:
		a.writeBalance(common.HexToAddress(p.Account))
	case events.RatingEvent:
		a.writeTransition(p.TaskID, event.Type, payload)
		a.writeTask(p.TaskID)
		a.writeRating(common.HexToAddress(p.Rated))
	default:
		a.logger.Warnf("Unknown event type %s, skipping archive", event.Type)
	}
}

func (a *Archiver) writeTransition(taskID uint64, eventType events.EventType, payload []byte) {
	err := a.db.Session().Query(queries.InsertTransitionQuery,
		int64(taskID), time.Now().UTC(), string(eventType), string(payload),
	).Exec()
	metrics.TrackArchiveWrite("task_transitions", err)
	if err != nil {
		a.logger.Errorf("Error archiving transition for task %d: %v", taskID, err)
	}
}

func (a *Archiver) writeTask(taskID uint64) {
	task, err := a.ledger.GetTask(taskID)
	if err != nil {
		a.logger.Errorf("Error reading task %d for archive: %v", taskID, err)
		return
	}

	err = a.db.Session().Query(queries.UpsertTaskQuery,
		int64(task.ID), task.Creator.Hex(), task.Worker.Hex(), task.Title,
		task.MetadataRef, task.SubmissionRef, task.Reward.String(),
		task.Status.String(), task.Category.String(), task.TagsDigest.Hex(),
		task.CreatedAt, task.ApplyDeadline, task.DeliveryDeadline,
		task.ReviewDeadline, task.AcceptedAt, task.CompletedAt,
		task.WorkerRated, task.CreatorRated,
	).Exec()
	metrics.TrackArchiveWrite("tasks", err)
	if err != nil {
		a.logger.Errorf("Error archiving task %d: %v", taskID, err)
	}
}

func (a *Archiver) writeApplicants(taskID uint64) {
	applicants, err := a.ledger.GetApplicants(taskID)
	if err != nil {
		a.logger.Errorf("Error reading applicants of task %d for archive: %v", taskID, err)
		return
	}

	// Applicant rows are append-only; rewriting the whole list keeps the
	// archive consistent without tracking which row is new.
	for position, applicant := range applicants {
		err := a.db.Session().Query(queries.UpsertApplicantQuery,
			int64(taskID), position, applicant.Hex(),
		).Exec()
		metrics.TrackArchiveWrite("task_applicants", err)
		if err != nil {
			a.logger.Errorf("Error archiving applicant %d of task %d: %v", position, taskID, err)
		}
	}
}

func (a *Archiver) writeBalance(account common.Address) {
	balance := a.ledger.GetPendingBalance(account)
	err := a.db.Session().Query(queries.UpsertPendingBalanceQuery,
		account.Hex(), balance.String(),
	).Exec()
	metrics.TrackArchiveWrite("pending_balances", err)
	if err != nil {
		a.logger.Errorf("Error archiving balance of %s: %v", account.Hex(), err)
	}
}

func (a *Archiver) writeRating(account common.Address) {
	agg := a.ledger.GetRating(account)
	err := a.db.Session().Query(queries.UpsertRatingQuery,
		account.Hex(), int64(agg.TotalStars), int64(agg.Count),
	).Exec()
	metrics.TrackArchiveWrite("ratings", err)
	if err != nil {
		a.logger.Errorf("Error archiving rating of %s: %v", account.Hex(), err)
	}
}
