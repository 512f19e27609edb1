package events

import (
	"time"
)

type EventType string

const (
	TaskCreated      EventType = "TASK_CREATED"
	ApplicationFiled EventType = "APPLICATION_FILED"
	WorkerAccepted   EventType = "WORKER_ACCEPTED"
	WorkSubmitted    EventType = "WORK_SUBMITTED"
	WorkApproved     EventType = "WORK_APPROVED"
	WorkAutoApproved EventType = "WORK_AUTO_APPROVED"
	TaskCancelled    EventType = "TASK_CANCELLED"
	TaskExpired      EventType = "TASK_EXPIRED"
	FundsWithdrawn   EventType = "FUNDS_WITHDRAWN"
	WorkerRated      EventType = "WORKER_RATED"
	CreatorRated     EventType = "CREATOR_RATED"
)

type TaskCreatedEvent struct {
	TaskID      uint64    `json:"task_id"`
	Creator     string    `json:"creator"`
	Title       string    `json:"title"`
	MetadataRef string    `json:"metadata_ref"`
	Reward      string    `json:"reward"`
	CreatedAt   time.Time `json:"created_at"`
}

type ApplicationFiledEvent struct {
	TaskID    uint64 `json:"task_id"`
	Applicant string `json:"applicant"`
}

type WorkerAcceptedEvent struct {
	TaskID uint64 `json:"task_id"`
	Worker string `json:"worker"`
}

type WorkSubmittedEvent struct {
	TaskID         uint64    `json:"task_id"`
	Worker         string    `json:"worker"`
	SubmissionRef  string    `json:"submission_ref"`
	ReviewDeadline time.Time `json:"review_deadline"`
}

// WorkApprovedEvent is emitted for both explicit approval and the
// timeout-triggered auto approval; Automatic tells them apart.
type WorkApprovedEvent struct {
	TaskID        uint64 `json:"task_id"`
	Worker        string `json:"worker"`
	WorkerPayment string `json:"worker_payment"`
	PlatformFee   string `json:"platform_fee"`
	Automatic     bool   `json:"automatic"`
}

type TaskCancelledEvent struct {
	TaskID   uint64 `json:"task_id"`
	Creator  string `json:"creator"`
	Refunded string `json:"refunded"`
}

type TaskExpiredEvent struct {
	TaskID   uint64 `json:"task_id"`
	Creator  string `json:"creator"`
	Refunded string `json:"refunded"`
}

type FundsWithdrawnEvent struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

type RatingEvent struct {
	TaskID uint64 `json:"task_id"`
	Rater  string `json:"rater"`
	Rated  string `json:"rated"`
	Stars  uint8  `json:"stars"`
}

// Event represents a generic event in the system.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}

// Sink receives events after a state transition has been applied.
// Delivery is best-effort; a sink must never block for long and its
// failures do not affect ledger state.
type Sink interface {
	Publish(event Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Publish(event Event) { f(event) }

// NopSink discards all events.
var NopSink Sink = SinkFunc(func(Event) {})
