// Package ledger implements the escrow task lifecycle state machine and
// fund accounting. It owns task records, applicant sets, pull-payment
// pending balances and rating aggregates, and enforces every transition
// precondition.
//
// The ledger is deliberately passive: it never reads the wall clock
// (every deadline check compares against a caller-supplied time), never
// performs spontaneous work (expiry and auto approval are triggered by
// whoever observes the deadline), and never pushes value out (funds
// leave escrow only through Withdraw).
package ledger

import (
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Mateiul123/Blockchainworkapp/pkg/events"
	"github.com/Mateiul123/Blockchainworkapp/pkg/logging"
)

// TaskLedger is the single authority over all marketplace state. All
// mutating operations are serialized under one lock; each one validates
// fully before touching state, so a failure is never observable as a
// partial update.
type TaskLedger struct {
	mu sync.RWMutex

	nextID    uint64
	tasks     map[uint64]*taskRecord
	byCreator map[common.Address][]uint64
	byWorker  map[common.Address][]uint64
	balances  map[common.Address]*big.Int
	ratings   map[common.Address]*RatingAggregate

	treasury common.Address
	sink     events.Sink
	logger   logging.Logger
}

// New creates an empty ledger. Platform fees accrue to the treasury
// address. Events go to sink after each successful mutation; pass
// events.NopSink to disable notifications.
func New(treasury common.Address, sink events.Sink, logger logging.Logger) *TaskLedger {
	if sink == nil {
		sink = events.NopSink
	}
	return &TaskLedger{
		nextID:    1,
		tasks:     make(map[uint64]*taskRecord),
		byCreator: make(map[common.Address][]uint64),
		byWorker:  make(map[common.Address][]uint64),
		balances:  make(map[common.Address]*big.Int),
		ratings:   make(map[common.Address]*RatingAggregate),
		treasury:  treasury,
		sink:      sink,
		logger:    logger,
	}
}

// Treasury returns the platform fee address.
func (l *TaskLedger) Treasury() common.Address {
	return l.treasury
}

// CreateTask posts a new task with its reward locked in escrow and
// returns the assigned id. IDs are sequential starting at 1 and never
// reused.
func (l *TaskLedger) CreateTask(p CreateTaskParams, now time.Time) (uint64, error) {
	if err := ValidateCreateTaskParams(p, now); err != nil {
		return 0, err
	}

	l.mu.Lock()
	id := l.nextID
	l.nextID++

	task := Task{
		ID:               id,
		Creator:          p.Creator,
		Title:            p.Title,
		MetadataRef:      p.MetadataRef,
		Reward:           new(big.Int).Set(p.Reward),
		Status:           StatusOpen,
		Category:         p.Category,
		TagsDigest:       p.TagsDigest,
		CreatedAt:        now,
		ApplyDeadline:    p.ApplyDeadline,
		DeliveryDeadline: p.DeliveryDeadline,
	}
	l.tasks[id] = newTaskRecord(task)
	l.byCreator[p.Creator] = append(l.byCreator[p.Creator], id)
	l.mu.Unlock()

	l.logger.Debugf("Created task %d by %s, reward %s", id, p.Creator.Hex(), p.Reward)
	l.publish(events.Event{Type: events.TaskCreated, Payload: events.TaskCreatedEvent{
		TaskID:      id,
		Creator:     p.Creator.Hex(),
		Title:       p.Title,
		MetadataRef: p.MetadataRef,
		Reward:      p.Reward.String(),
		CreatedAt:   now,
	}})
	return id, nil
}

// ApplyToTask records an application. The creator may not apply, and an
// address may apply at most once per task.
func (l *TaskLedger) ApplyToTask(taskID uint64, applicant common.Address, now time.Time) error {
	l.mu.Lock()
	err := l.applyToTask(taskID, applicant, now)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	l.publish(events.Event{Type: events.ApplicationFiled, Payload: events.ApplicationFiledEvent{
		TaskID:    taskID,
		Applicant: applicant.Hex(),
	}})
	return nil
}

func (l *TaskLedger) applyToTask(taskID uint64, applicant common.Address, now time.Time) error {
	rec, ok := l.tasks[taskID]
	if !ok {
		return ErrNotFound
	}
	if rec.task.Status != StatusOpen {
		return ErrInvalidState
	}
	if now.After(rec.task.ApplyDeadline) {
		return ErrDeadlinePassed
	}
	if applicant == rec.task.Creator {
		return ErrForbidden
	}
	if rec.hasApplicant(applicant) {
		return ErrAlreadyApplied
	}
	rec.addApplicant(applicant)
	return nil
}

// AcceptWorker selects one applicant as the task's worker and moves the
// task to InProgress. Only the creator may accept, only once, and only
// while applications are still open.
func (l *TaskLedger) AcceptWorker(taskID uint64, caller, worker common.Address, now time.Time) error {
	l.mu.Lock()
	err := l.acceptWorker(taskID, caller, worker, now)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	l.publish(events.Event{Type: events.WorkerAccepted, Payload: events.WorkerAcceptedEvent{
		TaskID: taskID,
		Worker: worker.Hex(),
	}})
	return nil
}

func (l *TaskLedger) acceptWorker(taskID uint64, caller, worker common.Address, now time.Time) error {
	rec, ok := l.tasks[taskID]
	if !ok {
		return ErrNotFound
	}
	if caller != rec.task.Creator {
		return ErrForbidden
	}
	if rec.task.Status != StatusOpen {
		return ErrInvalidState
	}
	if now.After(rec.task.ApplyDeadline) {
		return ErrDeadlinePassed
	}
	if worker == (common.Address{}) || !rec.hasApplicant(worker) {
		return ErrNotAnApplicant
	}
	rec.task.Worker = worker
	rec.task.Status = StatusInProgress
	rec.task.AcceptedAt = now
	l.byWorker[worker] = append(l.byWorker[worker], taskID)
	return nil
}

// SubmitWork records the worker's submission reference and opens the
// review window.
func (l *TaskLedger) SubmitWork(taskID uint64, caller common.Address, submissionRef string, now time.Time) error {
	l.mu.Lock()
	evt, err := l.submitWork(taskID, caller, submissionRef, now)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	l.publish(evt)
	return nil
}

func (l *TaskLedger) submitWork(taskID uint64, caller common.Address, submissionRef string, now time.Time) (events.Event, error) {
	rec, ok := l.tasks[taskID]
	if !ok {
		return events.Event{}, ErrNotFound
	}
	if caller != rec.task.Worker {
		return events.Event{}, ErrForbidden
	}
	if rec.task.Status != StatusInProgress {
		return events.Event{}, ErrInvalidState
	}
	if now.After(rec.task.DeliveryDeadline) {
		return events.Event{}, ErrDeadlinePassed
	}
	if submissionRef == "" {
		return events.Event{}, ErrInvalidParameters
	}
	rec.task.SubmissionRef = submissionRef
	rec.task.Status = StatusPendingApproval
	rec.task.ReviewDeadline = now.Add(ReviewPeriod)

	return events.Event{Type: events.WorkSubmitted, Payload: events.WorkSubmittedEvent{
		TaskID:         taskID,
		Worker:         caller.Hex(),
		SubmissionRef:  submissionRef,
		ReviewDeadline: rec.task.ReviewDeadline,
	}}, nil
}

// ApproveWork is the creator's explicit acceptance of the submission.
// It finalizes the payout split and completes the task.
func (l *TaskLedger) ApproveWork(taskID uint64, caller common.Address, now time.Time) error {
	l.mu.Lock()
	evt, err := l.approveWork(taskID, caller, now, false)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	l.publish(evt)
	return nil
}

// AutoApprove finalizes the payout once the review deadline has passed
// without an explicit approval. Any caller may trigger it.
func (l *TaskLedger) AutoApprove(taskID uint64, now time.Time) error {
	l.mu.Lock()
	evt, err := l.approveWork(taskID, common.Address{}, now, true)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	l.publish(evt)
	return nil
}

func (l *TaskLedger) approveWork(taskID uint64, caller common.Address, now time.Time, automatic bool) (events.Event, error) {
	rec, ok := l.tasks[taskID]
	if !ok {
		return events.Event{}, ErrNotFound
	}
	if !automatic && caller != rec.task.Creator {
		return events.Event{}, ErrForbidden
	}
	if rec.task.Status != StatusPendingApproval {
		return events.Event{}, ErrInvalidState
	}
	if automatic {
		if rec.task.ReviewDeadline.IsZero() || !now.After(rec.task.ReviewDeadline) {
			return events.Event{}, ErrTooEarly
		}
	}

	fee, workerPayment := SplitReward(rec.task.Reward)
	l.credit(l.treasury, fee)
	l.credit(rec.task.Worker, workerPayment)
	rec.task.Status = StatusCompleted
	rec.task.CompletedAt = now

	eventType := events.WorkApproved
	if automatic {
		eventType = events.WorkAutoApproved
	}
	return events.Event{Type: eventType, Payload: events.WorkApprovedEvent{
		TaskID:        taskID,
		Worker:        rec.task.Worker.Hex(),
		WorkerPayment: workerPayment.String(),
		PlatformFee:   fee.String(),
		Automatic:     automatic,
	}}, nil
}

// CancelTask lets the creator abandon a task before any submission is
// under review. The full reward is refunded to the creator's pending
// balance.
func (l *TaskLedger) CancelTask(taskID uint64, caller common.Address) error {
	l.mu.Lock()
	evt, err := l.cancelTask(taskID, caller)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	l.publish(evt)
	return nil
}

func (l *TaskLedger) cancelTask(taskID uint64, caller common.Address) (events.Event, error) {
	rec, ok := l.tasks[taskID]
	if !ok {
		return events.Event{}, ErrNotFound
	}
	if caller != rec.task.Creator {
		return events.Event{}, ErrForbidden
	}
	if rec.task.Status != StatusOpen && rec.task.Status != StatusInProgress {
		return events.Event{}, ErrInvalidState
	}
	rec.task.Status = StatusCancelled
	l.credit(rec.task.Creator, rec.task.Reward)

	return events.Event{Type: events.TaskCancelled, Payload: events.TaskCancelledEvent{
		TaskID:   taskID,
		Creator:  rec.task.Creator.Hex(),
		Refunded: rec.task.Reward.String(),
	}}, nil
}

// ExpireTask refunds the creator once a task missed its apply deadline
// without an accepted worker, or its delivery deadline without a
// submission. Any caller may trigger it.
func (l *TaskLedger) ExpireTask(taskID uint64, now time.Time) error {
	l.mu.Lock()
	evt, err := l.expireTask(taskID, now)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	l.publish(evt)
	return nil
}

func (l *TaskLedger) expireTask(taskID uint64, now time.Time) (events.Event, error) {
	rec, ok := l.tasks[taskID]
	if !ok {
		return events.Event{}, ErrNotFound
	}
	switch rec.task.Status {
	case StatusOpen:
		if !now.After(rec.task.ApplyDeadline) {
			return events.Event{}, ErrTooEarly
		}
	case StatusInProgress:
		if !now.After(rec.task.DeliveryDeadline) {
			return events.Event{}, ErrTooEarly
		}
	default:
		return events.Event{}, ErrInvalidState
	}
	rec.task.Status = StatusExpired
	l.credit(rec.task.Creator, rec.task.Reward)

	return events.Event{Type: events.TaskExpired, Payload: events.TaskExpiredEvent{
		TaskID:   taskID,
		Creator:  rec.task.Creator.Hex(),
		Refunded: rec.task.Reward.String(),
	}}, nil
}

// Withdraw zeroes the caller's pending balance and returns the amount
// for the external transfer. The balance record persists at zero, so a
// repeat call simply fails with ErrNoBalance.
func (l *TaskLedger) Withdraw(account common.Address) (*big.Int, error) {
	l.mu.Lock()
	balance, ok := l.balances[account]
	if !ok || balance.Sign() == 0 {
		l.mu.Unlock()
		return nil, ErrNoBalance
	}
	amount := new(big.Int).Set(balance)
	balance.SetInt64(0)
	l.mu.Unlock()

	l.publish(events.Event{Type: events.FundsWithdrawn, Payload: events.FundsWithdrawnEvent{
		Account: account.Hex(),
		Amount:  amount.String(),
	}})
	return amount, nil
}

// RateWorker lets the creator of a completed task rate its worker, once.
func (l *TaskLedger) RateWorker(taskID uint64, caller common.Address, stars uint8) error {
	l.mu.Lock()
	evt, err := l.rate(taskID, caller, stars, true)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	l.publish(evt)
	return nil
}

// RateCreator lets the worker of a completed task rate its creator, once.
func (l *TaskLedger) RateCreator(taskID uint64, caller common.Address, stars uint8) error {
	l.mu.Lock()
	evt, err := l.rate(taskID, caller, stars, false)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	l.publish(evt)
	return nil
}

func (l *TaskLedger) rate(taskID uint64, caller common.Address, stars uint8, ratingWorker bool) (events.Event, error) {
	rec, ok := l.tasks[taskID]
	if !ok {
		return events.Event{}, ErrNotFound
	}
	if rec.task.Status != StatusCompleted {
		return events.Event{}, ErrInvalidState
	}
	if err := ValidateStars(stars); err != nil {
		return events.Event{}, err
	}

	var rated common.Address
	var eventType events.EventType
	if ratingWorker {
		if caller != rec.task.Creator {
			return events.Event{}, ErrForbidden
		}
		if rec.task.WorkerRated {
			return events.Event{}, ErrAlreadyRated
		}
		rec.task.WorkerRated = true
		rated = rec.task.Worker
		eventType = events.WorkerRated
	} else {
		if caller != rec.task.Worker {
			return events.Event{}, ErrForbidden
		}
		if rec.task.CreatorRated {
			return events.Event{}, ErrAlreadyRated
		}
		rec.task.CreatorRated = true
		rated = rec.task.Creator
		eventType = events.CreatorRated
	}

	agg, ok := l.ratings[rated]
	if !ok {
		agg = &RatingAggregate{}
		l.ratings[rated] = agg
	}
	agg.TotalStars += uint64(stars)
	agg.Count++

	return events.Event{Type: eventType, Payload: events.RatingEvent{
		TaskID: taskID,
		Rater:  caller.Hex(),
		Rated:  rated.Hex(),
		Stars:  stars,
	}}, nil
}

// credit adds amount to an account's pending balance, creating the
// record on first use. Callers hold the write lock.
func (l *TaskLedger) credit(account common.Address, amount *big.Int) {
	balance, ok := l.balances[account]
	if !ok {
		balance = new(big.Int)
		l.balances[account] = balance
	}
	balance.Add(balance, amount)
}

func (l *TaskLedger) publish(evt events.Event) {
	l.sink.Publish(evt)
}
