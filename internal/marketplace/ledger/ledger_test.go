package ledger

import (
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Mateiul123/Blockchainworkapp/pkg/events"
	"github.com/Mateiul123/Blockchainworkapp/pkg/logging"
)

var (
	creator  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	worker   = common.HexToAddress("0x2222222222222222222222222222222222222222")
	other    = common.HexToAddress("0x3333333333333333333333333333333333333333")
	treasury = common.HexToAddress("0x9999999999999999999999999999999999999999")
	baseTime = time.Unix(1_700_000_000, 0).UTC()
)

type recordingSink struct {
	mu     sync.Mutex
	events []events.Event
}

func (s *recordingSink) Publish(evt events.Event) {
	s.mu.Lock()
	s.events = append(s.events, evt)
	s.mu.Unlock()
}

func (s *recordingSink) types() []events.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]events.EventType, len(s.events))
	for i, evt := range s.events {
		out[i] = evt.Type
	}
	return out
}

func newTestLedger() (*TaskLedger, *recordingSink) {
	sink := &recordingSink{}
	return New(treasury, sink, logging.NoOpLogger{}), sink
}

func testParams() CreateTaskParams {
	return CreateTaskParams{
		Creator:          creator,
		Title:            "Implement payout module",
		MetadataRef:      "QmTaskMetadata",
		Category:         CategoryDevelopment,
		TagsDigest:       common.HexToHash("0xabcd"),
		ApplyDeadline:    baseTime.Add(100 * time.Second),
		DeliveryDeadline: baseTime.Add(200 * time.Second),
		Reward:           big.NewInt(1000),
	}
}

// createInProgressTask posts a task, applies as worker, and accepts.
func createInProgressTask(t *testing.T, l *TaskLedger) uint64 {
	t.Helper()
	id, err := l.CreateTask(testParams(), baseTime)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if err := l.ApplyToTask(id, worker, baseTime.Add(10*time.Second)); err != nil {
		t.Fatalf("ApplyToTask: %v", err)
	}
	if err := l.AcceptWorker(id, creator, worker, baseTime.Add(20*time.Second)); err != nil {
		t.Fatalf("AcceptWorker: %v", err)
	}
	return id
}

func TestCreateTaskAssignsSequentialIDs(t *testing.T) {
	l, _ := newTestLedger()

	for want := uint64(1); want <= 3; want++ {
		id, err := l.CreateTask(testParams(), baseTime)
		if err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
		if id != want {
			t.Errorf("expected id %d, got %d", want, id)
		}
	}
	if total := l.GetTotalTasks(); total != 3 {
		t.Errorf("expected 3 total tasks, got %d", total)
	}

	task, err := l.GetTask(1)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if task.Status != StatusOpen {
		t.Errorf("expected open status, got %s", task.Status)
	}
	if task.HasWorker() {
		t.Error("new task must not have a worker")
	}
	if !task.ReviewDeadline.IsZero() {
		t.Error("review deadline must be unset before submission")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	l, _ := newTestLedger()

	tests := []struct {
		name   string
		mutate func(*CreateTaskParams)
	}{
		{"zero creator", func(p *CreateTaskParams) { p.Creator = common.Address{} }},
		{"empty title", func(p *CreateTaskParams) { p.Title = "" }},
		{"oversized title", func(p *CreateTaskParams) {
			for len(p.Title) <= MaxTitleLength {
				p.Title += p.Title
			}
		}},
		{"empty metadata ref", func(p *CreateTaskParams) { p.MetadataRef = "" }},
		{"invalid category", func(p *CreateTaskParams) { p.Category = Category(42) }},
		{"nil reward", func(p *CreateTaskParams) { p.Reward = nil }},
		{"zero reward", func(p *CreateTaskParams) { p.Reward = big.NewInt(0) }},
		{"below minimum reward", func(p *CreateTaskParams) { p.Reward = new(big.Int).Sub(MinReward, big.NewInt(1)) }},
		{"apply deadline in the past", func(p *CreateTaskParams) { p.ApplyDeadline = baseTime.Add(-time.Second) }},
		{"apply deadline equals now", func(p *CreateTaskParams) { p.ApplyDeadline = baseTime }},
		{"delivery before apply", func(p *CreateTaskParams) { p.DeliveryDeadline = p.ApplyDeadline.Add(-time.Second) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := testParams()
			tc.mutate(&p)
			if _, err := l.CreateTask(p, baseTime); !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
	if total := l.GetTotalTasks(); total != 0 {
		t.Errorf("failed creations must not allocate ids, got %d tasks", total)
	}
}

func TestApproveFlowSplitsPayout(t *testing.T) {
	l, sink := newTestLedger()
	id := createInProgressTask(t, l)

	if err := l.SubmitWork(id, worker, "QmSubmission", baseTime.Add(50*time.Second)); err != nil {
		t.Fatalf("SubmitWork: %v", err)
	}
	task, _ := l.GetTask(id)
	wantReview := baseTime.Add(50 * time.Second).Add(ReviewPeriod)
	if !task.ReviewDeadline.Equal(wantReview) {
		t.Errorf("expected review deadline %v, got %v", wantReview, task.ReviewDeadline)
	}

	if err := l.ApproveWork(id, creator, baseTime.Add(60*time.Second)); err != nil {
		t.Fatalf("ApproveWork: %v", err)
	}

	task, _ = l.GetTask(id)
	if task.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", task.Status)
	}
	if got := l.GetPendingBalance(worker); got.Cmp(big.NewInt(980)) != 0 {
		t.Errorf("expected worker balance 980, got %s", got)
	}
	if got := l.GetPendingBalance(treasury); got.Cmp(big.NewInt(20)) != 0 {
		t.Errorf("expected platform balance 20, got %s", got)
	}

	want := []events.EventType{
		events.TaskCreated, events.ApplicationFiled, events.WorkerAccepted,
		events.WorkSubmitted, events.WorkApproved,
	}
	got := sink.types()
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestAutoApproveTiming(t *testing.T) {
	l, _ := newTestLedger()
	id := createInProgressTask(t, l)

	submitAt := baseTime.Add(50 * time.Second)
	if err := l.SubmitWork(id, worker, "QmSubmission", submitAt); err != nil {
		t.Fatalf("SubmitWork: %v", err)
	}
	reviewDeadline := submitAt.Add(ReviewPeriod)

	if err := l.AutoApprove(id, reviewDeadline.Add(-time.Second)); !errors.Is(err, ErrTooEarly) {
		t.Errorf("expected ErrTooEarly before review deadline, got %v", err)
	}
	if err := l.AutoApprove(id, reviewDeadline); !errors.Is(err, ErrTooEarly) {
		t.Errorf("expected ErrTooEarly at review deadline, got %v", err)
	}
	if err := l.AutoApprove(id, reviewDeadline.Add(time.Second)); err != nil {
		t.Fatalf("AutoApprove: %v", err)
	}

	// Identical split to the explicit approval path.
	if got := l.GetPendingBalance(worker); got.Cmp(big.NewInt(980)) != 0 {
		t.Errorf("expected worker balance 980, got %s", got)
	}
	if got := l.GetPendingBalance(treasury); got.Cmp(big.NewInt(20)) != 0 {
		t.Errorf("expected platform balance 20, got %s", got)
	}
	task, _ := l.GetTask(id)
	if task.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", task.Status)
	}
}

func TestCompletedExactlyOnce(t *testing.T) {
	l, _ := newTestLedger()
	id := createInProgressTask(t, l)

	submitAt := baseTime.Add(50 * time.Second)
	if err := l.SubmitWork(id, worker, "QmSubmission", submitAt); err != nil {
		t.Fatalf("SubmitWork: %v", err)
	}
	if err := l.ApproveWork(id, creator, submitAt.Add(time.Minute)); err != nil {
		t.Fatalf("ApproveWork: %v", err)
	}

	if err := l.ApproveWork(id, creator, submitAt.Add(2*time.Minute)); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second approval: expected ErrInvalidState, got %v", err)
	}
	if err := l.AutoApprove(id, submitAt.Add(ReviewPeriod).Add(time.Hour)); !errors.Is(err, ErrInvalidState) {
		t.Errorf("auto approval after approval: expected ErrInvalidState, got %v", err)
	}
	// Balances unchanged by the rejected calls.
	if got := l.GetPendingBalance(worker); got.Cmp(big.NewInt(980)) != 0 {
		t.Errorf("expected worker balance 980, got %s", got)
	}
}

func TestApplyToTaskPreconditions(t *testing.T) {
	l, _ := newTestLedger()
	id, err := l.CreateTask(testParams(), baseTime)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if err := l.ApplyToTask(999, worker, baseTime); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown task: expected ErrNotFound, got %v", err)
	}
	if err := l.ApplyToTask(id, creator, baseTime.Add(time.Second)); !errors.Is(err, ErrForbidden) {
		t.Errorf("creator applying: expected ErrForbidden, got %v", err)
	}
	if err := l.ApplyToTask(id, worker, baseTime.Add(101*time.Second)); !errors.Is(err, ErrDeadlinePassed) {
		t.Errorf("after apply deadline: expected ErrDeadlinePassed, got %v", err)
	}

	// Applying exactly at the deadline is still allowed.
	if err := l.ApplyToTask(id, worker, baseTime.Add(100*time.Second)); err != nil {
		t.Fatalf("apply at deadline: %v", err)
	}
	if err := l.ApplyToTask(id, worker, baseTime.Add(100*time.Second)); !errors.Is(err, ErrAlreadyApplied) {
		t.Errorf("duplicate apply: expected ErrAlreadyApplied, got %v", err)
	}

	applicants, err := l.GetApplicants(id)
	if err != nil {
		t.Fatalf("GetApplicants: %v", err)
	}
	if len(applicants) != 1 || applicants[0] != worker {
		t.Errorf("expected exactly [%s], got %v", worker.Hex(), applicants)
	}
}

func TestAcceptWorkerPreconditions(t *testing.T) {
	l, _ := newTestLedger()
	id, _ := l.CreateTask(testParams(), baseTime)
	applyAt := baseTime.Add(10 * time.Second)
	if err := l.ApplyToTask(id, worker, applyAt); err != nil {
		t.Fatalf("ApplyToTask: %v", err)
	}
	if err := l.ApplyToTask(id, other, applyAt); err != nil {
		t.Fatalf("ApplyToTask: %v", err)
	}

	if err := l.AcceptWorker(999, creator, worker, applyAt); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown task: expected ErrNotFound, got %v", err)
	}
	if err := l.AcceptWorker(id, other, worker, applyAt); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-creator accepting: expected ErrForbidden, got %v", err)
	}
	if err := l.AcceptWorker(id, creator, common.Address{}, applyAt); !errors.Is(err, ErrNotAnApplicant) {
		t.Errorf("zero worker: expected ErrNotAnApplicant, got %v", err)
	}
	notApplied := common.HexToAddress("0x4444444444444444444444444444444444444444")
	if err := l.AcceptWorker(id, creator, notApplied, applyAt); !errors.Is(err, ErrNotAnApplicant) {
		t.Errorf("non-applicant: expected ErrNotAnApplicant, got %v", err)
	}
	if err := l.AcceptWorker(id, creator, worker, baseTime.Add(101*time.Second)); !errors.Is(err, ErrDeadlinePassed) {
		t.Errorf("after apply deadline: expected ErrDeadlinePassed, got %v", err)
	}

	if err := l.AcceptWorker(id, creator, worker, applyAt.Add(time.Second)); err != nil {
		t.Fatalf("AcceptWorker: %v", err)
	}
	// Accept is single-shot, even toward a different applicant.
	if err := l.AcceptWorker(id, creator, other, applyAt.Add(2*time.Second)); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second accept: expected ErrInvalidState, got %v", err)
	}

	task, _ := l.GetTask(id)
	if task.Worker != worker {
		t.Errorf("expected worker %s, got %s", worker.Hex(), task.Worker.Hex())
	}
	if ids := l.GetTasksByWorker(worker); len(ids) != 1 || ids[0] != id {
		t.Errorf("expected worker index [%d], got %v", id, ids)
	}
}

func TestSubmitWorkPreconditions(t *testing.T) {
	l, _ := newTestLedger()
	id := createInProgressTask(t, l)
	submitAt := baseTime.Add(50 * time.Second)

	if err := l.SubmitWork(999, worker, "QmX", submitAt); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown task: expected ErrNotFound, got %v", err)
	}
	if err := l.SubmitWork(id, other, "QmX", submitAt); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-worker submitting: expected ErrForbidden, got %v", err)
	}
	if err := l.SubmitWork(id, worker, "", submitAt); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("empty submission ref: expected ErrInvalidParameters, got %v", err)
	}
	if err := l.SubmitWork(id, worker, "QmX", baseTime.Add(201*time.Second)); !errors.Is(err, ErrDeadlinePassed) {
		t.Errorf("after delivery deadline: expected ErrDeadlinePassed, got %v", err)
	}

	if err := l.SubmitWork(id, worker, "QmX", submitAt); err != nil {
		t.Fatalf("SubmitWork: %v", err)
	}
	if err := l.SubmitWork(id, worker, "QmY", submitAt.Add(time.Second)); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second submission: expected ErrInvalidState, got %v", err)
	}
}

func TestCancelRefundsCreator(t *testing.T) {
	l, _ := newTestLedger()

	// Cancel while open.
	id, _ := l.CreateTask(testParams(), baseTime)
	if err := l.CancelTask(id, other); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-creator cancel: expected ErrForbidden, got %v", err)
	}
	if err := l.CancelTask(id, creator); err != nil {
		t.Fatalf("CancelTask: %v", err)
	}
	if got := l.GetPendingBalance(creator); got.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("expected refund 1000, got %s", got)
	}
	task, _ := l.GetTask(id)
	if task.Status != StatusCancelled {
		t.Errorf("expected cancelled, got %s", task.Status)
	}

	// Cancel while in progress.
	id2 := createInProgressTask(t, l)
	if err := l.CancelTask(id2, creator); err != nil {
		t.Fatalf("CancelTask in progress: %v", err)
	}
	if got := l.GetPendingBalance(creator); got.Cmp(big.NewInt(2000)) != 0 {
		t.Errorf("expected accumulated refund 2000, got %s", got)
	}

	// Terminal states reject further transitions.
	if err := l.CancelTask(id, creator); !errors.Is(err, ErrInvalidState) {
		t.Errorf("cancel of cancelled task: expected ErrInvalidState, got %v", err)
	}
	if err := l.ExpireTask(id, baseTime.Add(time.Hour)); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expire of cancelled task: expected ErrInvalidState, got %v", err)
	}
}

func TestExpireOpenTask(t *testing.T) {
	l, _ := newTestLedger()
	id, _ := l.CreateTask(testParams(), baseTime)

	if err := l.ExpireTask(id, baseTime.Add(50*time.Second)); !errors.Is(err, ErrTooEarly) {
		t.Errorf("before apply deadline: expected ErrTooEarly, got %v", err)
	}
	if err := l.ExpireTask(id, baseTime.Add(101*time.Second)); err != nil {
		t.Fatalf("ExpireTask: %v", err)
	}
	if got := l.GetPendingBalance(creator); got.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("expected full refund 1000, got %s", got)
	}
	task, _ := l.GetTask(id)
	if task.Status != StatusExpired {
		t.Errorf("expected expired, got %s", task.Status)
	}
}

func TestExpireInProgressTask(t *testing.T) {
	l, _ := newTestLedger()
	id := createInProgressTask(t, l)

	// The apply deadline no longer matters once a worker is accepted.
	if err := l.ExpireTask(id, baseTime.Add(150*time.Second)); !errors.Is(err, ErrTooEarly) {
		t.Errorf("before delivery deadline: expected ErrTooEarly, got %v", err)
	}
	if err := l.ExpireTask(id, baseTime.Add(201*time.Second)); err != nil {
		t.Fatalf("ExpireTask: %v", err)
	}
	if got := l.GetPendingBalance(creator); got.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("expected full refund 1000, got %s", got)
	}
}

func TestWithdraw(t *testing.T) {
	l, _ := newTestLedger()

	if _, err := l.Withdraw(creator); !errors.Is(err, ErrNoBalance) {
		t.Errorf("empty balance: expected ErrNoBalance, got %v", err)
	}

	id, _ := l.CreateTask(testParams(), baseTime)
	if err := l.CancelTask(id, creator); err != nil {
		t.Fatalf("CancelTask: %v", err)
	}

	amount, err := l.Withdraw(creator)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if amount.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("expected withdrawal of 1000, got %s", amount)
	}
	if got := l.GetPendingBalance(creator); got.Sign() != 0 {
		t.Errorf("expected zero balance after withdrawal, got %s", got)
	}
	if _, err := l.Withdraw(creator); !errors.Is(err, ErrNoBalance) {
		t.Errorf("repeat withdrawal: expected ErrNoBalance, got %v", err)
	}

	// The record persists at zero and accepts later credits.
	id2, _ := l.CreateTask(testParams(), baseTime)
	if err := l.CancelTask(id2, creator); err != nil {
		t.Fatalf("CancelTask: %v", err)
	}
	if got := l.GetPendingBalance(creator); got.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("expected re-credited balance 1000, got %s", got)
	}
}

func TestRatings(t *testing.T) {
	l, _ := newTestLedger()
	id := createInProgressTask(t, l)

	if err := l.RateWorker(id, creator, 5); !errors.Is(err, ErrInvalidState) {
		t.Errorf("rating before completion: expected ErrInvalidState, got %v", err)
	}

	submitAt := baseTime.Add(50 * time.Second)
	if err := l.SubmitWork(id, worker, "QmX", submitAt); err != nil {
		t.Fatalf("SubmitWork: %v", err)
	}
	if err := l.ApproveWork(id, creator, submitAt.Add(time.Minute)); err != nil {
		t.Fatalf("ApproveWork: %v", err)
	}

	if err := l.RateWorker(id, creator, 0); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("zero stars: expected ErrInvalidParameters, got %v", err)
	}
	if err := l.RateWorker(id, creator, 6); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("six stars: expected ErrInvalidParameters, got %v", err)
	}
	if err := l.RateWorker(id, other, 5); !errors.Is(err, ErrForbidden) {
		t.Errorf("third party rating worker: expected ErrForbidden, got %v", err)
	}
	if err := l.RateCreator(id, other, 5); !errors.Is(err, ErrForbidden) {
		t.Errorf("third party rating creator: expected ErrForbidden, got %v", err)
	}

	if err := l.RateWorker(id, creator, 4); err != nil {
		t.Fatalf("RateWorker: %v", err)
	}
	if err := l.RateWorker(id, creator, 5); !errors.Is(err, ErrAlreadyRated) {
		t.Errorf("second worker rating: expected ErrAlreadyRated, got %v", err)
	}
	if err := l.RateCreator(id, worker, 3); err != nil {
		t.Fatalf("RateCreator: %v", err)
	}
	if err := l.RateCreator(id, worker, 1); !errors.Is(err, ErrAlreadyRated) {
		t.Errorf("second creator rating: expected ErrAlreadyRated, got %v", err)
	}

	if agg := l.GetRating(worker); agg.TotalStars != 4 || agg.Count != 1 || agg.Average() != 4 {
		t.Errorf("unexpected worker aggregate %+v", agg)
	}
	if agg := l.GetRating(creator); agg.TotalStars != 3 || agg.Count != 1 || agg.Average() != 3 {
		t.Errorf("unexpected creator aggregate %+v", agg)
	}
	if agg := l.GetRating(other); agg.Count != 0 || agg.Average() != 0 {
		t.Errorf("expected zero aggregate for unrated address, got %+v", agg)
	}
}

// Every unit of reward ever locked must come back out: either as a
// refund to the creator or as worker payment plus platform fee.
func TestValueConservation(t *testing.T) {
	l, _ := newTestLedger()
	locked := new(big.Int)

	// Task 1: completed.
	p := testParams()
	p.Reward = big.NewInt(1_000_000_007) // odd magnitude to exercise rounding
	id1, err := l.CreateTask(p, baseTime)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	locked.Add(locked, p.Reward)
	if err := l.ApplyToTask(id1, worker, baseTime.Add(time.Second)); err != nil {
		t.Fatalf("ApplyToTask: %v", err)
	}
	if err := l.AcceptWorker(id1, creator, worker, baseTime.Add(2*time.Second)); err != nil {
		t.Fatalf("AcceptWorker: %v", err)
	}
	if err := l.SubmitWork(id1, worker, "QmX", baseTime.Add(3*time.Second)); err != nil {
		t.Fatalf("SubmitWork: %v", err)
	}
	if err := l.ApproveWork(id1, creator, baseTime.Add(4*time.Second)); err != nil {
		t.Fatalf("ApproveWork: %v", err)
	}

	// Task 2: cancelled.
	id2, _ := l.CreateTask(testParams(), baseTime)
	locked.Add(locked, big.NewInt(1000))
	if err := l.CancelTask(id2, creator); err != nil {
		t.Fatalf("CancelTask: %v", err)
	}

	// Task 3: expired.
	id3, _ := l.CreateTask(testParams(), baseTime)
	locked.Add(locked, big.NewInt(1000))
	if err := l.ExpireTask(id3, baseTime.Add(101*time.Second)); err != nil {
		t.Fatalf("ExpireTask: %v", err)
	}

	credited := new(big.Int)
	for _, account := range []common.Address{creator, worker, treasury} {
		credited.Add(credited, l.GetPendingBalance(account))
	}
	if credited.Cmp(locked) != 0 {
		t.Errorf("value not conserved: locked %s, credited %s", locked, credited)
	}

	// fee + payment == reward exactly for the completed task.
	fee, payment := SplitReward(big.NewInt(1_000_000_007))
	sum := new(big.Int).Add(fee, payment)
	if sum.Cmp(big.NewInt(1_000_000_007)) != 0 {
		t.Errorf("fee %s + payment %s != reward", fee, payment)
	}
	if got := l.GetPendingBalance(worker); got.Cmp(payment) != 0 {
		t.Errorf("expected worker balance %s, got %s", payment, got)
	}
}

func TestIndexQueries(t *testing.T) {
	l, _ := newTestLedger()

	// Empty index queries are valid, not errors.
	if ids := l.GetTasksByCreator(creator); len(ids) != 0 {
		t.Errorf("expected empty creator index, got %v", ids)
	}
	if ids := l.GetTasksByWorker(worker); len(ids) != 0 {
		t.Errorf("expected empty worker index, got %v", ids)
	}
	if _, err := l.GetTask(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := l.GetApplicants(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	id1, _ := l.CreateTask(testParams(), baseTime)
	id2, _ := l.CreateTask(testParams(), baseTime)
	ids := l.GetTasksByCreator(creator)
	if len(ids) != 2 || ids[0] != id1 || ids[1] != id2 {
		t.Errorf("expected creator index [%d %d], got %v", id1, id2, ids)
	}
}

func TestDueTasks(t *testing.T) {
	l, _ := newTestLedger()

	openID, _ := l.CreateTask(testParams(), baseTime)
	inProgressID := createInProgressTask(t, l)
	pendingID := createInProgressTask(t, l)
	submitAt := baseTime.Add(50 * time.Second)
	if err := l.SubmitWork(pendingID, worker, "QmX", submitAt); err != nil {
		t.Fatalf("SubmitWork: %v", err)
	}

	expirable, approvable := l.DueTasks(baseTime.Add(10 * time.Second))
	if len(expirable) != 0 || len(approvable) != 0 {
		t.Errorf("nothing should be due yet, got %v / %v", expirable, approvable)
	}

	// Past every deadline.
	expirable, approvable = l.DueTasks(submitAt.Add(ReviewPeriod).Add(time.Second))
	if len(expirable) != 2 || expirable[0] != openID || expirable[1] != inProgressID {
		t.Errorf("expected expirable [%d %d], got %v", openID, inProgressID, expirable)
	}
	if len(approvable) != 1 || approvable[0] != pendingID {
		t.Errorf("expected approvable [%d], got %v", pendingID, approvable)
	}
}

func TestTaskCopyIsolation(t *testing.T) {
	l, _ := newTestLedger()
	id, _ := l.CreateTask(testParams(), baseTime)

	task, _ := l.GetTask(id)
	task.Title = "mutated"
	task.Reward.SetInt64(1)

	fresh, _ := l.GetTask(id)
	if fresh.Title != "Implement payout module" {
		t.Error("query result mutation leaked into ledger state")
	}
	if fresh.Reward.Cmp(big.NewInt(1000)) != 0 {
		t.Error("reward mutation leaked into ledger state")
	}
}
