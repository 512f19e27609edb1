package ledger

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Task is the central ledger entity. ID and Reward are fixed at creation;
// everything else is mutated only by the lifecycle operations. Records
// are never deleted, terminal tasks stay queryable.
type Task struct {
	ID               uint64
	Creator          common.Address
	Worker           common.Address // zero until an applicant is accepted
	Title            string
	MetadataRef      string
	SubmissionRef    string // empty until work is submitted
	Reward           *big.Int
	Status           TaskStatus
	Category         Category
	TagsDigest       common.Hash
	CreatedAt        time.Time
	ApplyDeadline    time.Time
	DeliveryDeadline time.Time
	ReviewDeadline   time.Time // zero until work is submitted
	AcceptedAt       time.Time
	CompletedAt      time.Time
	WorkerRated      bool
	CreatorRated     bool
}

// HasWorker reports whether an applicant has been accepted.
func (t *Task) HasWorker() bool {
	return t.Worker != (common.Address{})
}

// clone returns a copy safe to hand out; Reward is the only reference
// field and is never mutated after creation, so a shallow copy with a
// fresh big.Int is enough.
func (t *Task) clone() Task {
	out := *t
	out.Reward = new(big.Int).Set(t.Reward)
	return out
}

// taskRecord bundles a task with its applicant set. The slice preserves
// application order for auditability; the map gives O(1) membership.
type taskRecord struct {
	task          Task
	applicantList []common.Address
	applicantSet  map[common.Address]struct{}
}

func newTaskRecord(task Task) *taskRecord {
	return &taskRecord{
		task:         task,
		applicantSet: make(map[common.Address]struct{}),
	}
}

func (r *taskRecord) hasApplicant(addr common.Address) bool {
	_, ok := r.applicantSet[addr]
	return ok
}

func (r *taskRecord) addApplicant(addr common.Address) {
	r.applicantSet[addr] = struct{}{}
	r.applicantList = append(r.applicantList, addr)
}

// RatingAggregate accumulates stars received by an address. The average
// is derived, never stored.
type RatingAggregate struct {
	TotalStars uint64
	Count      uint64
}

func (r RatingAggregate) Average() float64 {
	if r.Count == 0 {
		return 0
	}
	return float64(r.TotalStars) / float64(r.Count)
}
