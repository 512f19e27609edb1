package ledger

import (
	"math/big"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// GetTask returns a copy of the task record.
func (l *TaskLedger) GetTask(taskID uint64) (Task, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.tasks[taskID]
	if !ok {
		return Task{}, ErrNotFound
	}
	return rec.task.clone(), nil
}

// GetApplicants returns the task's applicants in application order.
func (l *TaskLedger) GetApplicants(taskID uint64) ([]common.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.tasks[taskID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]common.Address, len(rec.applicantList))
	copy(out, rec.applicantList)
	return out, nil
}

// GetTasksByCreator returns the ids of every task posted by the address.
// An address with no tasks yields an empty slice, not an error.
func (l *TaskLedger) GetTasksByCreator(creator common.Address) []uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]uint64, len(l.byCreator[creator]))
	copy(out, l.byCreator[creator])
	return out
}

// GetTasksByWorker returns the ids of every task the address was
// accepted for.
func (l *TaskLedger) GetTasksByWorker(worker common.Address) []uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]uint64, len(l.byWorker[worker]))
	copy(out, l.byWorker[worker])
	return out
}

// GetPendingBalance returns the withdrawable amount credited to the
// address. Unknown addresses have a zero balance.
func (l *TaskLedger) GetPendingBalance(account common.Address) *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if balance, ok := l.balances[account]; ok {
		return new(big.Int).Set(balance)
	}
	return new(big.Int)
}

// GetRating returns the address's rating aggregate. Unrated addresses
// have a zero aggregate.
func (l *TaskLedger) GetRating(account common.Address) RatingAggregate {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if agg, ok := l.ratings[account]; ok {
		return *agg
	}
	return RatingAggregate{}
}

// GetTotalTasks returns how many tasks have ever been created.
func (l *TaskLedger) GetTotalTasks() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.nextID - 1
}

// DueTasks returns the ids of tasks whose apply/delivery deadline has
// passed (candidates for ExpireTask) and tasks whose review deadline has
// passed (candidates for AutoApprove), as observed at the supplied time.
func (l *TaskLedger) DueTasks(now time.Time) (expirable, approvable []uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for id, rec := range l.tasks {
		switch rec.task.Status {
		case StatusOpen:
			if now.After(rec.task.ApplyDeadline) {
				expirable = append(expirable, id)
			}
		case StatusInProgress:
			if now.After(rec.task.DeliveryDeadline) {
				expirable = append(expirable, id)
			}
		case StatusPendingApproval:
			if now.After(rec.task.ReviewDeadline) {
				approvable = append(approvable, id)
			}
		}
	}
	sort.Slice(expirable, func(i, j int) bool { return expirable[i] < expirable[j] })
	sort.Slice(approvable, func(i, j int) bool { return approvable[i] < approvable[j] })
	return expirable, approvable
}
