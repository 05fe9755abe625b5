package domain

import (
	"slices"
	"time"
)

type Kind string

const (
	KindActivity  Kind = "activity"
	KindTask      Kind = "task"
	KindNote      Kind = "note"
	KindComplaint Kind = "complaint"
	KindContracts Kind = "contracts"
	KindStock     Kind = "stock"
)

// ScannedKinds are the kinds the reconciliation monitor re-scans.
var ScannedKinds = []Kind{KindActivity, KindTask, KindNote}

func (k Kind) Valid() bool {
	switch k {
	case KindActivity, KindTask, KindNote, KindComplaint, KindContracts, KindStock:
		return true
	}
	return false
}

// Shared reports whether the kind is backed by a sharedWith set. Contracts and stock
// are broadcast to every eligible user instead.
func (k Kind) Shared() bool {
	switch k {
	case KindActivity, KindTask, KindNote, KindComplaint:
		return true
	}
	return false
}

type UserRef struct {
	Id       string
	Username string
}

// SharedItem is the notification-relevant projection of an activity, task, note or complaint.
type SharedItem struct {
	Kind       Kind
	Id         string
	Label      string
	CreatedBy  UserRef
	SharedWith []string
	UpdatedAt  time.Time
}

// Recipients returns sharedWith without the owner.
func (i SharedItem) Recipients() []string {
	return ExcludeUser(i.SharedWith, i.CreatedBy.Id)
}

// ExcludeUser returns a de-duplicated copy of userIds without exclude, keeping the input order.
func ExcludeUser(userIds []string, exclude string) []string {
	res := make([]string, 0, len(userIds))
	for _, id := range userIds {
		if id == "" || id == exclude || slices.Contains(res, id) {
			continue
		}
		res = append(res, id)
	}
	return res
}
