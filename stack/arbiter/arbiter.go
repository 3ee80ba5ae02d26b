// Package arbiter decides which nested scrollable regions may scroll.
//
// Regions are partitioned by axis. Within a partition the earliest member in
// insertion order wins and every later member is disabled, so a gesture along
// that axis always has exactly one nested target. Regions on different axes
// never conflict: a horizontal carousel and a vertical list both scroll.
package arbiter

import (
	"errors"

	"github.com/hnimtadd/stackview/logger"
	"github.com/hnimtadd/stackview/stack/datastruct"
)

var (
	ErrAlreadyAttached = errors.New("scrollable already attached")
	ErrNotAttached     = errors.New("scrollable not attached")
)

var partitions = [...]Axis{AxisHorizontal, AxisVertical}

// Reconcile computes the enabled flag for every member of the live set,
// given their axes in insertion order.
//
// A member is enabled iff it is the earliest enabled member of every
// partition it belongs to. A member scrolling along both axes that loses
// either partition is disabled and claims neither, so a later member of the
// other partition can still win it.
func Reconcile(axes []Axis) []bool {
	enabled := make([]bool, len(axes))
	var claimed [len(partitions)]bool
	for i, a := range axes {
		a = a.Normalize()
		free := true
		for pi, p := range partitions {
			if a.Has(p) && claimed[pi] {
				free = false
			}
		}
		if !free {
			continue
		}
		for pi, p := range partitions {
			if a.Has(p) {
				claimed[pi] = true
			}
		}
		enabled[i] = true
	}
	return enabled
}

type member struct {
	scrollable Scrollable
	enabled    bool
}

// Decision is the arbitrated state of one member.
type Decision struct {
	Scrollable Scrollable
	Axes       Axis
	Enabled    bool
}

// Arbiter owns the live set of scrollable descendants of one container.
// Members are compared by interface equality, so implementations must be
// comparable (pointer receivers in practice).
type Arbiter struct {
	members *datastruct.List[*member]
	logger  logger.Logger
}

func New(log logger.Logger) *Arbiter {
	return &Arbiter{
		members: datastruct.NewList[*member](),
		logger:  logger.OrDiscard(log),
	}
}

func (a *Arbiter) find(s Scrollable) *datastruct.Node[*member] {
	return a.members.Find(func(m *member) bool { return m.scrollable == s })
}

// Add appends s to the live set. The caller reconciles afterwards.
func (a *Arbiter) Add(s Scrollable) error {
	if a.find(s) != nil {
		return ErrAlreadyAttached
	}
	a.members.PushBack(&member{scrollable: s})
	return nil
}

// Remove drops s from the live set. Its enabled flag is left as it was last
// applied.
func (a *Arbiter) Remove(s Scrollable) error {
	node := a.find(s)
	if node == nil {
		return ErrNotAttached
	}
	a.members.Remove(node)
	return nil
}

func (a *Arbiter) Contains(s Scrollable) bool {
	return a.find(s) != nil
}

func (a *Arbiter) Len() int {
	return a.members.Len()
}

// Enabled returns the last applied flag of s.
func (a *Arbiter) Enabled(s Scrollable) (enabled bool, ok bool) {
	node := a.find(s)
	if node == nil {
		return false, false
	}
	return node.Data.enabled, true
}

// Decisions recomputes the policy over the whole live set without applying
// it.
func (a *Arbiter) Decisions() []Decision {
	axes := make([]Axis, 0, a.members.Len())
	for m := range a.members.All() {
		axes = append(axes, AxesOf(m.scrollable))
	}
	flags := Reconcile(axes)

	out := make([]Decision, 0, len(flags))
	for i, m := range a.members.Nodes() {
		out = append(out, Decision{
			Scrollable: m.Data.scrollable,
			Axes:       axes[i],
			Enabled:    flags[i],
		})
	}
	return out
}

// Reconcile recomputes the policy, records it and returns it. Pushing the
// flags to the members is left to Apply so that callers can do it outside of
// their own locks.
func (a *Arbiter) Reconcile() []Decision {
	decisions := a.Decisions()
	i := 0
	for m := range a.members.All() {
		m.enabled = decisions[i].Enabled
		i++
	}
	a.logger.Debug("reconciled scrollables", "members", len(decisions))
	return decisions
}

// Apply pushes each decision to its scrollable.
func Apply(decisions []Decision) {
	for _, d := range decisions {
		d.Scrollable.SetScrollEnabled(d.Enabled)
	}
}
