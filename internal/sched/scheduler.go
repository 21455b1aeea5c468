// Package sched runs one-shot tasks on a simulated clock.
package sched

import (
	"container/heap"
	"time"
)

// TaskID identifies a scheduled task. The zero value never identifies a task.
type TaskID uint64

// Scheduler is a min-heap of (fire time, task) pairs keyed by simulated time.
// The clock only moves through Advance. Not safe for concurrent use.
type Scheduler struct {
	now    time.Duration
	queue  taskQueue
	byID   map[TaskID]*task
	nextID TaskID
	seq    uint64
}

// New creates a scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{
		byID: make(map[TaskID]*task),
	}
}

// Now returns the simulated time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once the clock reaches Now()+delay. owner tags the
// task for bulk cancellation and may be empty.
func (s *Scheduler) After(delay time.Duration, owner string, fn func()) TaskID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.seq++
	t := &task{
		id:    s.nextID,
		owner: owner,
		at:    s.now + delay,
		seq:   s.seq,
		fn:    fn,
	}
	heap.Push(&s.queue, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel removes a pending task. It returns false if the task already ran or
// was cancelled.
func (s *Scheduler) Cancel(id TaskID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, t.index)
	delete(s.byID, id)
	return true
}

// CancelOwner removes every pending task tagged with owner and returns how many
// were removed.
func (s *Scheduler) CancelOwner(owner string) int {
	var ids []TaskID
	for _, t := range s.queue {
		if t.owner == owner {
			ids = append(ids, t.id)
		}
	}
	for _, id := range ids {
		s.Cancel(id)
	}
	return len(ids)
}

// CancelAll drops every pending task.
func (s *Scheduler) CancelAll() int {
	n := len(s.queue)
	s.queue = nil
	s.byID = make(map[TaskID]*task)
	return n
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// PendingFor returns the number of waiting tasks tagged with owner.
func (s *Scheduler) PendingFor(owner string) int {
	n := 0
	for _, t := range s.queue {
		if t.owner == owner {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt without running anything.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
}

// RunDue runs every task whose fire time is at or before Now(), earliest first.
// Tasks scheduled by a running task run in the same call if they are already due.
func (s *Scheduler) RunDue() int {
	ran := 0
	for len(s.queue) > 0 && s.queue[0].at <= s.now {
		t := heap.Pop(&s.queue).(*task)
		delete(s.byID, t.id)
		t.fn()
		ran++
	}
	return ran
}
