package driver

// Scheduler arranges for fn to run once on a later frame. The returned cancel
// func prevents a pending call and may be called any number of times.
type Scheduler interface {
	Schedule(fn func()) (cancel func())
}

// FrameScheduler queues callbacks until the host pumps it, typically once per
// animation frame. It is not safe for concurrent use; hosts pump it from the
// same goroutine that schedules.
type FrameScheduler struct {
	queue  []*frameTask
	nextID uint64
}

type frameTask struct {
	id        uint64
	fn        func()
	cancelled bool
}

// NewFrameScheduler returns an empty scheduler.
func NewFrameScheduler() *FrameScheduler { return &FrameScheduler{} }

// Schedule implements Scheduler.
func (s *FrameScheduler) Schedule(fn func()) func() {
	s.nextID++
	task := &frameTask{id: s.nextID, fn: fn}
	s.queue = append(s.queue, task)
	return func() { task.cancelled = true }
}

// Pending returns the number of live callbacks waiting for the next Pump.
func (s *FrameScheduler) Pending() int {
	n := 0
	for _, task := range s.queue {
		if !task.cancelled {
			n++
		}
	}
	return n
}

// Pump runs every callback queued before the call. Callbacks scheduled while
// pumping wait for the next Pump. It returns the number of callbacks run.
func (s *FrameScheduler) Pump() int {
	batch := s.queue
	s.queue = nil
	ran := 0
	for _, task := range batch {
		if task.cancelled {
			continue
		}
		task.cancelled = true
		task.fn()
		ran++
	}
	return ran
}
