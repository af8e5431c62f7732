package promise

import (
	"sync"

	"code.hybscloud.com/lfq"
)

// streamCell is the multi-shot sibling of cell: instead of one outcome
// it carries an ordered sequence of Reports, terminated by a Complete
// or a Fail. Items pushed before a consumer subscribes sit in a
// bounded lock-free MPSC queue (the fast path); if that queue is ever
// full, overflow items fall back to a mutex-guarded slice (the slow
// path) rather than blocking the producer. Subscribing drains both, in
// order, before going live.
type streamCell[T any] struct {
	mu       sync.Mutex
	q        lfq.Queue[Report[T]]
	overflow []Report[T]

	consumer func(Report[T])
	live     bool

	closed   bool
	closeErr error
	onClose  func(error)
}

func newStreamCell[T any](bufSize int) *streamCell[T] {
	if bufSize <= 0 {
		bufSize = 64
	}
	return &streamCell[T]{q: lfq.NewMPSC[Report[T]](bufSize)}
}

// push never invokes the consumer while s.mu is held: the consumer is
// user code (via wrapped in ForEach), and a callback that itself calls
// back into this stream (Push from inside a handler is a realistic
// aggregation/chaining pattern) would deadlock on the non-reentrant
// mutex otherwise.
func (s *streamCell[T]) push(r Report[T]) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStreamClosed
	}
	if s.live {
		consumer := s.consumer
		s.mu.Unlock()
		consumer(r)
		return nil
	}
	if err := s.q.Enqueue(&r); err != nil {
		s.overflow = append(s.overflow, r)
	}
	s.mu.Unlock()
	return nil
}

func (s *streamCell[T]) close(err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		panic(errContractViolation{"stream already closed"})
	}
	s.closed = true
	s.closeErr = err
	onClose := s.onClose
	s.mu.Unlock()
	if onClose != nil {
		onClose(err)
	}
}

// subscribe installs the single permitted consumer, draining whatever
// was buffered (queue first, since it's always the older half of the
// backlog, then overflow) before going live. onClose is recorded to
// fire once, later, if the stream isn't already closed; if it is, the
// caller is told so directly instead, since the close already
// happened and there's no future event to hook.
func (s *streamCell[T]) subscribe(fn func(Report[T]), onClose func(error)) (buffered []Report[T], closed bool, closeErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumer != nil {
		panic(errContractViolation{"a stream supports exactly one subscriber"})
	}
	for {
		r, err := s.q.Dequeue()
		if err != nil {
			break
		}
		buffered = append(buffered, r)
	}
	buffered = append(buffered, s.overflow...)
	s.overflow = nil
	s.consumer = fn
	s.live = true
	if s.closed {
		return buffered, true, s.closeErr
	}
	s.onClose = onClose
	return buffered, false, nil
}

// StreamPromise is the producer side of a stream cell: any number of
// Push calls, followed by exactly one Complete or Fail.
type StreamPromise[T any] struct {
	s *streamCell[T]
}

// StreamHandle is the consumer side of a stream cell.
type StreamHandle[T any] struct {
	s *streamCell[T]
}

// NewStream creates a linked StreamPromise/StreamHandle pair. bufSize
// sizes the lock-free buffer used to hold items pushed before a
// consumer subscribes; pushes beyond that capacity still succeed, via
// the mutex-guarded overflow path, so bufSize is a performance knob,
// not a correctness one.
func NewStream[T any](bufSize int) (*StreamPromise[T], StreamHandle[T]) {
	s := newStreamCell[T](bufSize)
	return &StreamPromise[T]{s: s}, StreamHandle[T]{s: s}
}

// Push appends one more item to the stream. It returns ErrStreamClosed
// if Complete or Fail was already called.
func (p *StreamPromise[T]) Push(v T) error {
	return p.s.push(Ok(v))
}

// PushReport appends a raw Report, preserving whatever value/error
// split the caller already computed.
func (p *StreamPromise[T]) PushReport(r Report[T]) error {
	return p.s.push(r)
}

// Complete terminates the stream successfully. Calling Complete or
// Fail more than once is a contract violation.
func (p *StreamPromise[T]) Complete() {
	p.s.close(nil)
}

// Fail terminates the stream with an error. Calling Complete or Fail
// more than once is a contract violation.
func (p *StreamPromise[T]) Fail(err error) {
	p.s.close(err)
}

// ForEach installs the stream's single permitted per-item callback and
// returns a Handle that resolves once the stream is later Completed
// (success) or Failed (that error). fn runs once per pushed item, in
// push order, including everything pushed before ForEach was called.
func (h StreamHandle[T]) ForEach(fn sinkCallback[T], opts ...Option) Handle[struct{}] {
	cfg := resolveConfig(opts)
	p, out := NewPromise[struct{}]()

	wrapped := func(r Report[T]) {
		cfg.exec.Submit(func() {
			defer recoverPanicPolicy(cfg.logger, cfg.policy, "StreamHandle.ForEach")
			fn(r)
		})
	}

	finish := func(err error) {
		if err != nil {
			p.Fail(err)
			return
		}
		p.Fulfill(struct{}{})
	}

	buffered, closed, closeErr := h.s.subscribe(wrapped, finish)
	for _, r := range buffered {
		wrapped(r)
	}
	if closed {
		finish(closeErr)
	}
	return out
}
