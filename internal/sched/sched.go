// Package sched provides a single-threaded cooperative task scheduler.
//
// A task is a sequence of steps. After each step it tells the scheduler
// whether to continue on the next tick, sleep for a number of ticks, or
// finish. Tasks get exclusive access to the shared state while they run,
// one at a time, in queue order.
package sched

// Result is returned by a task step.
type Result struct {
	done  bool
	sleep int
}

// Continue resumes the task on the next tick.
func Continue() Result {
	return Result{sleep: 1}
}

// Sleep suspends the task so that it resumes on the n-th following tick.
// Values below 1 behave like Continue.
func Sleep(n int) Result {
	if n < 1 {
		n = 1
	}
	return Result{sleep: n}
}

// Done finishes the task.
func Done() Result {
	return Result{done: true}
}

// IsDone reports whether the result finishes the task.
func (r Result) IsDone() bool {
	return r.done
}

// Ticks returns the number of ticks the task sleeps for.
func (r Result) Ticks() int {
	return r.sleep
}

// Task is a suspendable unit of work over shared state S.
type Task[S any] interface {
	Step(s *S) Result
}

// Func adapts a step function to a Task.
type Func[S any] func(s *S) Result

// Step calls f.
func (f Func[S]) Step(s *S) Result {
	return f(s)
}

// Sequence builds a task that runs each step function once, in order.
// Each function's result decides how long to wait before the next one;
// returning Done ends the sequence early.
func Sequence[S any](steps ...func(s *S) Result) Task[S] {
	i := 0
	return Func[S](func(s *S) Result {
		if i >= len(steps) {
			return Done()
		}
		r := steps[i](s)
		i++
		if r.IsDone() || i >= len(steps) {
			return Done()
		}
		return r
	})
}

// entry is a queued task with its wake-up tick.
type entry[S any] struct {
	task Task[S]
	wake uint64
}

// Scheduler holds a queue of tasks over shared state S.
// It is not safe for concurrent use.
type Scheduler[S any] struct {
	tasks    []entry[S]
	incoming []entry[S]
	spare    []entry[S]
	tick     uint64
	running  bool
}

// New creates an empty scheduler.
func New[S any]() *Scheduler[S] {
	return &Scheduler[S]{}
}

// Queue appends a task. It becomes eligible on the next RunUntilStall call;
// a task queued while a pass is running never runs in that pass.
func (q *Scheduler[S]) Queue(t Task[S]) {
	e := entry[S]{task: t, wake: q.tick + 1}
	if q.running {
		q.incoming = append(q.incoming, e)
		return
	}
	q.tasks = append(q.tasks, e)
}

// QueueFunc is Queue for a step function.
func (q *Scheduler[S]) QueueFunc(f func(s *S) Result) {
	q.Queue(Func[S](f))
}

// Len returns the number of pending tasks.
func (q *Scheduler[S]) Len() int {
	return len(q.tasks) + len(q.incoming)
}

// Tick returns the number of RunUntilStall passes so far.
func (q *Scheduler[S]) Tick() uint64 {
	return q.tick
}

// RunUntilStall advances every ready task exactly once. Sleeping tasks are
// skipped. It is meant to be called once per frame.
func (q *Scheduler[S]) RunUntilStall(s *S) {
	q.tick++
	q.pass(s, false)
}

// DrainToCompletion drives all tasks, ignoring their sleeps, until the
// queue is empty. Used before the owning unit is unloaded so in-flight
// effects resolve fully instead of being abandoned.
func (q *Scheduler[S]) DrainToCompletion(s *S) {
	for q.Len() > 0 {
		q.tick++
		q.pass(s, true)
	}
}

// pass steps the ready tasks once and rebuilds the queue. If a step panics
// the panicking task is dropped and the remaining tasks stay queued.
func (q *Scheduler[S]) pass(s *S, ignoreSleep bool) {
	q.running = true
	cur := q.tasks
	next := q.spare[:0]
	i := 0
	defer func() {
		if i < len(cur) {
			next = append(next, cur[i+1:]...)
		}
		clear(cur)
		q.spare = cur[:0]
		q.tasks = append(next, q.incoming...)
		clear(q.incoming)
		q.incoming = q.incoming[:0]
		q.running = false
	}()

	for ; i < len(cur); i++ {
		e := cur[i]
		if !ignoreSleep && e.wake > q.tick {
			next = append(next, e)
			continue
		}
		r := e.task.Step(s)
		if r.IsDone() {
			continue
		}
		e.wake = q.tick + uint64(r.Ticks())
		next = append(next, e)
	}
}
