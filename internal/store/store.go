// Package store holds the client-side copy of the task list and keeps it in
// sync with the remote task API.
//
// A Store owns one collection. Each operation makes a single backend call and
// changes the collection only after the backend confirmed the change with the
// expected status. Failures leave the collection as it was, are logged, and are
// returned in the Result; whether to show them is up to the caller.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jacksmith/tasklist/internal/model"
)

// Backend is the remote task API. *api.Client satisfies it.
type Backend interface {
	ListTasks(ctx context.Context) (model.Collection, error)
	CreateTask(ctx context.Context, name string) (model.Task, error)
	UpdateTask(ctx context.Context, id, name string) error
	DeleteTask(ctx context.Context, id string) error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the [*slog.Logger] failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSerializedWrites makes update and delete calls for the same task id run
// one at a time, in the order they acquired the id. Calls for different ids
// still run concurrently. Without it, whichever response arrives last wins.
func WithSerializedWrites(enabled bool) Option {
	return func(s *Store) {
		s.serialize = enabled
	}
}

// Store is the single source of truth for the task collection shown to the UI.
// It is safe for concurrent use.
type Store struct {
	backend   Backend
	logger    *slog.Logger
	serialize bool
	locks     *keyedMutex

	mu      sync.Mutex
	tasks   model.Collection
	subs    map[int]chan model.Collection
	nextSub int
	closed  bool

	activateOnce sync.Once
	activated    Result
}

// New returns a Store with an empty collection.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  slog.Default(),
		locks:   newKeyedMutex(),
		tasks:   model.Collection{},
		subs:    make(map[int]chan model.Collection),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Activate performs the initial load. Only the first call reaches the
// backend; later calls return the first call's result.
func (s *Store) Activate(ctx context.Context) Result {
	s.activateOnce.Do(func() {
		s.activated = s.Load(ctx)
	})
	return s.activated
}

// Tasks returns a snapshot of the current collection.
func (s *Store) Tasks() model.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Clone()
}

// Subscribe returns a channel that receives a snapshot after every completed
// successful operation. The channel holds at most one pending snapshot; a
// slow reader only ever sees the latest one. cancel closes the channel.
func (s *Store) Subscribe() (<-chan model.Collection, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan model.Collection, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// Close drops every subscriber. Operations keep working afterwards but no
// longer notify anyone.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// Load replaces the collection with the backend's tasks, in server order.
// Duplicate ids in the response keep their first occurrence.
func (s *Store) Load(ctx context.Context) Result {
	tasks, err := s.backend.ListTasks(ctx)
	if err != nil {
		return s.fail(ctx, OpLoad, model.Task{}, err)
	}

	tasks, dropped := tasks.Dedupe()
	if len(dropped) > 0 {
		s.logger.WarnContext(ctx, "backend returned duplicate task ids", "ids", dropped)
	}

	snap := s.commit(func(model.Collection) model.Collection { return tasks })
	s.logger.DebugContext(ctx, "tasks loaded", "count", len(snap))
	return Result{Op: OpLoad, Tasks: snap}
}

// Add creates a task named name and appends the created record.
// The name is forwarded unchanged, including empty or blank names.
func (s *Store) Add(ctx context.Context, name string) Result {
	task, err := s.backend.CreateTask(ctx, name)
	if err != nil {
		return s.fail(ctx, OpAdd, model.Task{Name: name}, err)
	}

	snap := s.commit(func(c model.Collection) model.Collection {
		if c.Contains(task.ID) {
			s.logger.WarnContext(ctx, "created task id already present, replacing", "id", task.ID)
		}
		return c.Append(task)
	})
	s.logger.DebugContext(ctx, "task added", "id", task.ID)
	return Result{Op: OpAdd, Task: task, Tasks: snap}
}

// Update renames task id. The entry keeps its position. If id is not in the
// local collection the backend is still called and local state is unchanged.
func (s *Store) Update(ctx context.Context, id, name string) Result {
	target := model.Task{ID: id, Name: name}

	unlock, err := s.lockTask(ctx, id)
	if err != nil {
		return s.fail(ctx, OpUpdate, target, err)
	}
	defer unlock()

	if err := s.backend.UpdateTask(ctx, id, name); err != nil {
		return s.fail(ctx, OpUpdate, target, err)
	}

	snap := s.commit(func(c model.Collection) model.Collection { return c.Rename(id, name) })
	s.logger.DebugContext(ctx, "task updated", "id", id)
	return Result{Op: OpUpdate, Task: target, Tasks: snap}
}

// Delete removes task id. Unknown ids leave local state unchanged.
func (s *Store) Delete(ctx context.Context, id string) Result {
	target := model.Task{ID: id}
	if t, ok := s.Tasks().Find(id); ok {
		target = t
	}

	unlock, err := s.lockTask(ctx, id)
	if err != nil {
		return s.fail(ctx, OpDelete, target, err)
	}
	defer unlock()

	if err := s.backend.DeleteTask(ctx, id); err != nil {
		return s.fail(ctx, OpDelete, target, err)
	}

	snap := s.commit(func(c model.Collection) model.Collection { return c.Remove(id) })
	s.logger.DebugContext(ctx, "task deleted", "id", id)
	return Result{Op: OpDelete, Task: target, Tasks: snap}
}

func (s *Store) lockTask(ctx context.Context, id string) (func(), error) {
	if !s.serialize {
		return func() {}, nil
	}
	return s.locks.Lock(ctx, id)
}

// commit swaps in the collection returned by apply and notifies subscribers.
// apply receives the collection current at commit time, not at call time.
func (s *Store) commit(apply func(model.Collection) model.Collection) model.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := apply(s.tasks)
	if next == nil {
		next = model.Collection{}
	}
	s.tasks = next

	for _, ch := range s.subs {
		// Replace any unread snapshot. Only commit sends, under s.mu, so the
		// send below cannot block.
		select {
		case <-ch:
		default:
		}
		ch <- next.Clone()
	}
	return next.Clone()
}

func (s *Store) fail(ctx context.Context, op Op, task model.Task, err error) Result {
	opErr := &OpError{Op: op, ID: task.ID, Err: err}
	attrs := []any{"op", string(op), "error", err}
	if task.ID != "" {
		attrs = append(attrs, "id", task.ID)
	}
	s.logger.ErrorContext(ctx, opErr.kind().Error(), attrs...)
	return Result{Op: op, Task: task, Tasks: s.Tasks(), Err: opErr}
}
