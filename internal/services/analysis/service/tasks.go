package service

import (
	"context"
	"sync"
	"time"

	perr "clipscout/internal/platform/errors"
	"clipscout/internal/services/analysis/domain"

	"github.com/google/uuid"
)

// taskTTL is how long finished tasks stay queryable before a sweep drops them
const taskTTL = time.Hour

type taskRegistry struct {
	mu    sync.Mutex
	tasks map[string]*domain.Task
}

func newTaskRegistry() *taskRegistry {
	return &taskRegistry{tasks: make(map[string]*domain.Task)}
}

func (r *taskRegistry) put(t *domain.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	r.tasks[t.ID] = t
}

func (r *taskRegistry) get(id string) (domain.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, false
	}
	return *t, true
}

func (r *taskRegistry) delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return false
	}
	delete(r.tasks, id)
	return true
}

func (r *taskRegistry) clear() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.tasks)
	r.tasks = make(map[string]*domain.Task)
	return n
}

func (r *taskRegistry) update(id string, fn func(*domain.Task)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tasks[id]; ok {
		fn(t)
		t.UpdatedAt = time.Now().UTC()
	}
}

// sweepLocked drops finished tasks past their TTL; callers hold mu
func (r *taskRegistry) sweepLocked() {
	cutoff := time.Now().Add(-taskTTL)
	for id, t := range r.tasks {
		done := t.Status == domain.TaskCompleted || t.Status == domain.TaskFailed
		if done && t.UpdatedAt.Before(cutoff) {
			delete(r.tasks, id)
		}
	}
}

// AnalyzeAsync registers a task and runs the pipeline in the background.
// The returned task is a snapshot; poll Task for progress
func (s *Svc) AnalyzeAsync(ctx context.Context, in domain.AnalyzeInput) (domain.Task, error) {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.NewString(),
		VideoID:   in.Video.VideoID,
		Status:    domain.TaskPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks.put(t)

	// the run outlives the request but keeps its values for logging
	bg := context.WithoutCancel(ctx)
	go s.runTask(bg, t.ID, in)

	return *t, nil
}

func (s *Svc) runTask(ctx context.Context, id string, in domain.AnalyzeInput) {
	s.tasks.update(id, func(t *domain.Task) { t.Status = domain.TaskRunning })

	report, err := s.analyze(ctx, in, func(progress float64, step string) {
		s.tasks.update(id, func(t *domain.Task) {
			t.Progress = progress
			t.Step = step
		})
	})
	if err != nil {
		s.log.Warn().Err(err).Str("task_id", id).Msg("async analysis failed")
		// progress and step stay where the run stopped
		s.tasks.update(id, func(t *domain.Task) {
			t.Status = domain.TaskFailed
			t.Error = err.Error()
		})
		return
	}
	s.tasks.update(id, func(t *domain.Task) {
		t.Status = domain.TaskCompleted
		t.Progress = 100
		t.Step = ""
		t.Report = &report
	})
}

// Task returns a snapshot of one async run
func (s *Svc) Task(_ context.Context, id string) (domain.Task, error) {
	t, ok := s.tasks.get(id)
	if !ok {
		return domain.Task{}, perr.NotFoundf("task %s", id)
	}
	return t, nil
}

// DeleteTask drops a task from the registry. Running tasks finish but their
// result becomes unreachable
func (s *Svc) DeleteTask(_ context.Context, id string) error {
	if !s.tasks.delete(id) {
		return perr.NotFoundf("task %s", id)
	}
	return nil
}

// DeleteTasks empties the registry, returning how many tasks were dropped.
// Running tasks keep running; their snapshots just become unreachable
func (s *Svc) DeleteTasks(_ context.Context) (int, error) {
	return s.tasks.clear(), nil
}
