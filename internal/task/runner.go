package task

import (
	"context"
	"log"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Runner spawns units of work that outlive the request that scheduled them.
// Each task gets context.Background(): its lifetime is decoupled from the
// originating request, and it acquires its own resources (DB connections from
// the pool, outbound HTTP clients). Panics are contained to the task.
type Runner struct {
	wg    sync.WaitGroup
	tasks *prometheus.CounterVec
}

func NewRunner(reg prometheus.Registerer) *Runner {
	tasks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "background_tasks_total",
		Help: "Background tasks by name and outcome.",
	}, []string{"name", "outcome"})
	if reg != nil {
		reg.MustRegister(tasks)
	}
	return &Runner{tasks: tasks}
}

func (r *Runner) Go(name string, fn func(ctx context.Context)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.tasks.WithLabelValues(name, "panic").Inc()
				log.Printf("task %s panicked: %v", name, p)
			}
		}()
		fn(context.Background())
		r.tasks.WithLabelValues(name, "done").Inc()
	}()
}

// Wait blocks until every scheduled task has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}
