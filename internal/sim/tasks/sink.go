package tasks

// Sink receives tasks in execution order.
type Sink interface {
	AddTask(t Task)
}

// Queue is an in-memory Sink.
type Queue struct {
	tasks []Task
}

func (q *Queue) AddTask(t Task) { q.tasks = append(q.tasks, t) }

// Tasks returns the queued tasks in order.
func (q *Queue) Tasks() []Task { return q.tasks }

func (q *Queue) Len() int { return len(q.tasks) }
