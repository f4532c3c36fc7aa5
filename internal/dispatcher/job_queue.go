package dispatcher

// JobType selects the REST call a worker executes.
type JobType uint8

const (
	JobTypeBan JobType = iota
	JobTypeUnban
	JobTypeKick
	JobTypeVanityRestore
)

// Job is one punitive platform mutation queued off the event path.
type Job struct {
	Type    JobType
	GuildID string
	// TargetID is the user acted on; for vanity restores it is unused.
	TargetID string
	// Code is the vanity code to restore, vanity jobs only.
	Code   string
	Reason string
}

// JobQueue decouples guard handlers from REST latency. Enqueue never blocks;
// when the queue is full the job is dropped and reported, because a stalled
// event pipeline is worse than a lost punitive call.
type JobQueue struct {
	jobs chan Job
}

func NewJobQueue(size int) *JobQueue {
	return &JobQueue{
		jobs: make(chan Job, size),
	}
}

// Enqueue reports false when the queue is full.
func (q *JobQueue) Enqueue(job Job) bool {
	select {
	case q.jobs <- job:
		return true
	default:
		return false
	}
}

// C exposes the job channel for workers that need to select on it.
func (q *JobQueue) C() <-chan Job {
	return q.jobs
}

// Dequeue blocks until a job is available or the queue is closed.
func (q *JobQueue) Dequeue() (Job, bool) {
	job, ok := <-q.jobs
	return job, ok
}

// Close stops all workers draining the queue.
func (q *JobQueue) Close() {
	close(q.jobs)
}
