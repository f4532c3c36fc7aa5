package dispatcher

import (
	"time"

	"go-guardian/internal/logging"
	"go-guardian/internal/sys"
	"go-guardian/internal/watchdog"
)

// RESTWorker drains the job queue and executes punitive calls. Several
// workers share one queue; each job is executed at most once and a failure
// degrades to a log line.
type RESTWorker struct {
	queue    *JobQueue
	executor *RequestExecutor
	workerID int
	cpuCore  int
}

func NewRESTWorker(queue *JobQueue, executor *RequestExecutor, workerID, cpuCore int) *RESTWorker {
	return &RESTWorker{
		queue:    queue,
		executor: executor,
		workerID: workerID,
		cpuCore:  cpuCore,
	}
}

// pinnable reports whether the worker was handed a real core. A negative
// core disables pinning; core 0 is a valid target.
func (w *RESTWorker) pinnable() bool {
	return w.cpuCore >= 0
}

// Start runs until the queue is closed.
func (w *RESTWorker) Start() {
	if w.pinnable() {
		if err := sys.PinToCore(w.cpuCore); err != nil {
			logging.Warn("dispatcher: worker %d could not pin to core %d: %v", w.workerID, w.cpuCore, err)
		}
	}

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case job, ok := <-w.queue.C():
			if !ok {
				return
			}
			w.execute(job)
			watchdog.Beat("dispatcher")
		case <-ticker.C:
			watchdog.Beat("dispatcher")
		}
	}
}

func (w *RESTWorker) execute(job Job) {
	var err error
	switch job.Type {
	case JobTypeBan:
		err = w.executor.ExecuteBan(job.GuildID, job.TargetID, job.Reason)
	case JobTypeUnban:
		err = w.executor.ExecuteUnban(job.GuildID, job.TargetID, job.Reason)
	case JobTypeKick:
		err = w.executor.ExecuteKick(job.GuildID, job.TargetID, job.Reason)
	case JobTypeVanityRestore:
		err = w.executor.ExecuteVanityRestore(job.GuildID, job.Code, job.Reason)
	}

	if err != nil {
		logging.Error("dispatcher: worker %d job type=%d guild=%s target=%s: %v",
			w.workerID, job.Type, job.GuildID, job.TargetID, err)
		return
	}
	logging.Info("dispatcher: worker %d executed job type=%d guild=%s target=%s",
		w.workerID, job.Type, job.GuildID, job.TargetID)
}
