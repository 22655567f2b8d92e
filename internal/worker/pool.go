package worker

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Job is a unit of pipeline work, e.g. one video's transcript fetch or
// one summarization call.
type Job interface {
	Execute() error // performs the actual work
	ID() string     // unique identifier, used in logs
}

// Dispatcher runs jobs on a fixed pool of workers. The pool size bounds
// how many outbound calls are in flight at once; excess jobs wait in
// the queue instead of firing immediately.
type Dispatcher struct {
	maxWorkers int
	jobQueue   chan Job
	wg         sync.WaitGroup
	log        *logrus.Logger
}

// NewDispatcher creates a Dispatcher with maxWorkers workers and a
// queue holding up to jobQueueSize pending jobs.
func NewDispatcher(maxWorkers, jobQueueSize int, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		maxWorkers: maxWorkers,
		jobQueue:   make(chan Job, jobQueueSize),
		log:        log,
	}
}

// Run starts the workers. Each worker pulls from the shared queue until
// Stop closes it.
func (d *Dispatcher) Run() {
	d.log.Infof("Dispatcher starting with %d workers", d.maxWorkers)
	for i := 1; i <= d.maxWorkers; i++ {
		d.wg.Add(1)
		go d.work(i)
	}
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()
	for job := range d.jobQueue {
		d.log.WithFields(logrus.Fields{"worker": id, "job": job.ID()}).Debug("Job started")
		if err := job.Execute(); err != nil {
			d.log.WithFields(logrus.Fields{"worker": id, "job": job.ID()}).WithError(err).Warn("Job failed")
		} else {
			d.log.WithFields(logrus.Fields{"worker": id, "job": job.ID()}).Debug("Job finished")
		}
	}
}

// Submit queues a job, blocking while the queue is full.
func (d *Dispatcher) Submit(job Job) {
	d.jobQueue <- job
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (d *Dispatcher) Stop() {
	close(d.jobQueue)
	d.wg.Wait()
	d.log.Info("Dispatcher: all workers have stopped")
}
