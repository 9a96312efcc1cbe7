package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service"
	"github.com/sirupsen/logrus"
)

// Options - параметры цикла обработки
type Options struct {
	PollTimeout time.Duration
	Backoff     time.Duration

	// Notifier получает задачи после записи конечного статуса, может быть nil
	Notifier Notifier
}

// Dispatcher забирает идентификаторы задач из очереди и выполняет их обработчиками.
// Каждая очередь в queues обслуживается отдельной горутиной со своим списком обрабатываемых задач.
type Dispatcher struct {
	jobs     service.JobService
	queues   []service.JobQueue
	handlers map[models.JobType]Handler
	logger   *logrus.Logger
	opts     Options
}

func NewDispatcher(jobs service.JobService, queues []service.JobQueue, handlers map[models.JobType]Handler, logger *logrus.Logger, opts Options) *Dispatcher {
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 5 * time.Second
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 2 * time.Second
	}
	return &Dispatcher{
		jobs:     jobs,
		queues:   queues,
		handlers: handlers,
		logger:   logger,
		opts:     opts,
	}
}

// Run запускает потребителей и блокируется до отмены контекста
func (d *Dispatcher) Run(ctx context.Context) error {
	if len(d.queues) == 0 {
		return errors.New("worker: no queues to consume")
	}
	d.logger.WithField("consumers", len(d.queues)).Info("Starting job dispatcher...")

	var wg sync.WaitGroup
	for i, queue := range d.queues {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.consume(ctx, i, queue)
		}()
	}
	wg.Wait()

	d.logger.Info("Stopping job dispatcher.")
	return nil
}

func (d *Dispatcher) consume(ctx context.Context, consumer int, queue service.JobQueue) {
	log := d.logger.WithField("consumer", consumer)

	// Задачи, оставшиеся от упавшего потребителя, возвращаются в очередь
	if n, err := queue.Recover(ctx); err != nil {
		log.WithError(err).Error("Failed to recover unacknowledged jobs")
	} else if n > 0 {
		log.WithField("count", n).Warn("Recovered unacknowledged jobs")
	}

	for {
		if ctx.Err() != nil {
			return
		}

		id, err := queue.Dequeue(ctx, d.opts.PollTimeout)
		if err != nil {
			if errors.Is(err, models.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			log.WithError(err).Error("Failed to dequeue job")
			d.sleep(ctx)
			continue
		}

		if err := d.Process(ctx, id); err != nil {
			if ctx.Err() != nil {
				return
			}
			// Запись не удалась, идентификатор остается в списке обработки и возвращается в очередь
			log.WithError(err).WithField("job_id", id).Error("Failed to process job")
			d.sleep(ctx)
			if _, err := queue.Recover(ctx); err != nil {
				log.WithError(err).Error("Failed to requeue job")
			}
			continue
		}

		if err := queue.Ack(ctx, id); err != nil {
			log.WithError(err).WithField("job_id", id).Error("Failed to acknowledge job")
		}
	}
}

func (d *Dispatcher) sleep(ctx context.Context) {
	t := time.NewTimer(d.opts.Backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Process выполняет одну задачу. Ошибка возвращается только при сбое хранилища,
// тогда задачу нужно доставить повторно.
func (d *Dispatcher) Process(ctx context.Context, id string) error {
	log := d.logger.WithFields(logrus.Fields{
		"service": "dispatcher",
		"job_id":  id,
	})

	job, err := d.jobs.GetJob(ctx, id)
	if err != nil {
		if service.IsGone(err) {
			log.Warn("Job record not found, dropping queue entry")
			return nil
		}
		return err
	}
	if job.Status.IsTerminal() {
		log.WithField("status", job.Status).Info("Job already finished, dropping duplicate delivery")
		return nil
	}

	if err := d.jobs.Start(ctx, job); err != nil {
		if dropped(err) {
			log.WithError(err).Warn("Job cannot be started, dropping")
			return nil
		}
		return err
	}

	outcome := d.dispatch(ctx, job).normalize()
	log.WithFields(logrus.Fields{
		"job_type": job.Type,
		"outcome":  outcome.Kind,
	}).Debug("Handler finished")

	err = d.finish(ctx, job, outcome)
	if dropped(err) {
		log.WithError(err).Warn("Job changed during execution, skipping final status")
		return nil
	}
	if err != nil {
		return err
	}
	d.notify(ctx, log, job)
	return nil
}

func (d *Dispatcher) notify(ctx context.Context, log *logrus.Entry, job *models.Job) {
	if d.opts.Notifier == nil {
		return
	}
	if err := d.opts.Notifier.JobFinished(ctx, job); err != nil {
		log.WithError(err).Warn("Failed to publish job event")
	}
}

// dispatch вызывает обработчик и превращает панику в ошибку
func (d *Dispatcher) dispatch(ctx context.Context, job *models.Job) (outcome Outcome) {
	handler, ok := d.handlers[job.Type]
	if !ok {
		return Failure(fmt.Errorf("no handler for job type %q", job.Type))
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithField("job_id", job.ID).Errorf("Handler panicked: %v", r)
			outcome = Failure(fmt.Errorf("handler panicked: %v", r))
		}
	}()
	return handler.Handle(ctx, job)
}

func (d *Dispatcher) finish(ctx context.Context, job *models.Job, outcome Outcome) error {
	switch outcome.Kind {
	case OutcomeSuccess:
		return d.jobs.Complete(ctx, job, outcome.Result)
	case OutcomeRetry:
		if !job.CanRetry() {
			return d.jobs.Fail(ctx, job, fmt.Sprintf("%s (gave up after %d attempts)", outcome.reason(), job.Attempt), "")
		}
		retry, err := d.jobs.Resubmit(ctx, job)
		if err != nil {
			d.logger.WithError(err).WithField("job_id", job.ID).Error("Failed to resubmit job")
			return d.jobs.Fail(ctx, job, outcome.reason(), "")
		}
		d.logger.WithFields(logrus.Fields{
			"job_id":   job.ID,
			"retry_id": retry.ID,
			"attempt":  retry.Attempt,
		}).Info("Job resubmitted for retry")
		return d.jobs.Fail(ctx, job, outcome.reason(), retry.ID)
	default:
		return d.jobs.Fail(ctx, job, outcome.reason(), "")
	}
}

// dropped сообщает, что задачу больше не нужно обрабатывать
func dropped(err error) bool {
	return err != nil && (service.IsGone(err) || errors.Is(err, models.ErrStatusConflict))
}
