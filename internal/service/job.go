package service

//go:generate mockgen -source=job.go -destination=mocks/mock_job.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/sirupsen/logrus"
)

// JobRepository определяет контракт хранилища задач.
// Update записывает задачу, только если ее текущий статус равен expected.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	Get(ctx context.Context, id string) (*models.Job, error)
	List(ctx context.Context) ([]*models.Job, error)
	Update(ctx context.Context, job *models.Job, expected models.JobStatus) error
	DeleteAll(ctx context.Context) (int, error)
}

// JobQueue - FIFO очередь идентификаторов задач.
// Dequeue возвращает models.ErrQueueEmpty, если за timeout ничего не пришло.
type JobQueue interface {
	Enqueue(ctx context.Context, id string) error
	Dequeue(ctx context.Context, timeout time.Duration) (string, error)
	Ack(ctx context.Context, id string) error
	Recover(ctx context.Context) (int, error)
	Len(ctx context.Context) (int64, error)
	Clear(ctx context.Context) (int64, error)
}

// JobService определяет контракт жизненного цикла задач
type JobService interface {
	Submit(ctx context.Context, jobType models.JobType, start, end string) (*models.Job, error)
	Resubmit(ctx context.Context, job *models.Job) (*models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	ListJobs(ctx context.Context, q models.JobQuery) ([]*models.Job, error)
	Start(ctx context.Context, job *models.Job) error
	Complete(ctx context.Context, job *models.Job, result *models.JobResult) error
	Fail(ctx context.Context, job *models.Job, reason, retriedBy string) error
	DeleteAll(ctx context.Context) (int, error)
	ClearQueue(ctx context.Context) (int64, error)
}

type jobService struct {
	repo        JobRepository
	queue       JobQueue
	logger      *logrus.Logger
	location    *time.Location
	maxAttempts int
	now         func() time.Time
	newID       func() string
	retryID     func(parent *models.Job) string
}

func NewJobService(repo JobRepository, queue JobQueue, logger *logrus.Logger, location *time.Location, maxAttempts int) JobService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &jobService{
		repo:        repo,
		queue:       queue,
		logger:      logger,
		location:    location,
		maxAttempts: maxAttempts,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return uuid.NewString() },
		retryID:     retryJobID,
	}
}

// retryJobID выводит идентификатор повтора из родителя и номера попытки,
// поэтому одна и та же попытка всегда получает один и тот же id.
func retryJobID(parent *models.Job) string {
	name := fmt.Sprintf("%s/%d", parent.ID, parent.Attempt+1)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// Submit создает задачу в статусе submitted и ставит ее в очередь
func (s *jobService) Submit(ctx context.Context, jobType models.JobType, start, end string) (*models.Job, error) {
	if _, ok := models.ParseJobType(string(jobType)); !ok {
		return nil, models.NewValidationError("type", "unsupported job type %q", jobType)
	}
	startSec, endSec, err := ParseRange(start, end, s.location)
	if err != nil {
		return nil, err
	}

	now := s.now()
	job := &models.Job{
		ID:          s.newID(),
		Type:        jobType,
		Start:       startSec,
		End:         endSec,
		Status:      models.JobSubmitted,
		Attempt:     1,
		MaxAttempts: s.maxAttempts,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.enqueue(ctx, job)
}

// Resubmit создает эквивалентную задачу со следующим номером попытки.
// Идентификатор повтора выводится из родителя. Если повтор уже создан, возвращается он.
func (s *jobService) Resubmit(ctx context.Context, job *models.Job) (*models.Job, error) {
	if !job.CanRetry() {
		return nil, fmt.Errorf("service: job %s exhausted %d attempts", job.ID, job.MaxAttempts)
	}
	id := s.retryID(job)

	// Повтор уже создан при прошлой обработке этой попытки
	existing, err := s.repo.Get(ctx, id)
	if err == nil {
		s.logger.WithFields(logrus.Fields{
			"service":   "job",
			"method":    "Resubmit",
			"job_id":    id,
			"parent_id": job.ID,
		}).Info("Retry job already exists")
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("service: could not look up retry job: %w", err)
	}

	now := s.now()
	retry := &models.Job{
		ID:          id,
		Type:        job.Type,
		Start:       job.Start,
		End:         job.End,
		Status:      models.JobSubmitted,
		Attempt:     job.Attempt + 1,
		MaxAttempts: job.MaxAttempts,
		ParentID:    job.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.enqueue(ctx, retry)
}

func (s *jobService) enqueue(ctx context.Context, job *models.Job) (*models.Job, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "job",
		"method":   "Submit",
		"job_id":   job.ID,
		"job_type": job.Type,
		"attempt":  job.Attempt,
	})

	if err := s.repo.Create(ctx, job); err != nil {
		log.WithError(err).Error("Failed to create job in repository")
		return nil, fmt.Errorf("service: could not create job: %w", err)
	}

	if err := s.queue.Enqueue(ctx, job.ID); err != nil {
		log.WithError(err).Error("Failed to enqueue job")
		if failErr := s.Fail(ctx, job, "enqueue failed", ""); failErr != nil {
			log.WithError(failErr).Error("Failed to mark unqueued job as failed")
		}
		return nil, fmt.Errorf("service: could not enqueue job: %w", err)
	}

	log.Info("Job submitted successfully")
	return job, nil
}

// GetJob получает задачу по идентификатору
func (s *jobService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get job: %w", err)
	}
	return job, nil
}

// ListJobs возвращает задачи по порядку создания с фильтром по типу и статусу
func (s *jobService) ListJobs(ctx context.Context, q models.JobQuery) ([]*models.Job, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "job",
			"method":  "ListJobs",
		}).WithError(err).Error("Failed to list jobs from repository")
		return nil, fmt.Errorf("service: could not list jobs: %w", err)
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID < jobs[j].ID
		}
		return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
	})
	return paginate(jobs, func(job *models.Job) bool { return MatchJob(q, job) }, q.Offset, q.Limit), nil
}

// transition применяет изменение и записывает задачу, если статус не поменялся конкурентно
func (s *jobService) transition(ctx context.Context, job *models.Job, to models.JobStatus, mutate func(*models.Job)) error {
	from := job.Status
	if !from.CanTransition(to) {
		return fmt.Errorf("service: job %s cannot move from %s to %s: %w", job.ID, from, to, models.ErrStatusConflict)
	}

	next := *job
	next.Status = to
	next.UpdatedAt = s.now()
	if mutate != nil {
		mutate(&next)
	}
	if err := s.repo.Update(ctx, &next, from); err != nil {
		return fmt.Errorf("service: could not move job %s to %s: %w", job.ID, to, err)
	}
	*job = next

	s.logger.WithFields(logrus.Fields{
		"service": "job",
		"job_id":  job.ID,
		"from":    from,
		"to":      to,
	}).Info("Job status updated")
	return nil
}

// Start переводит задачу в in-progress. Повторная доставка задачи в in-progress ничего не пишет.
func (s *jobService) Start(ctx context.Context, job *models.Job) error {
	if job.Status == models.JobInProgress {
		return nil
	}
	return s.transition(ctx, job, models.JobInProgress, nil)
}

// Complete сохраняет результат и завершает задачу
func (s *jobService) Complete(ctx context.Context, job *models.Job, result *models.JobResult) error {
	return s.transition(ctx, job, models.JobCompleted, func(j *models.Job) {
		j.Result = result
		j.Error = ""
	})
}

// Fail завершает задачу с ошибкой, частичный результат не сохраняется
func (s *jobService) Fail(ctx context.Context, job *models.Job, reason, retriedBy string) error {
	return s.transition(ctx, job, models.JobFailed, func(j *models.Job) {
		j.Result = nil
		j.Error = reason
		j.RetriedBy = retriedBy
	})
}

// DeleteAll удаляет все задачи и очищает очередь ожидающих идентификаторов
func (s *jobService) DeleteAll(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "job",
		"method":  "DeleteAll",
	})
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to delete jobs in repository")
		return 0, fmt.Errorf("service: could not delete jobs: %w", err)
	}
	if _, err := s.queue.Clear(ctx); err != nil {
		log.WithError(err).Error("Failed to clear job queue")
		return n, fmt.Errorf("service: could not clear job queue: %w", err)
	}
	log.WithField("count", n).Info("Jobs deleted successfully")
	return n, nil
}

// ClearQueue отбрасывает идентификаторы, еще не взятые воркером
func (s *jobService) ClearQueue(ctx context.Context) (int64, error) {
	n, err := s.queue.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("service: could not clear job queue: %w", err)
	}
	return n, nil
}

// IsGone сообщает, что запись задачи исчезла (например, после delete-all)
func IsGone(err error) bool {
	return errors.Is(err, models.ErrJobNotFound)
}
