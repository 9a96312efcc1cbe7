package worker_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service"
	servicemocks "github.com/shenikar/atx_traffic/internal/service/mocks"
	"github.com/shenikar/atx_traffic/internal/worker"
	"github.com/shenikar/atx_traffic/internal/worker/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newJob(jobType models.JobType) *models.Job {
	return &models.Job{
		ID:          "job-1",
		Type:        jobType,
		Status:      models.JobSubmitted,
		Attempt:     1,
		MaxAttempts: 3,
	}
}

type dispatcherFixture struct {
	jobs    *servicemocks.MockJobService
	handler *mocks.MockHandler
	disp    *worker.Dispatcher
}

func newDispatcherFixture(t *testing.T, queues ...service.JobQueue) *dispatcherFixture {
	ctrl := gomock.NewController(t)
	f := &dispatcherFixture{
		jobs:    servicemocks.NewMockJobService(ctrl),
		handler: mocks.NewMockHandler(ctrl),
	}
	handlers := map[models.JobType]worker.Handler{
		models.JobRefreshData:    f.handler,
		models.JobPlotTimeseries: f.handler,
	}
	f.disp = worker.NewDispatcher(f.jobs, queues, handlers, newTestLogger(), worker.Options{
		PollTimeout: 10 * time.Millisecond,
		Backoff:     time.Millisecond,
	})
	return f
}

// expectStart переводит задачу в in-progress, как это делает сервис
func (f *dispatcherFixture) expectStart(job *models.Job) {
	f.jobs.EXPECT().GetJob(gomock.Any(), job.ID).Return(job, nil)
	f.jobs.EXPECT().Start(gomock.Any(), job).DoAndReturn(func(_ context.Context, j *models.Job) error {
		j.Status = models.JobInProgress
		return nil
	})
}

func TestProcess_MissingJobDropped(t *testing.T) {
	f := newDispatcherFixture(t)
	f.jobs.EXPECT().GetJob(gomock.Any(), "gone").
		Return(nil, fmt.Errorf("service: could not get job: %w", models.ErrJobNotFound))

	err := f.disp.Process(context.Background(), "gone")

	assert.NoError(t, err)
}

func TestProcess_TerminalJobDropped(t *testing.T) {
	f := newDispatcherFixture(t)
	job := newJob(models.JobRefreshData)
	job.Status = models.JobCompleted
	f.jobs.EXPECT().GetJob(gomock.Any(), job.ID).Return(job, nil)

	err := f.disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}

func TestProcess_StoreErrorOnGet(t *testing.T) {
	f := newDispatcherFixture(t)
	f.jobs.EXPECT().GetJob(gomock.Any(), "job-1").Return(nil, models.ErrStore)

	err := f.disp.Process(context.Background(), "job-1")

	assert.ErrorIs(t, err, models.ErrStore)
}

func TestProcess_StartConflictDropped(t *testing.T) {
	f := newDispatcherFixture(t)
	job := newJob(models.JobRefreshData)
	f.jobs.EXPECT().GetJob(gomock.Any(), job.ID).Return(job, nil)
	f.jobs.EXPECT().Start(gomock.Any(), job).Return(models.ErrStatusConflict)

	err := f.disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}

func TestProcess_Success(t *testing.T) {
	f := newDispatcherFixture(t)
	job := newJob(models.JobRefreshData)
	result := &models.JobResult{RecordCount: 42}
	f.expectStart(job)
	f.handler.EXPECT().Handle(gomock.Any(), job).Return(worker.Success(result))
	f.jobs.EXPECT().Complete(gomock.Any(), job, result).Return(nil)

	err := f.disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}

func TestProcess_Failure(t *testing.T) {
	f := newDispatcherFixture(t)
	job := newJob(models.JobRefreshData)
	f.expectStart(job)
	f.handler.EXPECT().Handle(gomock.Any(), job).Return(worker.Failure(errors.New("dataset unavailable")))
	f.jobs.EXPECT().Fail(gomock.Any(), job, "dataset unavailable", "").Return(nil)

	err := f.disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}

func TestProcess_EmptyOutcomeFails(t *testing.T) {
	f := newDispatcherFixture(t)
	job := newJob(models.JobRefreshData)
	f.expectStart(job)
	f.handler.EXPECT().Handle(gomock.Any(), job).Return(worker.Outcome{})
	f.jobs.EXPECT().Fail(gomock.Any(), job, "handler returned no outcome", "").Return(nil)

	err := f.disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}

func TestProcess_RetryResubmits(t *testing.T) {
	f := newDispatcherFixture(t)
	job := newJob(models.JobPlotTimeseries)
	f.expectStart(job)
	f.handler.EXPECT().Handle(gomock.Any(), job).Return(worker.Retry(errors.New("upload failed")))
	f.jobs.EXPECT().Resubmit(gomock.Any(), job).Return(&models.Job{ID: "job-2", Attempt: 2}, nil)
	f.jobs.EXPECT().Fail(gomock.Any(), job, "upload failed", "job-2").Return(nil)

	err := f.disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}

func TestProcess_RetryExhausted(t *testing.T) {
	f := newDispatcherFixture(t)
	job := newJob(models.JobPlotTimeseries)
	job.Attempt = 3
	f.expectStart(job)
	f.handler.EXPECT().Handle(gomock.Any(), job).Return(worker.Retry(errors.New("upload failed")))
	f.jobs.EXPECT().Fail(gomock.Any(), job, "upload failed (gave up after 3 attempts)", "").Return(nil)

	err := f.disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}

func TestProcess_RetryResubmitFails(t *testing.T) {
	f := newDispatcherFixture(t)
	job := newJob(models.JobPlotTimeseries)
	f.expectStart(job)
	f.handler.EXPECT().Handle(gomock.Any(), job).Return(worker.Retry(errors.New("upload failed")))
	f.jobs.EXPECT().Resubmit(gomock.Any(), job).Return(nil, models.ErrStore)
	f.jobs.EXPECT().Fail(gomock.Any(), job, "upload failed", "").Return(nil)

	err := f.disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}

func TestProcess_HandlerPanic(t *testing.T) {
	f := newDispatcherFixture(t)
	job := newJob(models.JobRefreshData)
	f.expectStart(job)
	f.handler.EXPECT().Handle(gomock.Any(), job).DoAndReturn(func(context.Context, *models.Job) worker.Outcome {
		panic("nil map")
	})
	f.jobs.EXPECT().Fail(gomock.Any(), job, "handler panicked: nil map", "").Return(nil)

	err := f.disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}

func TestProcess_UnknownType(t *testing.T) {
	f := newDispatcherFixture(t)
	job := newJob(models.JobDeleteAll)
	f.expectStart(job)
	f.jobs.EXPECT().Fail(gomock.Any(), job, `no handler for job type "delete-all"`, "").Return(nil)

	err := f.disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}

func TestProcess_FinalWriteSkippedWhenGone(t *testing.T) {
	f := newDispatcherFixture(t)
	job := newJob(models.JobRefreshData)
	f.expectStart(job)
	f.handler.EXPECT().Handle(gomock.Any(), job).Return(worker.Success(&models.JobResult{}))
	f.jobs.EXPECT().Complete(gomock.Any(), job, gomock.Any()).
		Return(fmt.Errorf("service: could not move job: %w", models.ErrJobNotFound))

	err := f.disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}

func TestProcess_FinalWriteStoreError(t *testing.T) {
	f := newDispatcherFixture(t)
	job := newJob(models.JobRefreshData)
	f.expectStart(job)
	f.handler.EXPECT().Handle(gomock.Any(), job).Return(worker.Success(&models.JobResult{}))
	f.jobs.EXPECT().Complete(gomock.Any(), job, gomock.Any()).Return(models.ErrStore)

	err := f.disp.Process(context.Background(), job.ID)

	assert.ErrorIs(t, err, models.ErrStore)
}

func TestRun_NoQueues(t *testing.T) {
	f := newDispatcherFixture(t)

	err := f.disp.Run(context.Background())

	assert.Error(t, err)
}

func TestRun_ConsumesAndAcks(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := servicemocks.NewMockJobQueue(ctrl)
	f := newDispatcherFixture(t, queue)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	job := newJob(models.JobRefreshData)
	gomock.InOrder(
		queue.EXPECT().Recover(gomock.Any()).Return(1, nil),
		queue.EXPECT().Dequeue(gomock.Any(), 10*time.Millisecond).Return(job.ID, nil),
		queue.EXPECT().Ack(gomock.Any(), job.ID).Return(nil),
		queue.EXPECT().Dequeue(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, time.Duration) (string, error) {
			cancel()
			return "", models.ErrQueueEmpty
		}),
	)
	f.expectStart(job)
	f.handler.EXPECT().Handle(gomock.Any(), job).Return(worker.Success(&models.JobResult{}))
	f.jobs.EXPECT().Complete(gomock.Any(), job, gomock.Any()).Return(nil)

	err := f.disp.Run(ctx)

	require.NoError(t, err)
}

func TestRun_StoreErrorRequeues(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := servicemocks.NewMockJobQueue(ctrl)
	f := newDispatcherFixture(t, queue)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		queue.EXPECT().Recover(gomock.Any()).Return(0, nil),
		queue.EXPECT().Dequeue(gomock.Any(), gomock.Any()).Return("job-1", nil),
		queue.EXPECT().Recover(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
			cancel()
			return 1, nil
		}),
	)
	f.jobs.EXPECT().GetJob(gomock.Any(), "job-1").Return(nil, models.ErrStore)

	err := f.disp.Run(ctx)

	require.NoError(t, err)
}

func TestProcess_NotifiesFinishedJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := servicemocks.NewMockJobService(ctrl)
	handler := mocks.NewMockHandler(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	disp := worker.NewDispatcher(jobs, nil, map[models.JobType]worker.Handler{models.JobRefreshData: handler}, newTestLogger(), worker.Options{
		Notifier: notifier,
	})

	job := newJob(models.JobRefreshData)
	jobs.EXPECT().GetJob(gomock.Any(), job.ID).Return(job, nil)
	jobs.EXPECT().Start(gomock.Any(), job).Return(nil)
	handler.EXPECT().Handle(gomock.Any(), job).Return(worker.Success(&models.JobResult{RecordCount: 1}))
	jobs.EXPECT().Complete(gomock.Any(), job, gomock.Any()).Return(nil)
	// Ошибка публикации не влияет на обработку
	notifier.EXPECT().JobFinished(gomock.Any(), job).Return(models.ErrStore)

	err := disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}

func TestProcess_NoNotificationWhenSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := servicemocks.NewMockJobService(ctrl)
	handler := mocks.NewMockHandler(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	disp := worker.NewDispatcher(jobs, nil, map[models.JobType]worker.Handler{models.JobDeleteAll: handler}, newTestLogger(), worker.Options{
		Notifier: notifier,
	})

	job := newJob(models.JobDeleteAll)
	jobs.EXPECT().GetJob(gomock.Any(), job.ID).Return(job, nil)
	jobs.EXPECT().Start(gomock.Any(), job).Return(nil)
	handler.EXPECT().Handle(gomock.Any(), job).Return(worker.Success(&models.JobResult{DeletedJobs: 3}))
	jobs.EXPECT().Complete(gomock.Any(), job, gomock.Any()).Return(models.ErrJobNotFound)

	err := disp.Process(context.Background(), job.ID)

	assert.NoError(t, err)
}
