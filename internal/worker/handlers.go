package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service"
	"github.com/sirupsen/logrus"
)

// RefreshHandler загружает набор данных и перезаписывает хранилище происшествий
type RefreshHandler struct {
	source    DatasetSource
	incidents service.IncidentService
	logger    *logrus.Logger
}

func NewRefreshHandler(source DatasetSource, incidents service.IncidentService, logger *logrus.Logger) *RefreshHandler {
	return &RefreshHandler{
		source:    source,
		incidents: incidents,
		logger:    logger,
	}
}

func (h *RefreshHandler) Handle(ctx context.Context, job *models.Job) Outcome {
	log := h.logger.WithFields(logrus.Fields{
		"handler": "refresh-data",
		"job_id":  job.ID,
	})

	incidents, err := h.source.Fetch(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to fetch dataset")
		return Failure(err)
	}
	if err := h.incidents.SaveIncidents(ctx, incidents); err != nil {
		return Failure(err)
	}

	log.WithField("count", len(incidents)).Info("Dataset refreshed successfully")
	return Success(&models.JobResult{RecordCount: len(incidents)})
}

// PlotHandler строит график по записям за период задачи и загружает его на хостинг изображений
type PlotHandler struct {
	incidents service.IncidentService
	renderer  Renderer
	host      ImageHost
	location  *time.Location
	logger    *logrus.Logger
}

func NewPlotHandler(incidents service.IncidentService, renderer Renderer, host ImageHost, location *time.Location, logger *logrus.Logger) *PlotHandler {
	return &PlotHandler{
		incidents: incidents,
		renderer:  renderer,
		host:      host,
		location:  location,
		logger:    logger,
	}
}

func (h *PlotHandler) Handle(ctx context.Context, job *models.Job) Outcome {
	log := h.logger.WithFields(logrus.Fields{
		"handler":  "plot",
		"job_id":   job.ID,
		"job_type": job.Type,
	})

	q := models.DefaultIncidentQuery()
	q.Start = job.Start
	q.End = job.End
	incidents, err := h.incidents.Query(ctx, q)
	if err != nil {
		return Failure(err)
	}

	png, err := h.render(job.Type, incidents)
	if err != nil {
		log.WithError(err).Error("Failed to render plot")
		return Failure(err)
	}

	img, err := h.host.Upload(ctx, png, string(job.Type)+" "+job.ID)
	if err != nil {
		log.WithError(err).Warn("Failed to upload plot")
		return Retry(err)
	}

	log.WithField("link", img.Link).Info("Plot uploaded successfully")
	return Success(&models.JobResult{
		ImageID:     img.ID,
		Link:        img.Link,
		DeleteHash:  img.DeleteHash,
		UploadedAt:  img.Datetime,
		RecordCount: len(incidents),
	})
}

func (h *PlotHandler) render(jobType models.JobType, incidents []*models.Incident) ([]byte, error) {
	switch jobType {
	case models.JobPlotTimeseries:
		return h.renderer.Timeseries(YearlyCounts(incidents, h.location))
	case models.JobPlotDotmap:
		return h.renderer.Dotmap(PointsWithin(incidents, models.PlotBounds), models.PlotBounds)
	case models.JobPlotHeatmap:
		points := PointsWithin(incidents, models.PlotBounds)
		return h.renderer.Heatmap(BinGrid(points, models.PlotBounds, models.HeatmapCell))
	default:
		return nil, fmt.Errorf("unsupported plot type %q", jobType)
	}
}

// DeleteAllHandler освобождает размещенные изображения и удаляет все задачи
type DeleteAllHandler struct {
	jobs   service.JobService
	host   ImageHost
	logger *logrus.Logger
}

func NewDeleteAllHandler(jobs service.JobService, host ImageHost, logger *logrus.Logger) *DeleteAllHandler {
	return &DeleteAllHandler{
		jobs:   jobs,
		host:   host,
		logger: logger,
	}
}

func (h *DeleteAllHandler) Handle(ctx context.Context, job *models.Job) Outcome {
	log := h.logger.WithFields(logrus.Fields{
		"handler": "delete-all",
		"job_id":  job.ID,
	})

	jobs, err := h.jobs.ListJobs(ctx, models.JobQuery{
		JobType: models.FilterAll,
		Status:  models.FilterAll,
		Limit:   models.DefaultLimit,
	})
	if err != nil {
		return Failure(err)
	}

	deletedImages := 0
	for _, j := range jobs {
		if j.Result == nil || j.Result.DeleteHash == "" {
			continue
		}
		if err := h.host.Delete(ctx, j.Result.DeleteHash); err != nil {
			log.WithError(err).WithField("image_id", j.Result.ImageID).Warn("Failed to delete hosted image")
			continue
		}
		deletedImages++
	}

	deletedJobs, err := h.jobs.DeleteAll(ctx)
	if err != nil {
		return Failure(err)
	}

	log.WithFields(logrus.Fields{
		"deleted_jobs":   deletedJobs,
		"deleted_images": deletedImages,
	}).Info("Jobs deleted successfully")
	return Success(&models.JobResult{
		DeletedJobs:   deletedJobs,
		DeletedImages: deletedImages,
	})
}

// Handlers собирает обработчики для всех типов задач
func Handlers(refresh *RefreshHandler, plot *PlotHandler, deleteAll *DeleteAllHandler) map[models.JobType]Handler {
	return map[models.JobType]Handler{
		models.JobRefreshData:    refresh,
		models.JobPlotTimeseries: plot,
		models.JobPlotDotmap:     plot,
		models.JobPlotHeatmap:    plot,
		models.JobDeleteAll:      deleteAll,
	}
}
