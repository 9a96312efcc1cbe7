package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service"
)

// plotKinds сопоставляет сегмент пути /jobs/plot/:kind с типом задачи
var plotKinds = map[string]models.JobType{
	"timeseries": models.JobPlotTimeseries,
	"dotmap":     models.JobPlotDotmap,
	"heatmap":    models.JobPlotHeatmap,
}

// submit разбирает период из тела или строки запроса и отправляет задачу
func (h *Handler) submit(c *gin.Context, jobType models.JobType) {
	log := h.logger.WithField("method", "submitJob").WithField("job_type", jobType)

	var input JobRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			log.WithError(err).Warn("Failed to bind JSON")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	if input.Start == "" {
		input.Start = queryAny(c, "start", "start_date")
	}
	if input.End == "" {
		input.End = queryAny(c, "end", "end_date")
	}
	if err := h.validateStruct(input); err != nil {
		respondError(c, log, err)
		return
	}

	job, err := h.jobService.Submit(c.Request.Context(), jobType, input.Start, input.End)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusAccepted, ModelToJobResponse(job))
}

// @Summary Submit a data refresh job
// @Description Submit a job that reloads the incident dataset. Requires API key.
// @Tags Jobs
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param job body JobRequest false "Optional time range"
// @Success 202 {object} JobResponse
// @Failure 400 {object} map[string]string "Invalid time range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /jobs/incidents [post]
func (h *Handler) submitRefresh(c *gin.Context) {
	h.submit(c, models.JobRefreshData)
}

// @Summary Submit a plot job
// @Description Submit a job that renders a plot of incidents in the time range. Requires API key.
// @Tags Jobs
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param kind path string true "Plot kind" Enums(timeseries, dotmap, heatmap)
// @Param job body JobRequest false "Optional time range"
// @Success 202 {object} JobResponse
// @Failure 400 {object} map[string]string "Invalid time range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Unknown plot kind"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /jobs/plot/{kind} [post]
func (h *Handler) submitPlot(c *gin.Context) {
	jobType, ok := plotKinds[c.Param("kind")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown plot kind"})
		return
	}
	h.submit(c, jobType)
}

// @Summary Delete all jobs
// @Description Submit a delete-all job that releases hosted images and removes every job. Requires API key.
// @Tags Jobs
// @Produce json
// @Security ApiKeyAuth
// @Success 202 {object} JobResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /jobs [delete]
func (h *Handler) deleteJobs(c *gin.Context) {
	h.submit(c, models.JobDeleteAll)
}

// @Summary Clear the job queue
// @Description Discard queued job ids that no worker has taken yet. Requires API key.
// @Tags Jobs
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} DeletedResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /jobs/queue [delete]
func (h *Handler) clearQueue(c *gin.Context) {
	log := h.logger.WithField("method", "clearQueue")

	n, err := h.jobService.ClearQueue(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, DeletedResponse{Deleted: n})
}

// listJobsOf отдает задачи, тип которых задан путем или параметром type
func (h *Handler) listJobsOf(c *gin.Context, jobType string) ([]*models.Job, bool) {
	log := h.logger.WithField("method", "listJobs").WithField("job_type", jobType)

	req := JobQueryRequest{
		Type:   jobType,
		Status: queryAny(c, "status"),
		Offset: queryAny(c, "offset"),
		Limit:  queryAny(c, "limit"),
	}
	if req.Type == "" {
		req.Type = queryAny(c, "type", "job_type")
	}
	if err := h.validateStruct(req); err != nil {
		respondError(c, log, err)
		return nil, false
	}
	q, err := service.BuildJobQuery(req.Type, req.Status, req.Offset, req.Limit)
	if err != nil {
		respondError(c, log, err)
		return nil, false
	}

	jobs, err := h.jobService.ListJobs(c.Request.Context(), q)
	if err != nil {
		respondError(c, log, err)
		return nil, false
	}
	return jobs, true
}

// @Summary Get a list of jobs
// @Description Get jobs in creation order filtered by type and status
// @Tags Jobs
// @Produce json
// @Param type query string false "Job type, family prefix such as 'plot', or 'all'" default(all)
// @Param status query string false "Job status or 'all'" default(all)
// @Param offset query int false "Matching jobs to skip" default(0)
// @Param limit query int false "Maximum number of jobs"
// @Success 200 {array} JobResponse
// @Failure 400 {object} map[string]string "Invalid query parameter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /jobs [get]
func (h *Handler) listJobs(c *gin.Context) {
	if jobs, ok := h.listJobsOf(c, ""); ok {
		c.JSON(http.StatusOK, ModelsToJobResponses(jobs))
	}
}

// @Summary Get refresh jobs
// @Description Get refresh-data jobs filtered by status
// @Tags Jobs
// @Produce json
// @Param status query string false "Job status or 'all'"
// @Param offset query int false "Matching jobs to skip"
// @Param limit query int false "Maximum number of jobs"
// @Success 200 {array} JobResponse
// @Failure 400 {object} map[string]string "Invalid query parameter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /jobs/incidents [get]
func (h *Handler) listRefreshJobs(c *gin.Context) {
	if jobs, ok := h.listJobsOf(c, string(models.JobRefreshData)); ok {
		c.JSON(http.StatusOK, ModelsToJobResponses(jobs))
	}
}

// @Summary Get plot jobs
// @Description Get plot jobs of every kind filtered by status
// @Tags Jobs
// @Produce json
// @Param status query string false "Job status or 'all'"
// @Param offset query int false "Matching jobs to skip"
// @Param limit query int false "Maximum number of jobs"
// @Success 200 {array} JobResponse
// @Failure 400 {object} map[string]string "Invalid query parameter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /jobs/plot [get]
func (h *Handler) listPlotJobs(c *gin.Context) {
	if jobs, ok := h.listJobsOf(c, "plot"); ok {
		c.JSON(http.StatusOK, ModelsToJobResponses(jobs))
	}
}

// @Summary Get plot jobs of one kind
// @Description Get plot jobs of the given kind filtered by status
// @Tags Jobs
// @Produce json
// @Param kind path string true "Plot kind" Enums(timeseries, dotmap, heatmap)
// @Param status query string false "Job status or 'all'"
// @Success 200 {array} JobResponse
// @Failure 400 {object} map[string]string "Invalid query parameter"
// @Failure 404 {object} map[string]string "Unknown plot kind"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /jobs/plot/{kind} [get]
func (h *Handler) listPlotKindJobs(c *gin.Context) {
	jobType, ok := plotKinds[c.Param("kind")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown plot kind"})
		return
	}
	if jobs, ok := h.listJobsOf(c, string(jobType)); ok {
		c.JSON(http.StatusOK, ModelsToJobResponses(jobs))
	}
}

// @Summary Get ids of jobs
// @Description Get ids of jobs filtered by type and status
// @Tags Jobs
// @Produce json
// @Param type query string false "Job type or 'all'"
// @Param status query string false "Job status or 'all'"
// @Success 200 {array} string
// @Failure 400 {object} map[string]string "Invalid query parameter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /jobs/jids [get]
func (h *Handler) listJobIDs(c *gin.Context) {
	jobs, ok := h.listJobsOf(c, "")
	if !ok {
		return
	}
	ids := make([]string, len(jobs))
	for i, job := range jobs {
		ids[i] = job.ID
	}
	c.JSON(http.StatusOK, ids)
}

// @Summary Get job by ID
// @Description Get a single job with its status and result
// @Tags Jobs
// @Produce json
// @Param jid path string true "Job ID"
// @Success 200 {object} JobResponse
// @Failure 404 {object} map[string]string "Job not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /jobs/jids/{jid} [get]
func (h *Handler) getJob(c *gin.Context) {
	id := c.Param("jid")
	log := h.logger.WithField("method", "getJob").WithField("id", id)

	job, err := h.jobService.GetJob(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToJobResponse(job))
}
