package models

import (
	"strings"
	"time"
)

// JobType - тип асинхронной задачи
type JobType string

const (
	JobRefreshData    JobType = "refresh-data"
	JobPlotTimeseries JobType = "plot-timeseries"
	JobPlotDotmap     JobType = "plot-dotmap"
	JobPlotHeatmap    JobType = "plot-heatmap"
	JobDeleteAll      JobType = "delete-all"
)

// JobTypes перечисляет все поддерживаемые типы задач
var JobTypes = []JobType{JobRefreshData, JobPlotTimeseries, JobPlotDotmap, JobPlotHeatmap, JobDeleteAll}

// ParseJobType возвращает тип задачи по строке без учета регистра
func ParseJobType(s string) (JobType, bool) {
	for _, t := range JobTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

// IsPlot сообщает, создает ли задача изображение
func (t JobType) IsPlot() bool {
	return strings.HasPrefix(string(t), "plot-")
}

// JobStatus - состояние задачи
type JobStatus string

const (
	JobSubmitted  JobStatus = "submitted"
	JobInProgress JobStatus = "in-progress"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// IsTerminal сообщает, является ли состояние конечным
func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed
}

// CanTransition проверяет допустимость перехода submitted -> in-progress -> completed|failed.
// Задача в submitted может сразу перейти в failed, если ее не удалось поставить в очередь.
func (s JobStatus) CanTransition(to JobStatus) bool {
	switch s {
	case JobSubmitted:
		return to == JobInProgress || to == JobFailed
	case JobInProgress:
		return to == JobCompleted || to == JobFailed
	default:
		return false
	}
}

// JobResult - результат выполнения задачи
type JobResult struct {
	ImageID       string `json:"id,omitempty"`
	Link          string `json:"link,omitempty"`
	DeleteHash    string `json:"deletehash,omitempty"`
	UploadedAt    int64  `json:"datetime,omitempty"`
	RecordCount   int    `json:"record_count"`
	DeletedJobs   int    `json:"deleted_jobs,omitempty"`
	DeletedImages int    `json:"deleted_images,omitempty"`
}

// Job - асинхронная задача и ее жизненный цикл
type Job struct {
	ID          string     `json:"id"`
	Type        JobType    `json:"job_type"`
	Start       int64      `json:"start"`
	End         int64      `json:"end"`
	Status      JobStatus  `json:"status"`
	Attempt     int        `json:"attempt"`
	MaxAttempts int        `json:"max_attempts"`
	ParentID    string     `json:"parent_id,omitempty"`
	RetriedBy   string     `json:"retried_by,omitempty"`
	Error       string     `json:"error,omitempty"`
	Result      *JobResult `json:"results,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CanRetry сообщает, осталась ли у задачи попытка для повторной отправки
func (j *Job) CanRetry() bool {
	return j.Attempt < j.MaxAttempts
}
