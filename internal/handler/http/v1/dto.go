package v1

import "time"

// IncidentQueryRequest DTO параметров фильтрации происшествий
// @Description DTO параметров фильтрации происшествий
type IncidentQueryRequest struct {
	Type      string `form:"type" validate:"omitempty,max=128"`
	Status    string `form:"status" validate:"omitempty,max=64"`
	Start     string `form:"start" validate:"omitempty,max=19"`
	End       string `form:"end" validate:"omitempty,max=19"`
	Latitude  string `form:"lat" validate:"omitempty,latitude"`
	Longitude string `form:"lgt" validate:"omitempty,longitude"`
	Radius    string `form:"radius"`
	Address   string `form:"address" validate:"omitempty,max=256"`
	Offset    string `form:"offset" validate:"omitempty,number"`
	Limit     string `form:"limit" validate:"omitempty,number"`
}

// JobQueryRequest DTO параметров фильтрации задач
// @Description DTO параметров фильтрации задач
type JobQueryRequest struct {
	Type   string `form:"type" validate:"omitempty,max=64"`
	Status string `form:"status" validate:"omitempty,oneof=all submitted in-progress completed failed"`
	Offset string `form:"offset" validate:"omitempty,number"`
	Limit  string `form:"limit" validate:"omitempty,number"`
}

// JobRequest DTO для отправки задачи
// @Description DTO для отправки задачи. Даты в формате YYYY-MM-DD[THH[:MM[:SS]]]
type JobRequest struct {
	Start string `json:"start,omitempty" validate:"omitempty,max=19"`
	End   string `json:"end,omitempty" validate:"omitempty,max=19"`
}

// IncidentResponse DTO для ответа с информацией о происшествии
// @Description DTO для ответа с информацией о происшествии
type IncidentResponse struct {
	ReportID    string            `json:"traffic_report_id"`
	IssueType   string            `json:"issue_reported"`
	Status      string            `json:"traffic_report_status"`
	PublishedAt int64             `json:"published_date"`
	UpdatedAt   int64             `json:"traffic_report_status_date_time"`
	Latitude    *float64          `json:"latitude"`
	Longitude   *float64          `json:"longitude"`
	Address     string            `json:"address,omitempty"`
	Agency      string            `json:"agency,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// JobResultResponse DTO результата задачи
// @Description DTO результата задачи
type JobResultResponse struct {
	ImageID       string `json:"id,omitempty"`
	Link          string `json:"link,omitempty"`
	DeleteHash    string `json:"deletehash,omitempty"`
	UploadedAt    int64  `json:"datetime,omitempty"`
	RecordCount   int    `json:"record_count"`
	DeletedJobs   int    `json:"deleted_jobs,omitempty"`
	DeletedImages int    `json:"deleted_images,omitempty"`
}

// JobResponse DTO для ответа с информацией о задаче
// @Description DTO для ответа с информацией о задаче
type JobResponse struct {
	ID          string             `json:"id"`
	Type        string             `json:"job_type"`
	Start       int64              `json:"start"`
	End         int64              `json:"end"`
	Status      string             `json:"status"`
	Attempt     int                `json:"attempt"`
	MaxAttempts int                `json:"max_attempts"`
	ParentID    string             `json:"parent_id,omitempty"`
	RetriedBy   string             `json:"retried_by,omitempty"`
	Error       string             `json:"error,omitempty"`
	Result      *JobResultResponse `json:"results,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// RangeResponse DTO минимального и максимального значения
// @Description DTO минимального и максимального значения
type RangeResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CoordinatesRangeResponse DTO границ координат
// @Description DTO границ координат
type CoordinatesRangeResponse struct {
	Latitude  RangeResponse `json:"lat"`
	Longitude RangeResponse `json:"lgt"`
}

// DeletedResponse DTO количества удаленных элементов
// @Description DTO количества удаленных элементов
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
