package v1

import (
	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service"
)

// DTOToQueryParams переносит параметры запроса в сырые параметры сервиса
func DTOToQueryParams(dto IncidentQueryRequest) service.QueryParams {
	return service.QueryParams{
		Type:      dto.Type,
		Status:    dto.Status,
		Start:     dto.Start,
		End:       dto.End,
		Longitude: dto.Longitude,
		Latitude:  dto.Latitude,
		Radius:    dto.Radius,
		Address:   dto.Address,
		Offset:    dto.Offset,
		Limit:     dto.Limit,
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ReportID:    model.ReportID,
		IssueType:   model.IssueType,
		Status:      model.Status,
		PublishedAt: model.PublishedAt,
		UpdatedAt:   model.UpdatedAt,
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Address:     model.Address,
		Agency:      model.Agency,
		Extra:       model.Extra,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToJobResponse преобразует задачу в DTO для ответа
func ModelToJobResponse(model *models.Job) *JobResponse {
	resp := &JobResponse{
		ID:          model.ID,
		Type:        string(model.Type),
		Start:       model.Start,
		End:         model.End,
		Status:      string(model.Status),
		Attempt:     model.Attempt,
		MaxAttempts: model.MaxAttempts,
		ParentID:    model.ParentID,
		RetriedBy:   model.RetriedBy,
		Error:       model.Error,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if r := model.Result; r != nil {
		resp.Result = &JobResultResponse{
			ImageID:       r.ImageID,
			Link:          r.Link,
			DeleteHash:    r.DeleteHash,
			UploadedAt:    r.UploadedAt,
			RecordCount:   r.RecordCount,
			DeletedJobs:   r.DeletedJobs,
			DeletedImages: r.DeletedImages,
		}
	}
	return resp
}

// ModelsToJobResponses преобразует слайс задач в слайс DTO
func ModelsToJobResponses(jobs []*models.Job) []*JobResponse {
	responses := make([]*JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = ModelToJobResponse(job)
	}
	return responses
}

// ModelToRangeResponse преобразует диапазон в DTO
func ModelToRangeResponse(r models.Range) RangeResponse {
	return RangeResponse{Min: r.Min, Max: r.Max}
}

// ModelToCoordinatesResponse преобразует границы координат в DTO
func ModelToCoordinatesResponse(r models.CoordinatesRange) CoordinatesRangeResponse {
	return CoordinatesRangeResponse{
		Latitude:  ModelToRangeResponse(r.Lat),
		Longitude: ModelToRangeResponse(r.Lon),
	}
}
