package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service"
	"github.com/sirupsen/logrus"
)

// incidentQuery собирает и проверяет параметры фильтра, включая устаревшие имена параметров
func (h *Handler) incidentQuery(c *gin.Context) (models.IncidentQuery, error) {
	req := IncidentQueryRequest{
		Type:      queryAny(c, "type", "incident_type"),
		Status:    queryAny(c, "status"),
		Start:     queryAny(c, "start", "start_date"),
		End:       queryAny(c, "end", "end_date"),
		Latitude:  queryAny(c, "lat", "latitude"),
		Longitude: queryAny(c, "lgt", "longitude"),
		Radius:    queryAny(c, "radius"),
		Address:   queryAny(c, "address"),
		Offset:    queryAny(c, "offset"),
		Limit:     queryAny(c, "limit"),
	}
	if err := h.validateStruct(req); err != nil {
		return models.IncidentQuery{}, err
	}
	return service.BuildIncidentQuery(c.Request.Context(), DTOToQueryParams(req), h.cfg.Location, h.geocoder)
}

// @Summary Get a list of incidents
// @Description Get incidents matching all filters. Dates use YYYY-MM-DD[THH[:MM[:SS]]].
// @Tags Incidents
// @Produce json
// @Param type query string false "Issue type or 'all'" default(all)
// @Param status query string false "Report status or 'all'" default(all)
// @Param start query string false "Start date" default(1971-01-01)
// @Param end query string false "End date" default(2037-12-30)
// @Param lat query number false "Reference latitude" default(30.3079823)
// @Param lgt query number false "Reference longitude" default(-97.8961686)
// @Param radius query string false "Radius in miles or 'inf'" default(inf)
// @Param address query string false "Address used as reference point"
// @Param offset query int false "Matching records to skip" default(0)
// @Param limit query int false "Maximum number of records"
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid query parameter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	incidents, ok := h.queryIncidents(c, log)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get ids of incidents
// @Description Get report ids of incidents matching all filters
// @Tags Incidents
// @Produce json
// @Param type query string false "Issue type or 'all'"
// @Param status query string false "Report status or 'all'"
// @Param start query string false "Start date"
// @Param end query string false "End date"
// @Param radius query string false "Radius in miles or 'inf'"
// @Param offset query int false "Matching records to skip"
// @Param limit query int false "Maximum number of records"
// @Success 200 {array} string
// @Failure 400 {object} map[string]string "Invalid query parameter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/ids [get]
func (h *Handler) listIncidentIDs(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidentIDs")

	incidents, ok := h.queryIncidents(c, log)
	if !ok {
		return
	}
	ids := make([]string, len(incidents))
	for i, inc := range incidents {
		ids[i] = inc.ReportID
	}
	c.JSON(http.StatusOK, ids)
}

// @Summary Get published timestamps of incidents
// @Description Get published epochs of incidents matching all filters
// @Tags Incidents
// @Produce json
// @Param type query string false "Issue type or 'all'"
// @Param start query string false "Start date"
// @Param end query string false "End date"
// @Param offset query int false "Matching records to skip"
// @Param limit query int false "Maximum number of records"
// @Success 200 {array} integer
// @Failure 400 {object} map[string]string "Invalid query parameter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/epochs [get]
func (h *Handler) listEpochs(c *gin.Context) {
	log := h.logger.WithField("method", "listEpochs")

	incidents, ok := h.queryIncidents(c, log)
	if !ok {
		return
	}
	epochs := make([]int64, len(incidents))
	for i, inc := range incidents {
		epochs[i] = inc.PublishedAt
	}
	c.JSON(http.StatusOK, epochs)
}

func (h *Handler) queryIncidents(c *gin.Context, log *logrus.Entry) ([]*models.Incident, bool) {
	q, err := h.incidentQuery(c)
	if err != nil {
		respondError(c, log, err)
		return nil, false
	}
	incidents, err := h.incidentService.Query(c.Request.Context(), q)
	if err != nil {
		respondError(c, log, err)
		return nil, false
	}
	return incidents, true
}

// @Summary Get incident by ID
// @Description Get a single incident by its report id
// @Tags Incidents
// @Produce json
// @Param id path string true "Traffic report ID"
// @Success 200 {object} IncidentResponse
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/ids/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Get unique issue types
// @Description Get the unique issue types of stored incidents
// @Tags Incidents
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/issues [get]
func (h *Handler) listIssues(c *gin.Context) {
	log := h.logger.WithField("method", "listIssues")

	issues, err := h.incidentService.ListIssues(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// @Summary Get published date range
// @Description Get the earliest and latest published date of stored incidents
// @Tags Incidents
// @Produce json
// @Success 200 {object} RangeResponse
// @Failure 404 {object} map[string]string "No incidents stored"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/published-range [get]
func (h *Handler) getPublishedRange(c *gin.Context) {
	log := h.logger.WithField("method", "getPublishedRange")

	r, err := h.incidentService.PublishedRange(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToRangeResponse(r))
}

// @Summary Get updated date range
// @Description Get the earliest and latest status update date of stored incidents
// @Tags Incidents
// @Produce json
// @Success 200 {object} RangeResponse
// @Failure 404 {object} map[string]string "No incidents stored"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/updated-range [get]
func (h *Handler) getUpdatedRange(c *gin.Context) {
	log := h.logger.WithField("method", "getUpdatedRange")

	r, err := h.incidentService.UpdatedRange(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToRangeResponse(r))
}

// @Summary Get coordinates range
// @Description Get latitude and longitude bounds of incidents with a known location
// @Tags Incidents
// @Produce json
// @Success 200 {object} CoordinatesRangeResponse
// @Failure 404 {object} map[string]string "No incidents with coordinates"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/coordinates-range [get]
func (h *Handler) getCoordinatesRange(c *gin.Context) {
	log := h.logger.WithField("method", "getCoordinatesRange")

	r, err := h.incidentService.CoordinatesRange(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToCoordinatesResponse(r))
}

// @Summary Delete all incidents
// @Description Delete every stored incident. Requires API key.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} DeletedResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [delete]
func (h *Handler) deleteIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "deleteIncidents")

	n, err := h.incidentService.DeleteAll(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, DeletedResponse{Deleted: int64(n)})
}
