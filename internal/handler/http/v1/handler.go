package v1

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/atx_traffic/internal/config"
	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service"
	"github.com/sirupsen/logrus"
)

// HealthCheck проверяет доступность хранилища
type HealthCheck func(ctx context.Context) error

type Handler struct {
	incidentService service.IncidentService
	jobService      service.JobService
	geocoder        service.Geocoder
	health          HealthCheck
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

// NewHandler создает обработчики API. geocoder может быть nil, тогда параметр address отклоняется.
func NewHandler(incidentService service.IncidentService, jobService service.JobService, geocoder service.Geocoder, health HealthCheck, logger *logrus.Logger, cfg *config.Config) *Handler {
	validate := validator.New()
	// В ошибках валидации используется имя параметра запроса, а не поля структуры
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	return &Handler{
		incidentService: incidentService,
		jobService:      jobService,
		geocoder:        geocoder,
		health:          health,
		logger:          logger,
		validate:        validate,
		cfg:             cfg,
	}
}

// validateStruct переводит ошибку validator в models.ValidationError по первому неверному полю
func (h *Handler) validateStruct(s any) error {
	err := h.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		return models.NewValidationError(fe.Field(), "value %q failed on the '%s' rule", fe.Value(), fe.Tag())
	}
	return models.NewValidationError("request", "%s", err.Error())
}

// respondError выбирает код ответа по типу ошибки
func respondError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case models.IsValidation(err):
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(err)})
	case errors.Is(err, models.ErrUpstream):
		log.WithError(err).Error("Upstream service failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream service unavailable"})
	default:
		log.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func validationMessage(err error) string {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	return err.Error()
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrJobNotFound):
		return "job not found"
	case errors.Is(err, models.ErrIncidentNotFound):
		return "incident not found"
	default:
		return "not found"
	}
}

// queryAny возвращает первый заданный параметр из списка имен
func queryAny(c *gin.Context, names ...string) string {
	for _, name := range names {
		if v, ok := c.GetQuery(name); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// @Summary Get application health status
// @Description Get health status of the application and its Redis connection
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	if h.health != nil {
		if err := h.health(c.Request.Context()); err != nil {
			h.logger.WithField("method", "healthCheck").WithError(err).Error("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "store unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
