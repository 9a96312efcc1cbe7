package worker

//go:generate mockgen -source=worker.go -destination=mocks/mock_worker.go -package=mocks

import (
	"context"

	"github.com/shenikar/atx_traffic/internal/imagehost"
	"github.com/shenikar/atx_traffic/internal/models"
)

// DatasetSource загружает актуальный снимок набора данных
type DatasetSource interface {
	Fetch(ctx context.Context) ([]*models.Incident, error)
}

// ImageHost размещает изображения во внешнем сервисе
type ImageHost interface {
	Upload(ctx context.Context, png []byte, title string) (*imagehost.Image, error)
	Delete(ctx context.Context, deleteHash string) error
}

// Renderer превращает агрегированные данные в PNG
type Renderer interface {
	Timeseries(counts []models.YearCount) ([]byte, error)
	Dotmap(points []models.Point, bounds models.Bounds) ([]byte, error)
	Heatmap(grid models.Grid) ([]byte, error)
}

// Handler выполняет задачу определенного типа
type Handler interface {
	Handle(ctx context.Context, job *models.Job) Outcome
}

// HandlerFunc позволяет использовать функцию как Handler
type HandlerFunc func(ctx context.Context, job *models.Job) Outcome

func (f HandlerFunc) Handle(ctx context.Context, job *models.Job) Outcome {
	return f(ctx, job)
}

// Notifier сообщает о задаче, записанной в конечном статусе
type Notifier interface {
	JobFinished(ctx context.Context, job *models.Job) error
}
