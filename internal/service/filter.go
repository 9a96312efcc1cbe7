package service

import (
	"strings"

	"github.com/shenikar/atx_traffic/internal/models"
)

// pager реализует смещение и лимит как бегущий счетчик по уже совпавшим записям
type pager struct {
	skip  int
	limit int
	taken int
}

func newPager(offset, limit int) *pager {
	return &pager{skip: offset, limit: limit}
}

// accept решает, попадает ли очередная совпавшая запись в выдачу
func (p *pager) accept() bool {
	if p.skip > 0 {
		p.skip--
		return false
	}
	p.taken++
	return true
}

func (p *pager) full() bool {
	return p.taken >= p.limit
}

// paginate отбирает элементы, удовлетворяющие match, с учетом смещения и лимита
func paginate[T any](items []T, match func(T) bool, offset, limit int) []T {
	result := make([]T, 0)
	p := newPager(offset, limit)
	if p.full() {
		return result
	}
	for _, item := range items {
		if !match(item) {
			continue
		}
		if p.accept() {
			result = append(result, item)
		}
		if p.full() {
			break
		}
	}
	return result
}

func matchesValue(filter, value string) bool {
	return filter == "" || strings.EqualFold(filter, models.FilterAll) || strings.EqualFold(filter, value)
}

// MatchIncident проверяет все предикаты запроса, они объединяются по И
func MatchIncident(q models.IncidentQuery, inc *models.Incident) bool {
	if !matchesValue(q.IncidentType, inc.IssueType) {
		return false
	}
	if !matchesValue(q.Status, inc.Status) {
		return false
	}
	if inc.PublishedAt < q.Start || inc.PublishedAt > q.End {
		return false
	}
	if !q.Bounded() {
		return true
	}
	// Записи без координат не участвуют в фильтре по радиусу
	if !inc.HasLocation() {
		return false
	}
	point := models.Point{Latitude: *inc.Latitude, Longitude: *inc.Longitude}
	return DistanceMiles(q.Center, point) <= q.RadiusMiles
}

// MatchJob проверяет тип и статус задачи. Тип "plot" совпадает со всеми plot-* задачами.
func MatchJob(q models.JobQuery, job *models.Job) bool {
	if !matchesValue(q.Status, string(job.Status)) {
		return false
	}
	if matchesValue(q.JobType, string(job.Type)) {
		return true
	}
	return strings.HasPrefix(strings.ToLower(string(job.Type)), strings.ToLower(q.JobType)+"-")
}
