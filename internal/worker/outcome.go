package worker

import (
	"errors"

	"github.com/shenikar/atx_traffic/internal/models"
)

// OutcomeKind - итог выполнения обработчика
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeSuccess
	OutcomeFailure
	OutcomeRetry
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeRetry:
		return "retry"
	default:
		return "none"
	}
}

// errNoOutcome - обработчик не вернул ни результата, ни ошибки
var errNoOutcome = errors.New("handler returned no outcome")

// Outcome - явный результат обработчика. Нулевое значение считается ошибкой.
type Outcome struct {
	Kind   OutcomeKind
	Result *models.JobResult
	Err    error
}

// Success завершает задачу с результатом
func Success(result *models.JobResult) Outcome {
	return Outcome{Kind: OutcomeSuccess, Result: result}
}

// Failure завершает задачу с ошибкой
func Failure(err error) Outcome {
	return Outcome{Kind: OutcomeFailure, Err: err}
}

// Retry просит отправить эквивалентную задачу повторно
func Retry(err error) Outcome {
	return Outcome{Kind: OutcomeRetry, Err: err}
}

// normalize приводит неполные итоги к ошибке
func (o Outcome) normalize() Outcome {
	switch o.Kind {
	case OutcomeSuccess:
		if o.Result == nil {
			return Failure(errNoOutcome)
		}
	case OutcomeFailure, OutcomeRetry:
		if o.Err == nil {
			return Outcome{Kind: o.Kind, Err: errNoOutcome}
		}
	default:
		return Failure(errNoOutcome)
	}
	return o
}

// reason - текст ошибки для записи в задачу
func (o Outcome) reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
