package runner

import (
	"context"
	"errors"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	metricsx "github.com/tanpawarit/career-handoff/pkg/metrics"
)

const (
	OutcomeSuccess          = metricsx.OutcomeSuccess
	OutcomeSchemaValidation = "schema_validation"
	OutcomeProvider         = "provider"
	OutcomeTimeout          = "timeout"
	OutcomeValidation       = "validation"
	OutcomeUnknown          = "unknown"
)

// Classify maps a dispatch error onto its outcome label.
func Classify(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, contractx.ErrSchemaValidation):
		return OutcomeSchemaValidation
	case errors.Is(err, contractx.ErrProvider):
		return OutcomeProvider
	case errors.Is(err, contractx.ErrValidation):
		return OutcomeValidation
	default:
		return OutcomeUnknown
	}
}

// Outcome is the record of one processed query.
type Outcome struct {
	RunID  string
	Query  string
	Intent contractx.IntentTag
	Result contractx.DispatchResult
	Err    error
	Label  string
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}
