package dispatchnode

import (
	"errors"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	statex "github.com/tanpawarit/career-handoff/agent/state"
)

var ErrInvalidQuery = errors.New("query is empty")

type Status string

const (
	StatusRouting   Status = "routing"
	StatusCompleted Status = "completed"
)

type GraphInput struct {
	Query   string
	Session statex.SessionContext
}

type GraphOutput = contractx.DispatchResult

// GraphState moves through the dispatcher graph exactly once: it starts in
// StatusRouting and leaves finalize_result in StatusCompleted.
type GraphState struct {
	Query   string
	Session statex.SessionContext
	Status  Status

	Intent  contractx.IntentTag
	Matches []contractx.IntentTag

	SpecialistName string
	Response       contractx.SpecialistResponse
	ResponseText   string
}

func ValidateRequest(in GraphInput) (*GraphState, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: %w", contractx.ErrValidation, ErrInvalidQuery)
	}
	if err := in.Session.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}

	return &GraphState{
		Query:   query,
		Session: in.Session,
		Status:  StatusRouting,
	}, nil
}
