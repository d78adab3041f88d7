package dispatchnode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
)

func FinalizeResult(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Status != StatusRouting {
		return GraphOutput{}, fmt.Errorf("%w: dispatch already in status=%s", contractx.ErrValidation, in.Status)
	}

	name := strings.TrimSpace(in.SpecialistName)
	if name == "" {
		return GraphOutput{}, fmt.Errorf("%w: no agent handled the query", contractx.ErrValidation)
	}
	text := strings.TrimSpace(in.ResponseText)
	if text == "" {
		return GraphOutput{}, fmt.Errorf("%w: %s returned an empty response", contractx.ErrSchemaValidation, name)
	}

	in.Status = StatusCompleted
	return GraphOutput{
		SpecialistName: name,
		ResponseText:   text,
	}, nil
}
