package dispatchnode

import (
	"fmt"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
)

func ClassifyIntent(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Status != StatusRouting {
		return nil, fmt.Errorf("%w: cannot classify in status=%s", contractx.ErrValidation, in.Status)
	}

	in.Intent, in.Matches = Classify(in.Query)
	return in, nil
}

// Route names the node that handles the classified intent.
func Route(in *GraphState, handoffNode, directNode string) string {
	if in == nil || in.Intent == contractx.IntentNone {
		return directNode
	}
	return handoffNode
}
