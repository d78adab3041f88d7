package dispatchnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
)

// Handoff transfers the query and the full session to the specialist owning
// the classified intent.
func Handoff(
	ctx context.Context,
	in *GraphState,
	models contractx.Registry,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	specialist, ok := models.Specialist(in.Intent)
	if !ok || specialist == nil {
		return nil, fmt.Errorf("%w: intent=%q", contractx.ErrUnknownSpecialist, in.Intent)
	}

	resp, err := specialist.Run(ctx, contractx.SpecialistRequest{
		Query:   in.Query,
		Session: in.Session,
	})
	if err != nil {
		return nil, err
	}

	text, err := Render(resp)
	if err != nil {
		return nil, err
	}

	in.SpecialistName = specialist.Name()
	in.Response = resp
	in.ResponseText = text
	return in, nil
}
