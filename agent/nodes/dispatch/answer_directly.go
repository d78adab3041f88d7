package dispatchnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
)

func AnswerDirectly(
	ctx context.Context,
	in *GraphState,
	models contractx.Registry,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	conversation := models.Conversation()
	if conversation == nil {
		return nil, fmt.Errorf("%w: conversation agent is not registered", contractx.ErrUnknownSpecialist)
	}

	text, err := conversation.Answer(ctx, contractx.SpecialistRequest{
		Query:   in.Query,
		Session: in.Session,
	})
	if err != nil {
		return nil, err
	}

	in.SpecialistName = contractx.AgentNameConversation
	in.ResponseText = text
	return in, nil
}
