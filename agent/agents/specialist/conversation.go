package specialist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	promptx "github.com/tanpawarit/career-handoff/agent/prompt"
	structuredx "github.com/tanpawarit/career-handoff/agent/structured"
)

var conversationSchema = structuredx.MustFor[contractx.ConversationResponse]("conversation_response")

type conversationImpl struct {
	instructions string
	runner       compose.Runnable[map[string]any, contractx.ConversationResponse]
}

func newConversation(ctx context.Context, chatModel einomodel.BaseChatModel, instructions string) (*conversationImpl, error) {
	runner, err := compileStructuredLLMGraph(ctx, chatModel, conversationSchema, "conversation.structured_graph")
	if err != nil {
		return nil, fmt.Errorf("compile conversation graph: %w", err)
	}
	return &conversationImpl{
		instructions: instructions,
		runner:       runner,
	}, nil
}

// Answer replies to a query no specialist claimed. The agent field of the
// model's reply is ignored; dispatch always reports the conversation agent.
func (c *conversationImpl) Answer(ctx context.Context, req contractx.SpecialistRequest) (string, error) {
	if strings.TrimSpace(req.Query) == "" {
		return "", fmt.Errorf("%w: query is required", contractx.ErrValidation)
	}

	instructions, err := promptx.Render(c.instructions, req.Session)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}

	input, err := json.Marshal(map[string]any{
		"query":   req.Query,
		"session": req.Session,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal conversation payload: %v", contractx.ErrValidation, err)
	}

	out, err := c.runner.Invoke(ctx, map[string]any{
		"system": instructions + "\n\n" + "Answer the query directly. " + outputInstruction(conversationSchema.JSON()),
		"input":  string(input),
	})
	if err != nil {
		if errors.Is(err, contractx.ErrSchemaValidation) {
			return "", err
		}
		return "", providerError(contractx.AgentNameConversation, err)
	}

	return strings.TrimSpace(out.Response), nil
}
