package specialist

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	structuredx "github.com/tanpawarit/career-handoff/agent/structured"
)

// Both prompt parts are template variables, so rendered instructions and
// JSON payloads are never themselves parsed as templates.
func chatTemplate() einoprompt.ChatTemplate {
	return einoprompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage("{{.system}}"),
		schema.UserMessage("{{.input}}"),
	)
}

func compileToolPlanningGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	graphName string,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", chatTemplate()); err != nil {
		return nil, fmt.Errorf("add tool planning prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add tool planning model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add tool planning edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add tool planning edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add tool planning edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(graphName))
	if err != nil {
		return nil, fmt.Errorf("compile tool planning graph: %w", err)
	}
	return runner, nil
}

// compileStructuredLLMGraph ends in a parse node that validates the raw
// model content against output before decoding it.
func compileStructuredLLMGraph[T any](
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	output *structuredx.Schema[T],
	graphName string,
) (compose.Runnable[map[string]any, T], error) {
	graph := compose.NewGraph[map[string]any, T]()
	if err := graph.AddChatTemplateNode("prompt", chatTemplate()); err != nil {
		return nil, fmt.Errorf("add structured prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add structured model node: %w", err)
	}
	if err := graph.AddLambdaNode("parse_json",
		compose.InvokableLambda(func(ctx context.Context, msg *schema.Message) (T, error) {
			if msg == nil {
				var zero T
				return zero, fmt.Errorf("%w: %s: empty model response", contractx.ErrSchemaValidation, output.Name())
			}
			return output.Decode(msg.Content)
		}),
	); err != nil {
		return nil, fmt.Errorf("add structured parser node: %w", err)
	}

	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add structured edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add structured edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", "parse_json"); err != nil {
		return nil, fmt.Errorf("add structured edge model->parse: %w", err)
	}
	if err := graph.AddEdge("parse_json", compose.END); err != nil {
		return nil, fmt.Errorf("add structured edge parse->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(graphName))
	if err != nil {
		return nil, fmt.Errorf("compile structured graph: %w", err)
	}
	return runner, nil
}

type runtimeState struct {
	Req          contractx.SpecialistRequest
	Instructions string
	ToolReq      contractx.ToolRequest
	ToolSource   string
	ToolResult   contractx.ToolResult
}

func compileSpecialistRuntimeGraph(
	ctx context.Context,
	graphName string,
	prepare func(context.Context, contractx.SpecialistRequest) (*runtimeState, error),
	planTool func(context.Context, *runtimeState) (*runtimeState, error),
	executeTool func(context.Context, *runtimeState) (*runtimeState, error),
	finalize func(context.Context, *runtimeState) (contractx.SpecialistResponse, error),
) (compose.Runnable[contractx.SpecialistRequest, contractx.SpecialistResponse], error) {
	graph := compose.NewGraph[contractx.SpecialistRequest, contractx.SpecialistResponse]()

	if err := graph.AddLambdaNode("validate_and_prepare", compose.InvokableLambda(prepare)); err != nil {
		return nil, fmt.Errorf("add specialist runtime validate node: %w", err)
	}
	if err := graph.AddLambdaNode("plan_tool_call", compose.InvokableLambda(planTool)); err != nil {
		return nil, fmt.Errorf("add specialist runtime plan node: %w", err)
	}
	if err := graph.AddLambdaNode("execute_tool", compose.InvokableLambda(executeTool)); err != nil {
		return nil, fmt.Errorf("add specialist runtime tool node: %w", err)
	}
	if err := graph.AddLambdaNode("finalize_output", compose.InvokableLambda(finalize)); err != nil {
		return nil, fmt.Errorf("add specialist runtime finalize node: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_and_prepare"},
		{"validate_and_prepare", "plan_tool_call"},
		{"plan_tool_call", "execute_tool"},
		{"execute_tool", "finalize_output"},
		{"finalize_output", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add specialist runtime edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(graphName))
	if err != nil {
		return nil, fmt.Errorf("compile specialist runtime graph: %w", err)
	}
	return runner, nil
}
