package specialist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	promptx "github.com/tanpawarit/career-handoff/agent/prompt"
	structuredx "github.com/tanpawarit/career-handoff/agent/structured"
	toolx "github.com/tanpawarit/career-handoff/agent/tool"
)

const (
	toolSourceModel   = "model"
	toolSourceSession = "session"
)

// definition is what distinguishes one specialist from another: its tool,
// its output schema, and how a typed result maps onto the response. ground
// copies the tool's own output over the fields the model restated.
type definition[T any] struct {
	tag          contractx.IntentTag
	instructions string
	output       *structuredx.Schema[T]
	deriveArgs   func(contractx.SpecialistRequest, *toolx.Toolbox) map[string]any
	ground       func(T, contractx.ToolRequest, contractx.ToolResult) (T, error)
	wrap         func(T) contractx.SpecialistResponse
}

type specialistImpl[T any] struct {
	def              definition[T]
	toolbox          *toolx.Toolbox
	toolInfo         *schema.ToolInfo
	execute          toolx.Executor
	toolRunner       compose.Runnable[map[string]any, *schema.Message]
	structuredRunner compose.Runnable[map[string]any, T]
	runtimeRunner    compose.Runnable[contractx.SpecialistRequest, contractx.SpecialistResponse]
}

func newSpecialist[T any](
	ctx context.Context,
	def definition[T],
	chatModel einomodel.ToolCallingChatModel,
	toolbox *toolx.Toolbox,
) (*specialistImpl[T], error) {
	info, execute := toolx.BuildForIntent(def.tag, toolbox)
	if info == nil {
		return nil, fmt.Errorf("%w: no tool for specialist=%s", contractx.ErrUnknownSpecialist, def.tag)
	}

	structuredRunner, err := compileStructuredLLMGraph(ctx, chatModel, def.output, string(def.tag)+".structured_graph")
	if err != nil {
		return nil, fmt.Errorf("compile structured specialist graph: %w", err)
	}

	toolModel, err := chatModel.WithTools([]*schema.ToolInfo{info})
	if err != nil {
		return nil, fmt.Errorf("bind tools for specialist=%s: %w", def.tag, err)
	}
	toolRunner, err := compileToolPlanningGraph(ctx, toolModel, string(def.tag)+".tool_planning_graph")
	if err != nil {
		return nil, fmt.Errorf("compile tool planning graph: %w", err)
	}

	spec := &specialistImpl[T]{
		def:              def,
		toolbox:          toolbox,
		toolInfo:         info,
		execute:          execute,
		toolRunner:       toolRunner,
		structuredRunner: structuredRunner,
	}

	runtimeRunner, err := compileSpecialistRuntimeGraph(ctx,
		string(def.tag)+".runtime_graph",
		spec.prepare,
		spec.planToolCall,
		spec.executeTool,
		spec.finalize,
	)
	if err != nil {
		return nil, fmt.Errorf("compile specialist runtime graph: %w", err)
	}
	spec.runtimeRunner = runtimeRunner

	return spec, nil
}

func (s *specialistImpl[T]) Name() string {
	return s.def.tag.AgentName()
}

func (s *specialistImpl[T]) Run(ctx context.Context, req contractx.SpecialistRequest) (contractx.SpecialistResponse, error) {
	return s.runtimeRunner.Invoke(ctx, req)
}

func (s *specialistImpl[T]) prepare(ctx context.Context, req contractx.SpecialistRequest) (*runtimeState, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("%w: query is required", contractx.ErrValidation)
	}
	if err := req.Session.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}

	instructions, err := promptx.Render(s.def.instructions, req.Session)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}

	return &runtimeState{
		Req:          req,
		Instructions: instructions,
	}, nil
}

// planToolCall lets the model choose the tool arguments. Without a usable
// call the arguments are derived from the session, so the tool always runs.
func (s *specialistImpl[T]) planToolCall(ctx context.Context, in *runtimeState) (*runtimeState, error) {
	input, err := json.Marshal(map[string]any{
		"mode":    "act",
		"query":   in.Req.Query,
		"session": in.Req.Session,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal tool planning payload: %v", contractx.ErrValidation, err)
	}

	msg, err := s.toolRunner.Invoke(ctx, map[string]any{
		"system": in.Instructions + "\n\nCall the " + s.toolInfo.Name + " tool exactly once with arguments taken from the user's request and profile.",
		"input":  string(input),
	})
	if err != nil {
		return nil, providerError(s.Name()+" tool planning", err)
	}

	var calls []schema.ToolCall
	if msg != nil {
		calls = msg.ToolCalls
	}
	reqs, err := toToolRequests(calls)
	if err != nil {
		return nil, err
	}

	for _, tr := range reqs {
		if tr.Tool != s.toolInfo.Name {
			return nil, fmt.Errorf("%w: tool=%s is not allowed for agent=%s", contractx.ErrSchemaValidation, tr.Tool, s.Name())
		}
	}

	if len(reqs) > 0 {
		in.ToolReq = reqs[0]
		in.ToolSource = toolSourceModel
		return in, nil
	}

	in.ToolReq = contractx.ToolRequest{
		Tool: s.toolInfo.Name,
		Args: s.def.deriveArgs(in.Req, s.toolbox),
	}
	in.ToolSource = toolSourceSession
	return in, nil
}

func (s *specialistImpl[T]) executeTool(ctx context.Context, in *runtimeState) (*runtimeState, error) {
	res, err := s.execute(ctx, in.ToolReq)
	if err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, fmt.Errorf("%w: tool=%s rejected arguments: %s", contractx.ErrSchemaValidation, res.Tool, res.Error)
	}
	log.Debug().
		Str("specialist", s.Name()).
		Str("tool", res.Tool).
		Str("source", in.ToolSource).
		Msg("tool executed")

	in.ToolResult = res
	return in, nil
}

func (s *specialistImpl[T]) finalize(ctx context.Context, in *runtimeState) (contractx.SpecialistResponse, error) {
	input, err := json.Marshal(map[string]any{
		"mode":        "finalize",
		"query":       in.Req.Query,
		"session":     in.Req.Session,
		"tool_call":   in.ToolReq,
		"tool_result": in.ToolResult.Result,
	})
	if err != nil {
		return contractx.SpecialistResponse{}, fmt.Errorf("%w: marshal specialist payload: %v", contractx.ErrValidation, err)
	}

	out, err := s.structuredRunner.Invoke(ctx, map[string]any{
		"system": in.Instructions + "\n\n" + outputInstruction(s.def.output.JSON()),
		"input":  string(input),
	})
	if err != nil {
		if errors.Is(err, contractx.ErrSchemaValidation) {
			return contractx.SpecialistResponse{}, err
		}
		return contractx.SpecialistResponse{}, providerError(s.Name(), err)
	}

	if s.def.ground != nil {
		out, err = s.def.ground(out, in.ToolReq, in.ToolResult)
		if err != nil {
			return contractx.SpecialistResponse{}, err
		}
	}
	return s.def.wrap(out), nil
}

func outputInstruction(schemaJSON string) string {
	return "Base your answer on tool_result. Reply with a single JSON value and nothing else. It must validate against this JSON Schema:\n" + schemaJSON
}

func providerError(stage string, err error) error {
	return fmt.Errorf("%w: %s: %w", contractx.ErrProvider, stage, err)
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaValidation)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaValidation, tool, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{
			Tool: tool,
			Args: args,
		})
	}
	return reqs, nil
}
