package dispatcher

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	nodex "github.com/tanpawarit/career-handoff/agent/nodes/dispatch"
)

const (
	nodeValidateRequest = "validate_request"
	nodeClassifyIntent  = "classify_intent"
	nodeHandoff         = "handoff"
	nodeAnswerDirectly  = "answer_directly"
	nodeFinalizeResult  = "finalize_result"
)

func (d *Dispatcher) compileDispatchGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode(nodeValidateRequest,
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeValidateRequest, err)
	}

	if err := graph.AddLambdaNode(nodeClassifyIntent,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			out, err := nodex.ClassifyIntent(in)
			if err != nil {
				return nil, err
			}
			log.Debug().
				Str("query", out.Query).
				Str("intent", string(out.Intent)).
				Int("matches", len(out.Matches)).
				Msg("intent classified")
			return out, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeClassifyIntent, err)
	}

	if err := graph.AddLambdaNode(nodeHandoff,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.Handoff(ctx, in, d.models)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeHandoff, err)
	}

	if err := graph.AddLambdaNode(nodeAnswerDirectly,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.AnswerDirectly(ctx, in, d.models)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeAnswerDirectly, err)
	}

	if err := graph.AddLambdaNode(nodeFinalizeResult,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeResult(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeFinalizeResult, err)
	}

	edges := [][2]string{
		{compose.START, nodeValidateRequest},
		{nodeValidateRequest, nodeClassifyIntent},
		{nodeHandoff, nodeFinalizeResult},
		{nodeAnswerDirectly, nodeFinalizeResult},
		{nodeFinalizeResult, compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			return nodex.Route(in, nodeHandoff, nodeAnswerDirectly), nil
		},
		map[string]bool{
			nodeHandoff:        true,
			nodeAnswerDirectly: true,
		},
	)
	if err := graph.AddBranch(nodeClassifyIntent, branch); err != nil {
		return nil, fmt.Errorf("add branch %s: %w", nodeClassifyIntent, err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("dispatcher.dispatch"))
	if err != nil {
		return nil, fmt.Errorf("compile dispatcher graph: %w", err)
	}
	return runner, nil
}
