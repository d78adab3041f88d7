package dispatcher

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	nodex "github.com/tanpawarit/career-handoff/agent/nodes/dispatch"
	statex "github.com/tanpawarit/career-handoff/agent/state"
)

var ErrInvalidQuery = nodex.ErrInvalidQuery

// Dispatcher routes one query per call to at most one specialist. It keeps
// no state between calls.
type Dispatcher struct {
	models contractx.Registry

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]
}

func New(models contractx.Registry) (*Dispatcher, error) {
	if models == nil {
		return nil, errors.New("agent registry is required")
	}

	d := &Dispatcher{
		models: models,
	}

	graphRunner, err := d.compileDispatchGraph(context.Background())
	if err != nil {
		return nil, err
	}
	d.graphRunner = graphRunner

	return d, nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, query string, session statex.SessionContext) (contractx.DispatchResult, error) {
	return d.graphRunner.Invoke(ctx, nodex.GraphInput{
		Query:   query,
		Session: session,
	})
}

// Classify exposes the routing policy without invoking any agent. Ties are
// broken by contract.IntentPriority.
func Classify(query string) (contractx.IntentTag, []contractx.IntentTag) {
	return nodex.Classify(query)
}
