package scenario

import (
	"context"

	"github.com/agentstation/databag"
	"github.com/agentstation/databag/pkg/bags"
	"github.com/agentstation/databag/pkg/bags/memory"
	"github.com/agentstation/databag/pkg/guard"
)

// StepResult records what one replayed step produced.
type StepResult struct {
	// Step is the zero-based step index.
	Step int

	// Events raised by the provider for this step, in emission order.
	Events []databag.Event

	// PeerView is the peer bag content after the step's mutations.
	PeerView bags.View

	// LocalView is the provider bag content after the notification,
	// including the reserved snapshot key.
	LocalView bags.View
}

// Run replays the scenario against an in-memory bag store and returns the
// per-step results.
func Run(ctx context.Context, sc *Scenario, opts ...databag.Option) ([]StepResult, error) {
	store, err := memory.New(memory.WithRelations(bags.RelationID(sc.Relation)))
	if err != nil {
		return nil, err
	}

	oracle := guard.OracleFunc(sc.IsLeader)
	provider, err := newProvider(sc.Flavor, store, oracle, opts...)
	if err != nil {
		return nil, err
	}

	id := bags.RelationID(sc.Relation)
	results := make([]StepResult, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		if len(step.Set) > 0 {
			if err := store.Update(id, bags.SidePeer, bags.View(step.Set)); err != nil {
				return nil, err
			}
		}
		if len(step.Unset) > 0 {
			if err := store.Delete(id, bags.SidePeer, step.Unset...); err != nil {
				return nil, err
			}
		}

		events, err := provider.Changed(ctx, databag.Change{
			Relation: id,
			App:      sc.App,
			Unit:     sc.Unit,
		})
		if err != nil {
			return nil, err
		}

		peer, err := store.Get(id, bags.SidePeer)
		if err != nil {
			return nil, err
		}
		local, err := store.Get(id, bags.SideLocal)
		if err != nil {
			return nil, err
		}
		results = append(results, StepResult{
			Step:      i,
			Events:    events,
			PeerView:  peer,
			LocalView: local,
		})
	}
	return results, nil
}

func newProvider(flavor string, store *memory.Store, oracle guard.Oracle, opts ...databag.Option) (*databag.Provider, error) {
	switch flavor {
	case "kafka":
		k, err := databag.NewKafka(store, oracle, opts...)
		if err != nil {
			return nil, err
		}
		return k.Provider, nil
	case "zookeeper":
		z, err := databag.NewZookeeper(store, oracle, opts...)
		if err != nil {
			return nil, err
		}
		return z.Provider, nil
	default:
		d, err := databag.NewDatabase(store, oracle, opts...)
		if err != nil {
			return nil, err
		}
		return d.Provider, nil
	}
}
