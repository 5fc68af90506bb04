package databag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agentstation/databag/pkg/bags"
	"github.com/agentstation/databag/pkg/differ"
	"github.com/agentstation/databag/pkg/errors"
	"github.com/agentstation/databag/pkg/guard"
	"github.com/agentstation/databag/pkg/logging"
	"github.com/agentstation/databag/pkg/snapshot"
)

// Change describes one peer-bag-changed notification delivered by the host
// runtime. App names the peer application that produced it; Unit is the
// acting unit when the runtime knows it.
type Change struct {
	Relation bags.RelationID
	App      string
	Unit     string
}

// Trigger maps a peer bag key to the event kind raised when the key first
// appears. A key that merely changes or disappears never triggers.
type Trigger struct {
	Key  string
	Kind EventKind
}

// Provider is the diff-and-notify engine shared by all flavors. It gates
// notification handling on leadership, diffs the peer bag against the
// persisted snapshot, and raises one typed event per trigger key that
// entered the added set.
//
// Notifications for the same relation must be processed sequentially, in
// delivery order; different relations are independent.
type Provider struct {
	name     string
	bags     bags.Accessor
	oracle   guard.Oracle
	writer   *guard.Writer
	diffs    *differ.Engine
	hooks    *hooks
	triggers []Trigger
	config   *config
}

// NewProvider assembles a provider for a flavor from its trigger table.
// It stays exported so downstream code can compose new flavors without
// touching this module; the stock flavors are NewDatabase, NewKafka, and
// NewZookeeper.
func NewProvider(name string, accessor bags.Accessor, oracle guard.Oracle, triggers []Trigger, opts ...Option) (*Provider, error) {
	if name == "" {
		return nil, errors.NewValidationError("name", name, "cannot be empty")
	}
	if accessor == nil {
		return nil, errors.NewValidationError("accessor", nil, "cannot be nil")
	}
	if oracle == nil {
		return nil, errors.NewValidationError("oracle", nil, "cannot be nil")
	}

	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying provider option: %w", err)
		}
	}

	return &Provider{
		name:     name,
		bags:     accessor,
		oracle:   oracle,
		writer:   guard.New(accessor, oracle),
		diffs:    differ.New(snapshot.New(accessor)),
		hooks:    newHooks(),
		triggers: triggers,
		config:   cfg,
	}, nil
}

// Name returns the provider's flavor name.
func (p *Provider) Name() string {
	return p.name
}

// On registers a callback for the given event kind.
func (p *Provider) On(kind EventKind, fn Hook) {
	p.hooks.on(kind, fn)
}

// Changed handles one peer-bag-changed notification: it re-checks
// leadership, computes the delta against the stored snapshot (advancing it),
// raises the flavor's events for newly added trigger keys in trigger-table
// order, and dispatches registered hooks. Non-leader replicas return
// immediately with no events and no side effects.
//
// The returned events are the same ones delivered to hooks, for callers that
// dispatch through their own mechanism.
func (p *Provider) Changed(ctx context.Context, change Change) ([]Event, error) {
	if p.config.logger != nil {
		ctx = logging.WithLogger(ctx, p.config.logger)
	}
	logger := logging.FromContext(ctx).With().
		Str("flavor", p.name).
		Str("relation_id", change.Relation.String()).
		Logger()

	// Downstream business logic depends on knowing which peer acted, so a
	// notification without that identity fails before any snapshot advance.
	if change.App == "" {
		return nil, errors.WrapResource("handle", "change", change.Relation.String(), errors.ErrMissingPeerApp)
	}

	// Only the leader handles notifications.
	if !p.oracle.IsLeader() {
		logger.Debug().Msg("Not leader, ignoring change")
		return nil, nil
	}

	peerView, err := p.bags.Get(change.Relation, bags.SidePeer)
	if err != nil {
		return nil, errors.WrapResource("read", "bag", change.Relation.String(), err)
	}

	delta, err := p.diffs.Compute(ctx, change.Relation, peerView)
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, trigger := range p.triggers {
		if !delta.WasAdded(trigger.Key) {
			continue
		}
		ev := Event{
			ID:       uuid.New(),
			Kind:     trigger.Kind,
			Relation: change.Relation,
			App:      change.App,
			Unit:     change.Unit,
			bags:     p.bags,
		}
		events = append(events, ev)
		p.hooks.dispatch(ev)
	}

	logger.Info().
		Str("delta", delta.Summary()).
		Int("events", len(events)).
		Msg("Handled change")
	return events, nil
}

// FetchData returns, per relation, the peer bag content with the reserved
// snapshot key filtered out. It can be used outside a notification callback
// and requires a relation enumerator (see WithRelations).
func (p *Provider) FetchData(ctx context.Context) (map[bags.RelationID]bags.View, error) {
	if p.config.relations == nil {
		return nil, errors.NewValidationError("relations", nil, "no enumerator configured")
	}

	data := make(map[bags.RelationID]bags.View)
	for _, id := range p.config.relations.Relations() {
		view, err := p.bags.Get(id, bags.SidePeer)
		if err != nil {
			return nil, errors.WrapResource("fetch", "bag", id.String(), err)
		}
		data[id] = view.Without(snapshot.Key)
	}
	return data, nil
}

// update merges fields into the relation's local bag through the
// single-writer guard. Every capability accessor funnels through here.
func (p *Provider) update(ctx context.Context, id bags.RelationID, fields bags.View) error {
	if p.config.logger != nil {
		ctx = logging.WithLogger(ctx, p.config.logger)
	}
	return p.writer.Update(ctx, id, fields)
}

// SetCredentials publishes the credentials issued for the relation.
func (p *Provider) SetCredentials(ctx context.Context, id bags.RelationID, username, password string) error {
	return p.update(ctx, id, bags.View{
		"username": username,
		"password": password,
	})
}

// SetVersion publishes the version of the backing resource.
func (p *Provider) SetVersion(ctx context.Context, id bags.RelationID, version string) error {
	return p.update(ctx, id, bags.View{"version": version})
}

// SetURIs publishes connection URIs. Used by flavors whose clients connect
// by URI rather than host:port endpoints (MongoDB, Redis, OpenSearch,
// Kafka).
func (p *Provider) SetURIs(ctx context.Context, id bags.RelationID, uris string) error {
	return p.update(ctx, id, bags.View{"uris": uris})
}
