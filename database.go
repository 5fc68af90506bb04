package databag

import (
	"context"

	"github.com/agentstation/databag/pkg/bags"
	"github.com/agentstation/databag/pkg/guard"
)

// Database is the provider side of a database relation. The peer requests a
// database by writing the "database" key (optionally with
// "extra-user-roles") into its bag.
type Database struct {
	*Provider
	TLS
}

// NewDatabase creates a database-flavor provider.
func NewDatabase(accessor bags.Accessor, oracle guard.Oracle, opts ...Option) (*Database, error) {
	p, err := NewProvider("database", accessor, oracle, []Trigger{
		{Key: "database", Kind: EventDatabaseRequested},
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Database{Provider: p, TLS: TLS{p}}, nil
}

// OnDatabaseRequested registers a callback for when a peer requests a new
// database on this relation.
func (d *Database) OnDatabaseRequested(fn Hook) {
	d.On(EventDatabaseRequested, fn)
}

// SetEndpoints publishes the database's primary connection addresses as a
// comma-separated host:port list.
func (d *Database) SetEndpoints(ctx context.Context, id bags.RelationID, connectionStrings string) error {
	return d.update(ctx, id, bags.View{"endpoints": connectionStrings})
}

// SetReadOnlyEndpoints publishes the database's replica connection addresses
// as a comma-separated host:port list.
func (d *Database) SetReadOnlyEndpoints(ctx context.Context, id bags.RelationID, connectionStrings string) error {
	return d.update(ctx, id, bags.View{"read-only-endpoints": connectionStrings})
}

// SetReplset publishes the replica set name. MongoDB only.
func (d *Database) SetReplset(ctx context.Context, id bags.RelationID, replset string) error {
	return d.update(ctx, id, bags.View{"replset": replset})
}
