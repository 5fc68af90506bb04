package databag

import (
	"github.com/google/uuid"

	"github.com/agentstation/databag/pkg/bags"
)

// EventKind names the typed events a provider can raise.
type EventKind string

const (
	// EventDatabaseRequested is raised when a peer requests a new database.
	EventDatabaseRequested EventKind = "database-requested"

	// EventTopicCreated is raised when a peer requests a Kafka topic.
	EventTopicCreated EventKind = "topic-created"

	// EventZNodeCreated is raised when a peer requests a ZooKeeper chroot.
	EventZNodeCreated EventKind = "znode-created"
)

// Event is a typed notification derived from a bag delta. Events are
// ephemeral: constructed, delivered, and discarded per notification. They
// hold a reference to the bag store, not a copy, so the accessors below
// always read current peer values at call time.
type Event struct {
	// ID uniquely identifies this emission.
	ID uuid.UUID

	// Kind is the event's type.
	Kind EventKind

	// Relation identifies the relation whose peer bag changed.
	Relation bags.RelationID

	// App is the peer application that produced the notification.
	App string

	// Unit is the acting peer unit, when the runtime supplies one.
	Unit string

	bags bags.Accessor
}

// Field reads a key from the peer bag. The second return is false when the
// key is absent or the relation is no longer readable.
func (e Event) Field(key string) (string, bool) {
	view, err := e.bags.Get(e.Relation, bags.SidePeer)
	if err != nil {
		return "", false
	}
	value, ok := view[key]
	return value, ok
}

// Database returns the database name that was requested.
func (e Event) Database() (string, bool) {
	return e.Field("database")
}

// Topic returns the topic that was requested.
func (e Event) Topic() (string, bool) {
	return e.Field("topic")
}

// Chroot returns the chroot path that was requested.
func (e Event) Chroot() (string, bool) {
	return e.Field("chroot")
}

// ExtraUserRoles returns the extra user roles that accompanied the request.
func (e Event) ExtraUserRoles() (string, bool) {
	return e.Field("extra-user-roles")
}
