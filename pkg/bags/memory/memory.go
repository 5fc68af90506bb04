// Package memory provides an in-memory bag store for tests and tooling.
package memory

import (
	"sort"
	"sync"

	"github.com/agentstation/databag/pkg/bags"
	"github.com/agentstation/databag/pkg/errors"
)

// Store is an in-memory implementation of bags.Accessor and bags.Enumerator.
// It holds both sides of every relation, so tests and the replay tool can
// play the requirer role by writing to the peer side directly.
type Store struct {
	mu        sync.RWMutex
	relations map[bags.RelationID]map[bags.Side]bags.View
}

// Option is a function that configures a Store.
type Option func(*Store) error

// WithRelations creates the given relations up front.
func WithRelations(ids ...bags.RelationID) Option {
	return func(s *Store) error {
		for _, id := range ids {
			s.add(id)
		}
		return nil
	}
}

// New creates an empty in-memory bag store.
func New(opts ...Option) (*Store, error) {
	s := &Store{
		relations: make(map[bags.RelationID]map[bags.Side]bags.View),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add creates a relation with empty bags on both sides. Adding an existing
// relation is a no-op.
func (s *Store) Add(id bags.RelationID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(id)
}

func (s *Store) add(id bags.RelationID) {
	if _, ok := s.relations[id]; ok {
		return
	}
	s.relations[id] = map[bags.Side]bags.View{
		bags.SideLocal: {},
		bags.SidePeer:  {},
	}
}

// Remove tears down a relation and both of its bags.
func (s *Store) Remove(id bags.RelationID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.relations, id)
}

// Get returns a copy of the addressed bag's content.
func (s *Store) Get(id bags.RelationID, side bags.Side) (bags.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sides, ok := s.relations[id]
	if !ok {
		return nil, errors.NewNotFoundError("relation", id.String())
	}
	return sides[side].Clone(), nil
}

// Update merges fields into the addressed bag.
func (s *Store) Update(id bags.RelationID, side bags.Side, fields bags.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sides, ok := s.relations[id]
	if !ok {
		return errors.NewNotFoundError("relation", id.String())
	}
	for k, v := range fields {
		sides[side][k] = v
	}
	return nil
}

// Delete removes keys from the addressed bag, simulating a peer retracting
// data. Unknown keys are ignored.
func (s *Store) Delete(id bags.RelationID, side bags.Side, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sides, ok := s.relations[id]
	if !ok {
		return errors.NewNotFoundError("relation", id.String())
	}
	for _, k := range keys {
		delete(sides[side], k)
	}
	return nil
}

// Relations returns the ids of all current relations in ascending order.
func (s *Store) Relations() []bags.RelationID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]bags.RelationID, 0, len(s.relations))
	for id := range s.relations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
