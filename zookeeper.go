package databag

import (
	"github.com/agentstation/databag/pkg/bags"
	"github.com/agentstation/databag/pkg/guard"
)

// Zookeeper is the provider side of a ZooKeeper relation. The peer requests
// a chroot znode by writing the "chroot" key into its bag.
type Zookeeper struct {
	*Provider
	TLS
}

// NewZookeeper creates a zookeeper-flavor provider.
func NewZookeeper(accessor bags.Accessor, oracle guard.Oracle, opts ...Option) (*Zookeeper, error) {
	p, err := NewProvider("zookeeper", accessor, oracle, []Trigger{
		{Key: "chroot", Kind: EventZNodeCreated},
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Zookeeper{Provider: p, TLS: TLS{p}}, nil
}

// OnZNodeCreated registers a callback for when a peer requests a chroot on
// this relation.
func (z *Zookeeper) OnZNodeCreated(fn Hook) {
	z.On(EventZNodeCreated, fn)
}
