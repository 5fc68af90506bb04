package databag

import (
	"github.com/agentstation/databag/pkg/bags"
	"github.com/agentstation/databag/pkg/guard"
)

// Kafka is the provider side of a Kafka relation. The peer requests a topic
// by writing the "topic" key into its bag.
type Kafka struct {
	*Provider
	TLS
}

// NewKafka creates a kafka-flavor provider.
func NewKafka(accessor bags.Accessor, oracle guard.Oracle, opts ...Option) (*Kafka, error) {
	p, err := NewProvider("kafka", accessor, oracle, []Trigger{
		{Key: "topic", Kind: EventTopicCreated},
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Kafka{Provider: p, TLS: TLS{p}}, nil
}

// OnTopicCreated registers a callback for when a peer requests a topic on
// this relation.
func (k *Kafka) OnTopicCreated(fn Hook) {
	k.On(EventTopicCreated, fn)
}
