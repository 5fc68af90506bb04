package databag

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/databag/pkg/bags"
)

// Option is a function that configures a Provider.
type Option func(*config) error

// config holds provider construction settings.
type config struct {
	logger    *zerolog.Logger
	relations bags.Enumerator
}

// WithLogger configures the logger used for notifications handled by this
// provider. Defaults to the logger carried by the caller's context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithRelations configures the enumerator used by FetchData to discover the
// relations currently established for this provider.
func WithRelations(relations bags.Enumerator) Option {
	return func(c *config) error {
		c.relations = relations
		return nil
	}
}
