package databag

import (
	"context"

	"github.com/agentstation/databag/pkg/bags"
)

// TLS is an optional capability composed into flavors whose backing resource
// can serve TLS. It publishes the enablement flag and CA material through
// the same single-writer guard as every other accessor.
type TLS struct {
	p *Provider
}

// SetTLS publishes whether TLS is enabled for the relation. The flag is
// written as "True" or "False", the form peers expect.
func (t TLS) SetTLS(ctx context.Context, id bags.RelationID, enabled bool) error {
	return t.p.update(ctx, id, bags.View{"tls": formatBool(enabled)})
}

// SetTLSCA publishes the TLS certificate authority for the relation.
func (t TLS) SetTLSCA(ctx context.Context, id bags.RelationID, ca string) error {
	return t.p.update(ctx, id, bags.View{"tls_ca": ca})
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
