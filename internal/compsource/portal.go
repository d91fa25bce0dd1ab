package compsource

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
	"github.com/ajharbinger/comps-mao-pipeline/pkg/config"
)

// PortalSource fetches recently sold listings from a configured portal
// search endpoint. The endpoint template must contain %s, which receives
// the URL-escaped subject address.
type PortalSource struct {
	client   *Client
	parser   *Parser
	endpoint string
}

// NewPortalSource creates a live comp source against cfg.PortalEndpoint
func NewPortalSource(cfg *config.Config) (*PortalSource, error) {
	if !cfg.HasPortalEndpoint() {
		return nil, fmt.Errorf("portal endpoint is required")
	}
	if !strings.Contains(cfg.PortalEndpoint, "%s") {
		return nil, fmt.Errorf("portal endpoint must contain a %%s address placeholder")
	}
	return &PortalSource{
		client:   NewClient(2, cfg.PortalUserAgent), // 2 req/s
		parser:   NewParser(),
		endpoint: cfg.PortalEndpoint,
	}, nil
}

// Kind identifies the source in health output
func (s *PortalSource) Kind() string { return "portal" }

// FetchComparables queries the portal for sold listings near the address
func (s *PortalSource) FetchComparables(ctx context.Context, address string) ([]models.Comparable, error) {
	searchURL := fmt.Sprintf(s.endpoint, url.QueryEscape(address))
	doc, err := s.client.Get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("portal fetch for %q: %w", address, err)
	}
	return s.parser.ParseSoldListings(doc), nil
}

// NewService returns the portal source when one is configured and the
// fixture source otherwise, so the flow deploys cleanly without portal
// access.
func NewService(cfg *config.Config) (Source, error) {
	if cfg.HasPortalEndpoint() {
		return NewPortalSource(cfg)
	}
	return NewFixtureSource(), nil
}
