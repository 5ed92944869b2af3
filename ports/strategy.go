package ports

import (
	"context"

	"switchscope/domain/core"
)

// Strategy is an externally generated next-best-action recommendation. The
// core never produces or alters these; it only controls their visibility.
type Strategy struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"` // opaque narrative text
	Priority    int    `json:"priority"`
}

// StrategyProvider fetches the NBA payload for an HCP. Meaningful only once
// the strategy gate is open; callers must check the gate first.
type StrategyProvider interface {
	Strategies(ctx context.Context, id core.HCPID) ([]Strategy, error)
}
