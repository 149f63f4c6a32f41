// Package stats exposes read-only row counts for observers.
package stats

import "context"

type Counts struct {
	GuildConfigs   int64 `json:"guild_configs"`
	Settings       int64 `json:"settings"`
	ReactionRows   int64 `json:"reaction_rows"`
	TotalReactions int64 `json:"total_reactions"`
	Admins         int64 `json:"admins"`
	Bans           int64 `json:"bans"`
	Tickets        int64 `json:"tickets"`
	OpenTickets    int64 `json:"open_tickets"`
}

// ClosedTickets is derived from the totals.
func (c *Counts) ClosedTickets() int64 {
	return c.Tickets - c.OpenTickets
}

// Reader never writes.
type Reader interface {
	Counts(ctx context.Context) (*Counts, error)
}
