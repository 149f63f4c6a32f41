package ticket

import "context"

// Filter narrows ticket listings. Zero values mean "any".
type Filter struct {
	Status *Status
	// Closed matches any closed status, whoever closed the ticket.
	Closed  bool
	UserID  *int64
	GuildID *int64
	Limit   int
}

// Repository persists tickets. Listings are ordered newest first.
// Update, Close and Delete return false when no ticket has the given id.
type Repository interface {
	Create(ctx context.Context, p NewTicketParams) (string, error)
	// Save inserts a fully built ticket and returns false if the id is taken.
	Save(ctx context.Context, t *Ticket) (bool, error)
	Get(ctx context.Context, id string) (*Ticket, error)
	Update(ctx context.Context, id string, patch Patch) (bool, error)
	Close(ctx context.Context, id string, p CloseParams) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Ticket, error)
	GetUserTickets(ctx context.Context, userID int64, status *Status) ([]*Ticket, error)
	GetGuildTickets(ctx context.Context, guildID int64, status *Status) ([]*Ticket, error)
	GetAllTickets(ctx context.Context, status *Status) ([]*Ticket, error)
	GetOpenTickets(ctx context.Context) ([]*Ticket, error)
	// CleanupOld deletes closed tickets created more than daysOld days ago
	// and returns how many were removed.
	CleanupOld(ctx context.Context, daysOld int) (int, error)
}
