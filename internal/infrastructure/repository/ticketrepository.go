package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ufobot/ufobot/internal/domain/ticket"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/mappers"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/models"
	"github.com/ufobot/ufobot/internal/shared/biztime"
	"github.com/ufobot/ufobot/internal/shared/db"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

// closeColumns are the columns Close may write.
var closeColumns = []string{
	"status",
	"closed_by",
	"closed_timestamp",
	"admin_response",
	"admin_responder",
	"response_timestamp",
}

// TicketRepository implements ticket.Repository.
type TicketRepository struct {
	guard  *db.Guard
	logger logger.Interface
	mapper mappers.TicketMapper
	now    Clock
	newID  IDGenerator
}

var _ ticket.Repository = (*TicketRepository)(nil)

func NewTicketRepository(guard *db.Guard, log logger.Interface, opts ...Option) *TicketRepository {
	o := buildOptions(opts)
	return &TicketRepository{
		guard:  guard,
		logger: log,
		mapper: mappers.NewTicketMapper(),
		now:    o.now,
		newID:  o.newID,
	}
}

// Create stores a new open ticket and returns its generated id. A clash with
// an existing id is reported as ErrTicketIDCollision and is not retried.
func (r *TicketRepository) Create(ctx context.Context, p ticket.NewTicketParams) (string, error) {
	ticketID, err := r.newID()
	if err != nil {
		return "", err
	}

	t, err := ticket.NewTicket(ticketID, p, r.now())
	if err != nil {
		return "", err
	}

	ok, err := r.Save(ctx, t)
	if err != nil {
		return "", err
	}
	if !ok {
		r.logger.Warnw("ticket id collision", "ticket_id", ticketID)
		return "", ticket.ErrTicketIDCollision
	}

	r.logger.Infow("ticket created", "ticket_id", ticketID, "user_id", p.UserID, "guild_id", p.GuildID)
	return ticketID, nil
}

// Save inserts t as-is, returning false if its id is already taken.
func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) (bool, error) {
	model := r.mapper.ToModel(t)
	inserted := true

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			if db.IsUniqueViolation(err) {
				inserted = false
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to save ticket", "ticket_id", t.ID(), "error", err)
		return false, fmt.Errorf("failed to save ticket: %w", err)
	}

	return inserted, nil
}

func (r *TicketRepository) Get(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	var model models.TicketModel

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Where("ticket_id = ?", ticketID).Take(&model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		r.logger.Errorw("failed to get ticket", "ticket_id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// Update applies patch to the ticket. It returns false when the ticket does
// not exist and ErrEmptyPatch when patch sets nothing.
func (r *TicketRepository) Update(ctx context.Context, ticketID string, patch ticket.Patch) (bool, error) {
	if patch.IsEmpty() {
		return false, ticket.ErrEmptyPatch
	}

	found := true
	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		t, err := r.load(tx, ticketID)
		if err != nil {
			if errors.Is(err, ticket.ErrTicketNotFound) {
				found = false
				return nil
			}
			return err
		}

		if err := patch.Apply(t); err != nil {
			return err
		}

		return tx.Model(&models.TicketModel{}).
			Where("ticket_id = ?", ticketID).
			Updates(r.mapper.ToUpdateMap(patch)).Error
	})
	if err != nil {
		if isTicketRuleError(err) {
			return false, err
		}
		r.logger.Errorw("failed to update ticket", "ticket_id", ticketID, "error", err)
		return false, fmt.Errorf("failed to update ticket: %w", err)
	}

	return found, nil
}

// Close moves the ticket to closed_by_<actor>. It returns false when the
// ticket does not exist and ErrTicketClosed when it is already closed.
func (r *TicketRepository) Close(ctx context.Context, ticketID string, p ticket.CloseParams) (bool, error) {
	now := r.now()
	found := true

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		t, err := r.load(tx, ticketID)
		if err != nil {
			if errors.Is(err, ticket.ErrTicketNotFound) {
				found = false
				return nil
			}
			return err
		}

		if err := t.Close(p, now); err != nil {
			return err
		}

		return tx.Model(&models.TicketModel{}).
			Where("ticket_id = ?", ticketID).
			Select(closeColumns).
			Updates(r.mapper.ToModel(t)).Error
	})
	if err != nil {
		if isTicketRuleError(err) {
			return false, err
		}
		r.logger.Errorw("failed to close ticket", "ticket_id", ticketID, "error", err)
		return false, fmt.Errorf("failed to close ticket: %w", err)
	}

	if found {
		r.logger.Infow("ticket closed", "ticket_id", ticketID, "closed_by", p.ClosedBy)
	}
	return found, nil
}

func (r *TicketRepository) Delete(ctx context.Context, ticketID string) (bool, error) {
	var removed int64

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		result := tx.Where("ticket_id = ?", ticketID).Delete(&models.TicketModel{})
		removed = result.RowsAffected
		return result.Error
	})
	if err != nil {
		r.logger.Errorw("failed to delete ticket", "ticket_id", ticketID, "error", err)
		return false, fmt.Errorf("failed to delete ticket: %w", err)
	}

	return removed > 0, nil
}

// List returns tickets matching filter, newest first. Ties on created_at
// are broken by ticket id so the order is stable.
func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	var modelList []*models.TicketModel

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		query := tx.Model(&models.TicketModel{})

		if filter.Status != nil {
			query = query.Where("status = ?", filter.Status.String())
		}
		if filter.Closed {
			query = query.Where("status LIKE ?", ticket.ClosedPrefix+"%")
		}
		if filter.UserID != nil {
			query = query.Where("user_id = ?", *filter.UserID)
		}
		if filter.GuildID != nil {
			query = query.Where("guild_id = ?", *filter.GuildID)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}

		return query.Order("created_at DESC").Order("ticket_id ASC").Find(&modelList).Error
	})
	if err != nil {
		r.logger.Errorw("failed to list tickets", "error", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.mapper.ToDomainList(modelList)
	if err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []*ticket.Ticket{}
	}
	return tickets, nil
}

func (r *TicketRepository) GetUserTickets(ctx context.Context, userID int64, status *ticket.Status) ([]*ticket.Ticket, error) {
	return r.List(ctx, ticket.Filter{UserID: &userID, Status: status})
}

func (r *TicketRepository) GetGuildTickets(ctx context.Context, guildID int64, status *ticket.Status) ([]*ticket.Ticket, error) {
	return r.List(ctx, ticket.Filter{GuildID: &guildID, Status: status})
}

func (r *TicketRepository) GetAllTickets(ctx context.Context, status *ticket.Status) ([]*ticket.Ticket, error) {
	return r.List(ctx, ticket.Filter{Status: status})
}

func (r *TicketRepository) GetOpenTickets(ctx context.Context) ([]*ticket.Ticket, error) {
	open := ticket.StatusOpen
	return r.GetAllTickets(ctx, &open)
}

// CleanupOld deletes closed tickets whose created_at is more than daysOld
// days in the past. Open tickets are never touched. Ages are compared in Go
// because rows imported from older releases store timestamps in more than
// one text format.
func (r *TicketRepository) CleanupOld(ctx context.Context, daysOld int) (int, error) {
	if daysOld < 0 {
		return 0, ticket.ErrInvalidRetention
	}

	cutoff := biztime.DaysBefore(r.now(), daysOld)
	deleted := 0

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		var candidates []models.TicketModel
		if err := tx.Select("ticket_id", "status", "created_at").
			Where("status LIKE ?", "closed%").
			Find(&candidates).Error; err != nil {
			return err
		}

		for _, c := range candidates {
			if !strings.HasPrefix(c.Status, "closed") || !c.CreatedAt.Before(cutoff) {
				continue
			}
			result := tx.Where("ticket_id = ?", c.TicketID).Delete(&models.TicketModel{})
			if result.Error != nil {
				return result.Error
			}
			deleted += int(result.RowsAffected)
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to clean up tickets", "days_old", daysOld, "error", err)
		return 0, fmt.Errorf("failed to clean up tickets: %w", err)
	}

	r.logger.Infow("ticket cleanup finished", "days_old", daysOld, "deleted", deleted)
	return deleted, nil
}

func (r *TicketRepository) load(tx *gorm.DB, ticketID string) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := tx.Where("ticket_id = ?", ticketID).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, err
	}
	return r.mapper.ToDomain(&model)
}

func isTicketRuleError(err error) bool {
	return errors.Is(err, ticket.ErrTicketClosed) ||
		errors.Is(err, ticket.ErrInvalidStatus) ||
		errors.Is(err, ticket.ErrInvalidTransition) ||
		errors.Is(err, ticket.ErrEmptyPatch)
}
