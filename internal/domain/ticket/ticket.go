// Package ticket models support tickets and their open/closed lifecycle.
package ticket

import (
	"fmt"
	"strings"
	"time"
)

type Ticket struct {
	id                string
	userID            int64
	userName          string
	guildID           int64
	guildName         string
	message           string
	status            Status
	createdAt         time.Time
	adminResponse     *string
	adminResponder    *string
	responseTimestamp *time.Time
	closedBy          *string
	closedTimestamp   *time.Time
}

// NewTicketParams describes a ticket as submitted by a user.
type NewTicketParams struct {
	UserID    int64
	UserName  string
	GuildID   int64
	GuildName string
	Message   string
}

// CloseParams describes how a ticket is closed. Response is recorded when
// non-empty; Responder also stamps the response time.
type CloseParams struct {
	ClosedBy  string
	Response  string
	Responder string
}

// NewTicket creates an open ticket.
func NewTicket(id string, p NewTicketParams, now time.Time) (*Ticket, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidTicketID
	}

	return &Ticket{
		id:        id,
		userID:    p.UserID,
		userName:  p.UserName,
		guildID:   p.GuildID,
		guildName: p.GuildName,
		message:   p.Message,
		status:    StatusOpen,
		createdAt: now.UTC(),
	}, nil
}

// ReconstructTicket rebuilds a ticket from storage. Statuses written by older
// releases are accepted as long as they are open or start with "closed".
func ReconstructTicket(
	id string,
	userID int64,
	userName string,
	guildID int64,
	guildName string,
	message string,
	status Status,
	createdAt time.Time,
	adminResponse *string,
	adminResponder *string,
	responseTimestamp *time.Time,
	closedBy *string,
	closedTimestamp *time.Time,
) (*Ticket, error) {
	if id == "" {
		return nil, ErrInvalidTicketID
	}
	if !status.IsOpen() && !status.IsClosed() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return &Ticket{
		id:                id,
		userID:            userID,
		userName:          userName,
		guildID:           guildID,
		guildName:         guildName,
		message:           message,
		status:            status,
		createdAt:         createdAt,
		adminResponse:     adminResponse,
		adminResponder:    adminResponder,
		responseTimestamp: responseTimestamp,
		closedBy:          closedBy,
		closedTimestamp:   closedTimestamp,
	}, nil
}

func (t *Ticket) ID() string {
	return t.id
}

func (t *Ticket) UserID() int64 {
	return t.userID
}

func (t *Ticket) UserName() string {
	return t.userName
}

func (t *Ticket) GuildID() int64 {
	return t.guildID
}

func (t *Ticket) GuildName() string {
	return t.guildName
}

func (t *Ticket) Message() string {
	return t.message
}

func (t *Ticket) Status() Status {
	return t.status
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) AdminResponse() *string {
	return t.adminResponse
}

func (t *Ticket) AdminResponder() *string {
	return t.adminResponder
}

func (t *Ticket) ResponseTimestamp() *time.Time {
	return t.responseTimestamp
}

func (t *Ticket) ClosedBy() *string {
	return t.closedBy
}

func (t *Ticket) ClosedTimestamp() *time.Time {
	return t.closedTimestamp
}

func (t *Ticket) IsOpen() bool {
	return t.status.IsOpen()
}

func (t *Ticket) IsClosed() bool {
	return t.status.IsClosed()
}

// Close moves an open ticket to closed_by_<actor>. Closed is terminal.
func (t *Ticket) Close(p CloseParams, now time.Time) error {
	if t.IsClosed() {
		return ErrTicketClosed
	}

	actor := p.ClosedBy
	if actor == "" {
		actor = DefaultCloser
	}
	status := ClosedBy(actor)
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	now = now.UTC()
	t.status = status
	t.closedBy = &actor
	t.closedTimestamp = &now

	if p.Response != "" {
		response := p.Response
		t.adminResponse = &response
	}
	if p.Responder != "" {
		responder := p.Responder
		t.adminResponder = &responder
		t.responseTimestamp = &now
	}

	return nil
}
