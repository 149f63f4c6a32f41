package ticket

import "time"

// Patch lists the ticket fields an update may touch. Nil fields are left
// untouched; there is no way to clear an optional field back to null.
type Patch struct {
	UserID            *int64
	UserName          *string
	GuildID           *int64
	GuildName         *string
	Message           *string
	Status            *Status
	AdminResponse     *string
	AdminResponder    *string
	ResponseTimestamp *time.Time
	ClosedBy          *string
	ClosedTimestamp   *time.Time
	CreatedAt         *time.Time
}

func (p Patch) IsEmpty() bool {
	return p.UserID == nil &&
		p.UserName == nil &&
		p.GuildID == nil &&
		p.GuildName == nil &&
		p.Message == nil &&
		p.Status == nil &&
		p.AdminResponse == nil &&
		p.AdminResponder == nil &&
		p.ResponseTimestamp == nil &&
		p.ClosedBy == nil &&
		p.ClosedTimestamp == nil &&
		p.CreatedAt == nil
}

// Validate checks p against the current state of t.
func (p Patch) Validate(t *Ticket) error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	if p.Status == nil {
		return nil
	}
	if !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	if t.IsClosed() && *p.Status != t.status {
		return ErrInvalidTransition
	}
	return nil
}

// Apply validates p and copies its fields onto t.
func (p Patch) Apply(t *Ticket) error {
	if err := p.Validate(t); err != nil {
		return err
	}

	if p.UserID != nil {
		t.userID = *p.UserID
	}
	if p.UserName != nil {
		t.userName = *p.UserName
	}
	if p.GuildID != nil {
		t.guildID = *p.GuildID
	}
	if p.GuildName != nil {
		t.guildName = *p.GuildName
	}
	if p.Message != nil {
		t.message = *p.Message
	}
	if p.Status != nil {
		t.status = *p.Status
	}
	if p.AdminResponse != nil {
		v := *p.AdminResponse
		t.adminResponse = &v
	}
	if p.AdminResponder != nil {
		v := *p.AdminResponder
		t.adminResponder = &v
	}
	if p.ResponseTimestamp != nil {
		v := p.ResponseTimestamp.UTC()
		t.responseTimestamp = &v
	}
	if p.ClosedBy != nil {
		v := *p.ClosedBy
		t.closedBy = &v
	}
	if p.ClosedTimestamp != nil {
		v := p.ClosedTimestamp.UTC()
		t.closedTimestamp = &v
	}
	if p.CreatedAt != nil {
		t.createdAt = p.CreatedAt.UTC()
	}
	return nil
}
