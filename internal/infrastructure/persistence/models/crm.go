package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crm/backend/internal/domain/crm"
)

// OpportunityModel is the persistence model for the Opportunity aggregate.
type OpportunityModel struct {
	TenantAggregateModel
	Name              string                `gorm:"type:varchar(200);not null"`
	SalespersonID     *uuid.UUID            `gorm:"type:uuid;index"`
	LeadSource        string                `gorm:"type:varchar(100);index"`
	Revenue           decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	CashCollected     decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Status            crm.OpportunityStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	ProposalStatus    crm.ProposalStatus    `gorm:"type:varchar(20);not null;default:'none'"`
	StageID           *uuid.UUID            `gorm:"type:uuid;index"`
	LastInteractionAt *time.Time
	Calls             []CallModel `gorm:"foreignKey:OpportunityID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OpportunityModel) TableName() string {
	return "opportunities"
}

// ToDomain converts the persistence model to a domain Opportunity.
func (m *OpportunityModel) ToDomain() *crm.Opportunity {
	calls := make([]crm.Call, len(m.Calls))
	for i := range m.Calls {
		calls[i] = *m.Calls[i].ToDomain()
	}
	return &crm.Opportunity{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		SalespersonID:       m.SalespersonID,
		LeadSource:          m.LeadSource,
		Revenue:             m.Revenue,
		CashCollected:       m.CashCollected,
		Status:              m.Status,
		ProposalStatus:      m.ProposalStatus,
		StageID:             m.StageID,
		LastInteractionAt:   m.LastInteractionAt,
		Calls:               calls,
	}
}

// FromDomain populates the persistence model from a domain Opportunity.
// Calls are persisted through their own repository and are not written here.
func (m *OpportunityModel) FromDomain(o *crm.Opportunity) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.Name = o.Name
	m.SalespersonID = o.SalespersonID
	m.LeadSource = o.LeadSource
	m.Revenue = o.Revenue
	m.CashCollected = o.CashCollected
	m.Status = o.Status
	m.ProposalStatus = o.ProposalStatus
	m.StageID = o.StageID
	m.LastInteractionAt = o.LastInteractionAt
}

// OpportunityModelFromDomain creates a persistence model from a domain Opportunity.
func OpportunityModelFromDomain(o *crm.Opportunity) *OpportunityModel {
	m := &OpportunityModel{}
	m.FromDomain(o)
	return m
}

// CallModel is the persistence model for the Call aggregate.
type CallModel struct {
	TenantAggregateModel
	OpportunityID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Type          crm.CallType `gorm:"type:varchar(20);not null"`
	Number        int          `gorm:"not null"`
	Date          time.Time    `gorm:"not null;index"`
	Duration      int          `gorm:"not null;default:0"`
	Attended      *bool
	Link          *string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CallModel) TableName() string {
	return "calls"
}

// ToDomain converts the persistence model to a domain Call.
func (m *CallModel) ToDomain() *crm.Call {
	return &crm.Call{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		OpportunityID:       m.OpportunityID,
		Type:                m.Type,
		Number:              m.Number,
		Date:                m.Date,
		Duration:            m.Duration,
		Attended:            m.Attended,
		Link:                m.Link,
	}
}

// FromDomain populates the persistence model from a domain Call.
func (m *CallModel) FromDomain(c *crm.Call) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.OpportunityID = c.OpportunityID
	m.Type = c.Type
	m.Number = c.Number
	m.Date = c.Date
	m.Duration = c.Duration
	m.Attended = c.Attended
	m.Link = c.Link
}

// CallModelFromDomain creates a persistence model from a domain Call.
func CallModelFromDomain(c *crm.Call) *CallModel {
	m := &CallModel{}
	m.FromDomain(c)
	return m
}

// NoteModel is the persistence model for the Note aggregate.
type NoteModel struct {
	TenantAggregateModel
	OpportunityID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"type:varchar(200);not null"`
	Body          string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (NoteModel) TableName() string {
	return "notes"
}

// ToDomain converts the persistence model to a domain Note.
func (m *NoteModel) ToDomain() *crm.Note {
	return &crm.Note{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		OpportunityID:       m.OpportunityID,
		Title:               m.Title,
		Body:                m.Body,
	}
}

// NoteModelFromDomain creates a persistence model from a domain Note.
func NoteModelFromDomain(n *crm.Note) *NoteModel {
	m := &NoteModel{}
	m.FromDomainTenantAggregateRoot(n.TenantAggregateRoot)
	m.OpportunityID = n.OpportunityID
	m.Title = n.Title
	m.Body = n.Body
	return m
}

// ContactModel is the persistence model for the Contact aggregate.
type ContactModel struct {
	TenantAggregateModel
	OpportunityID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(200);not null"`
	Position      string    `gorm:"type:varchar(100)"`
	Email         string    `gorm:"type:varchar(200)"`
	Phone         string    `gorm:"type:varchar(50)"`
	LinkedIn      string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact.
func (m *ContactModel) ToDomain() *crm.Contact {
	return &crm.Contact{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		OpportunityID:       m.OpportunityID,
		Name:                m.Name,
		Position:            m.Position,
		Email:               m.Email,
		Phone:               m.Phone,
		LinkedIn:            m.LinkedIn,
	}
}

// ContactModelFromDomain creates a persistence model from a domain Contact.
func ContactModelFromDomain(c *crm.Contact) *ContactModel {
	m := &ContactModel{}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.OpportunityID = c.OpportunityID
	m.Name = c.Name
	m.Position = c.Position
	m.Email = c.Email
	m.Phone = c.Phone
	m.LinkedIn = c.LinkedIn
	return m
}

// AttachmentModel is the persistence model for the Attachment aggregate.
type AttachmentModel struct {
	TenantAggregateModel
	OpportunityID uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName      string    `gorm:"type:varchar(255);not null"`
	ContentType   string    `gorm:"type:varchar(100)"`
	Size          int64     `gorm:"not null;default:0"`
	StorageKey    string    `gorm:"type:varchar(500);not null"`
}

// TableName returns the table name for GORM
func (AttachmentModel) TableName() string {
	return "attachments"
}

// ToDomain converts the persistence model to a domain Attachment.
func (m *AttachmentModel) ToDomain() *crm.Attachment {
	return &crm.Attachment{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		OpportunityID:       m.OpportunityID,
		FileName:            m.FileName,
		ContentType:         m.ContentType,
		Size:                m.Size,
		StorageKey:          m.StorageKey,
	}
}

// AttachmentModelFromDomain creates a persistence model from a domain Attachment.
func AttachmentModelFromDomain(a *crm.Attachment) *AttachmentModel {
	m := &AttachmentModel{}
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.OpportunityID = a.OpportunityID
	m.FileName = a.FileName
	m.ContentType = a.ContentType
	m.Size = a.Size
	m.StorageKey = a.StorageKey
	return m
}
