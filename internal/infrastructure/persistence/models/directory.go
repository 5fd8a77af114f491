package models

import (
	"github.com/crm/backend/internal/domain/directory"
)

// SalespersonModel is the persistence model for the Salesperson aggregate.
type SalespersonModel struct {
	TenantAggregateModel
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (SalespersonModel) TableName() string {
	return "salespeople"
}

// ToDomain converts the persistence model to a domain Salesperson.
func (m *SalespersonModel) ToDomain() *directory.Salesperson {
	return &directory.Salesperson{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Email:               m.Email,
	}
}

// SalespersonModelFromDomain creates a persistence model from a domain Salesperson.
func SalespersonModelFromDomain(s *directory.Salesperson) *SalespersonModel {
	m := &SalespersonModel{}
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.Name = s.Name
	m.Email = s.Email
	return m
}

// LeadSourceModel is the persistence model for the LeadSource aggregate.
type LeadSourceModel struct {
	TenantAggregateModel
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:idx_lead_source_tenant_name,priority:2"`
}

// TableName returns the table name for GORM
func (LeadSourceModel) TableName() string {
	return "lead_sources"
}

// ToDomain converts the persistence model to a domain LeadSource.
func (m *LeadSourceModel) ToDomain() *directory.LeadSource {
	return &directory.LeadSource{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
	}
}

// LeadSourceModelFromDomain creates a persistence model from a domain LeadSource.
func LeadSourceModelFromDomain(l *directory.LeadSource) *LeadSourceModel {
	m := &LeadSourceModel{}
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	m.Name = l.Name
	return m
}
