package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Client represents a trading counterparty. Address and tax id are used
// as fallbacks when a proforma carries no override for them. Balance is
// a manually maintained override figure, independent of the balances
// computed from proforma payments.
type Client struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	CompanyName *string        `gorm:"size:255" json:"company_name,omitempty"`
	Email       string         `gorm:"size:255;not null" json:"email"`
	Address     *string        `gorm:"type:text" json:"address,omitempty"`
	TaxID       *string        `gorm:"size:100" json:"tax_id,omitempty"`
	Company     enum.Company   `gorm:"size:50;not null" json:"company"`
	Balance     *float64       `gorm:"type:decimal(15,2)" json:"balance,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	Proformas []Proforma `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
