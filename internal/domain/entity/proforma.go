package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
	"gorm.io/gorm"
)

// EditableInvoiceFields is a sparse overlay of operator-entered invoice
// values. Present fields take precedence over values derived from the
// base proforma when projecting an invoice.
type EditableInvoiceFields struct {
	InvoiceNumber string `json:"invoice_number,omitempty"`
	IssuedAtDate  string `json:"issued_at_date,omitempty"`
	PaymentTerms  string `json:"payment_terms,omitempty"`
}

// EditableBillOfLadingFields is the operator overlay for the bill of
// lading document, including the storage path of an uploaded file.
type EditableBillOfLadingFields struct {
	BLNo                string `json:"bl_no,omitempty"`
	StoragePath         string `json:"storage_path,omitempty"`
	OceanVesselVoyNo    string `json:"ocean_vessel_voy_no,omitempty"`
	LadenOnBoardDate    string `json:"laden_on_board_date,omitempty"`
	PlaceAndDateOfIssue string `json:"place_and_date_of_issue,omitempty"`
	FreightPayableAt    string `json:"freight_payable_at,omitempty"`
	NumOriginalBL       string `json:"num_original_bl,omitempty"`
}

// EditedContainer is an operator-entered container row on the packing
// list overlay, replacing the synthesized per-item containers.
type EditedContainer struct {
	ContainerNumber string  `json:"container_number"`
	NetWeight       float64 `json:"net_weight"`
	GrossWeight     float64 `json:"gross_weight"`
	TotalVolumeM3   float64 `json:"total_volume_m3"`
}

// EditablePackingListFields is the operator overlay for the packing list.
type EditablePackingListFields struct {
	IssuedAtPlace    string            `json:"issued_at_place,omitempty"`
	ProductSummary   string            `json:"product_summary,omitempty"`
	PackingListNotes string            `json:"packing_list_notes,omitempty"`
	EditedContainers []EditedContainer `json:"edited_containers,omitempty"`
}

// Proforma is the canonical trade-document record. Invoices and packing
// lists are never stored: they are projected from this record plus its
// editable overlays at read time.
type Proforma struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID       *uuid.UUID          `gorm:"type:uuid;index" json:"client_id,omitempty"`
	ProformaNumber string              `gorm:"size:100;uniqueIndex;not null" json:"proforma_number"`
	Company        enum.Company        `gorm:"size:50;not null;index" json:"company"`
	Status         enum.ProformaStatus `gorm:"size:20;not null;default:'DRAFT'" json:"status"`

	// Party data. The client fields are snapshots taken at creation time;
	// the optional pointers override the linked client when present.
	ClientName    string  `gorm:"size:255" json:"client_name"`
	ClientAddress *string `gorm:"type:text" json:"client_address,omitempty"`
	ClientTaxID   *string `gorm:"size:100" json:"client_tax_id,omitempty"`
	ShipToName    *string `gorm:"size:255" json:"ship_to_name,omitempty"`
	ShipToAddress *string `gorm:"type:text" json:"ship_to_address,omitempty"`
	ShipToTaxID   *string `gorm:"size:100" json:"ship_to_tax_id,omitempty"`

	// Logistics metadata.
	PortAtOrigin     *string `gorm:"size:255" json:"port_at_origin,omitempty"`
	PortOfArrival    *string `gorm:"size:255" json:"port_of_arrival,omitempty"`
	FinalDestination *string `gorm:"size:255" json:"final_destination,omitempty"`
	Reference        *string `gorm:"size:255" json:"reference,omitempty"`
	PaymentTerms     *string `gorm:"type:text" json:"payment_terms,omitempty"`
	Delivery         *string `gorm:"size:255" json:"delivery,omitempty"`
	Vessel           *string `gorm:"size:255" json:"vessel,omitempty"`
	Containers       *string `gorm:"size:255" json:"containers,omitempty"`
	ContainerNo      *string `gorm:"size:255" json:"container_no,omitempty"`

	Currency   string  `gorm:"size:10;not null;default:'USD'" json:"currency"`
	SubTotal   float64 `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	TaxAmount  float64 `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	GrandTotal float64 `gorm:"type:decimal(15,2);default:0" json:"grand_total"`

	Notes                 *string    `gorm:"type:text" json:"notes,omitempty"`
	CustomerSignatoryName *string    `gorm:"size:255" json:"customer_signatory_name,omitempty"`
	IssuedDate            time.Time  `gorm:"type:date;not null" json:"issued_date"`
	ExpiryDate            *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`

	UploadedBillOfLadingPath *string `gorm:"size:500" json:"uploaded_bill_of_lading_path,omitempty"`

	InvoiceFields      *EditableInvoiceFields      `gorm:"serializer:json" json:"invoice_fields,omitempty"`
	BillOfLadingFields *EditableBillOfLadingFields `gorm:"serializer:json" json:"bill_of_lading_fields,omitempty"`
	PackingListFields  *EditablePackingListFields  `gorm:"serializer:json" json:"packing_list_fields,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User           `gorm:"foreignKey:UserID" json:"-"`
	Client   *Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items    []ProformaItem `gorm:"foreignKey:ProformaID" json:"items,omitempty"`
	Payments []Payment      `gorm:"foreignKey:ProformaID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new proforma
func (p *Proforma) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Proforma model
func (Proforma) TableName() string {
	return "proformas"
}

// AmountPaid sums the recorded payments against this proforma.
func (p *Proforma) AmountPaid() float64 {
	var paid float64
	for _, payment := range p.Payments {
		paid += payment.Amount
	}
	return paid
}

// BalanceDue is always derived, never stored: grand total minus the sum
// of recorded payments. With no payments it equals the grand total.
func (p *Proforma) BalanceDue() float64 {
	return p.GrandTotal - p.AmountPaid()
}

// ProformaItem is a line item. Product name, unit and price are copied
// from the catalog at add time; later product edits or deletions do not
// change historical items.
type ProformaItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ProformaID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"proforma_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Position    int        `gorm:"not null;default:0" json:"position"`
	ProductName string     `gorm:"size:255;not null" json:"product_name"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Quantity    float64    `gorm:"type:decimal(15,3);not null" json:"quantity"`
	Unit        string     `gorm:"size:50" json:"unit"`
	UnitPrice   float64    `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	TotalPrice  float64    `gorm:"type:decimal(15,2);not null" json:"total_price"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Proforma Proforma `gorm:"foreignKey:ProformaID" json:"-"`
	Product  *Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new proforma item
func (i *ProformaItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProformaItem model
func (ProformaItem) TableName() string {
	return "proforma_items"
}

// Payment is a payment recorded against a proforma.
type Payment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProformaID uuid.UUID `gorm:"type:uuid;not null;index" json:"proforma_id"`
	Amount     float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date       time.Time `gorm:"type:date;not null" json:"date"`
	Notes      *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Proforma Proforma `gorm:"foreignKey:ProformaID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
