package entity

// DocumentCounter is a named persisted folio counter. The Trade
// Evolution invoice folio lives here so allocations survive restarts
// and are advanced atomically instead of in process memory.
type DocumentCounter struct {
	Name  string `gorm:"size:100;primary_key" json:"name"`
	Value int64  `gorm:"not null" json:"value"`
}

// TableName returns the table name for the DocumentCounter model
func (DocumentCounter) TableName() string {
	return "document_counters"
}
