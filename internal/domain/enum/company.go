package enum

// Company identifies which trading entity a record belongs to.
// Documents always belong to exactly one company; clients may be
// affiliated with both.
type Company string

const (
	CompanyTradeEvolution  Company = "Trade Evolution"
	CompanySuccessfulTrade Company = "Successful Trade"
	CompanyBoth            Company = "Both"
)

// ValidForDocument reports whether the company may issue documents.
// "Both" is a client affiliation only.
func (c Company) ValidForDocument() bool {
	return c == CompanyTradeEvolution || c == CompanySuccessfulTrade
}

// ValidForClient reports whether the company is a valid client affiliation.
func (c Company) ValidForClient() bool {
	return c.ValidForDocument() || c == CompanyBoth
}
