package config

import "github.com/trade-evolution/tradedocs-api/internal/domain/enum"

// BankAccount holds the wiring details printed on issued documents.
type BankAccount struct {
	AccountHolder string   `json:"account_holder"`
	AccountNumber string   `json:"account_number,omitempty"`
	AccountType   string   `json:"account_type,omitempty"`
	RoutingNumber string   `json:"routing_number,omitempty"`
	SwiftCode     string   `json:"swift_code,omitempty"`
	IBAN          string   `json:"iban,omitempty"`
	BankName      string   `json:"bank_name,omitempty"`
	BankAddress   []string `json:"bank_address,omitempty"`
}

// Signature is the signatory block of an issuing company.
type Signature struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// CompanyDetails centralizes the static issuer information so every
// generated document carries the same letterhead data.
type CompanyDetails struct {
	Name       string       `json:"name"`
	TaxID      string       `json:"tax_id,omitempty"`
	UEN        string       `json:"uen,omitempty"`
	Phone      string       `json:"phone"`
	Address    string       `json:"address"`
	Website    string       `json:"website"`
	FooterText string       `json:"footer_text,omitempty"`
	USDAccount *BankAccount `json:"usd_account,omitempty"`
	EURAccount *BankAccount `json:"eur_account,omitempty"`
	Bank       *BankAccount `json:"bank,omitempty"`
	Signature  Signature    `json:"signature"`
}

var companyDirectory = map[enum.Company]CompanyDetails{
	enum.CompanyTradeEvolution: {
		Name:    "TradeEvolution OÜ",
		TaxID:   "1669512",
		Phone:   "+372-5811-2114",
		Address: "Harju maakond, Tallinn, Kesklinna linnaosa, Pärnu mnt 139c, 11317, Estonia",
		Website: "www.trd-e.ee",
		USDAccount: &BankAccount{
			AccountHolder: "TradeEvolution OÜ",
			RoutingNumber: "026073150",
			AccountNumber: "8313015989",
			AccountType:   "Checking",
			SwiftCode:     "CMFGUS33",
			BankAddress: []string{
				"Wise US Inc (Community Federal Savings Bank)",
				"30 W. 26th Street, Sixth Floor",
				"New York, NY 10010",
				"United States",
			},
		},
		EURAccount: &BankAccount{
			AccountHolder: "TRADE EVOLUTION OÜ",
			SwiftCode:     "LHVBEE22",
			IBAN:          "EE247700771008688480",
			BankAddress: []string{
				"AS LHV Pank",
				"Tartu mnt 2",
				"10145 Tallinn",
				"Estonia",
			},
		},
		Signature: Signature{Name: "Rubén Colín", Title: "CEO"},
	},
	enum.CompanySuccessfulTrade: {
		Name:       "Successful Trade PTE LTD",
		UEN:        "202334442E",
		Phone:      "(+65) 8588 0588",
		Address:    "160 Robinson Road, #14-04 Singapore Business Federation Centre, Singapore 068914",
		Website:    "www.successfultrd.com",
		FooterText: "This is a computer-generated document. No signature is required.",
		Bank: &BankAccount{
			AccountHolder: "Successful Trade PTE. LTD.",
			AccountNumber: "717-123456-789",
			SwiftCode:     "OCBCSGSGXXX",
			BankName:      "OCBC",
			BankAddress:   []string{"63 Chulia Street #10-00, OCBC Centre East, Singapore 049514"},
		},
		Signature: Signature{Name: "Management", Title: "Successful Trade PTE LTD"},
	},
}

// CompanyFor returns the issuer details for a company. The second value
// reports whether the company is known.
func CompanyFor(company enum.Company) (CompanyDetails, bool) {
	details, ok := companyDirectory[company]
	return details, ok
}
