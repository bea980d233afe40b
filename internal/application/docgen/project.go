package docgen

import (
	"math"
	"strings"

	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
)

// Heuristics are the estimation factors applied when a packing list has
// no operator-entered container data. Weights estimate from the line
// value, volume from the quantity.
type Heuristics struct {
	NetWeightFactor   float64
	GrossWeightFactor float64
	VolumeFactor      float64
}

// DefaultHeuristics returns the factors used by the issued documents to
// date.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		NetWeightFactor:   0.90,
		GrossWeightFactor: 0.95,
		VolumeFactor:      0.05,
	}
}

// AddressInfo is one party block on a projected document.
type AddressInfo struct {
	Name         string   `json:"name"`
	AddressLines []string `json:"address_lines"`
	TaxID        string   `json:"tax_id,omitempty"`
}

// InvoiceItem is a projected line item. Description falls back to the
// product name so no line renders empty.
type InvoiceItem struct {
	ProductName string  `json:"product_name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// SalesDetail carries the logistics block shared by projected documents.
type SalesDetail struct {
	PortAtOrigin      string `json:"port_at_origin"`
	PortOfArrival     string `json:"port_of_arrival"`
	FinalDestination  string `json:"final_destination"`
	Reference         string `json:"reference"`
	PaymentTerms      string `json:"payment_terms"`
	Vessel            string `json:"vessel"`
	Containers        string `json:"containers"`
	ContainerNo       string `json:"container_no"`
	ProformaRefNumber string `json:"proforma_ref_number"`
}

// InvoiceData is the complete read-time projection of an invoice. It is
// never persisted.
type InvoiceData struct {
	ProformaID     string        `json:"proforma_id"`
	InvoiceNumber  string        `json:"invoice_number"`
	IssuedAtPlace  string        `json:"issued_at_place"`
	IssuedAtDate   string        `json:"issued_at_date"`
	Company        enum.Company  `json:"company"`
	SoldTo         AddressInfo   `json:"sold_to"`
	ShipTo         AddressInfo   `json:"ship_to"`
	Currency       string        `json:"currency"`
	Items          []InvoiceItem `json:"items"`
	SalesDetail    SalesDetail   `json:"sales_detail"`
	SubTotal       float64       `json:"sub_total"`
	SalesTax       float64       `json:"sales_tax"`
	Total          float64       `json:"total"`
	AmountPaid     float64       `json:"amount_paid"`
	BalanceDue     float64       `json:"balance_due"`
	ProformaNumber string        `json:"proforma_number"`
}

// PackingListContainerItem is one goods row inside a container.
type PackingListContainerItem struct {
	DescriptionOfGoods string  `json:"description_of_goods"`
	PiecesPerPack      float64 `json:"pieces_per_pack"`
}

// PackingListContainer is one container row on the packing list.
type PackingListContainer struct {
	ContainerNumber string                     `json:"container_number"`
	NetWeight       float64                    `json:"net_weight"`
	GrossWeight     float64                    `json:"gross_weight"`
	Items           []PackingListContainerItem `json:"items"`
	TotalPacks      float64                    `json:"total_packs"`
	TotalPieces     float64                    `json:"total_pieces"`
	TotalVolumeM3   float64                    `json:"total_volume_m3"`
}

// PackingListData is the complete read-time projection of a packing
// list. It is never persisted.
type PackingListData struct {
	PackingListName  string                 `json:"packing_list_name"`
	ProformaID       string                 `json:"proforma_id"`
	Company          enum.Company           `json:"company"`
	IssuedAtPlace    string                 `json:"issued_at_place"`
	IssuedAtDate     string                 `json:"issued_at_date"`
	BillTo           AddressInfo            `json:"bill_to"`
	ShipTo           AddressInfo            `json:"ship_to"`
	InvoiceRef       string                 `json:"invoice_ref"`
	CustRef          string                 `json:"cust_ref"`
	PortAtOrigin     string                 `json:"port_at_origin"`
	PortOfArrival    string                 `json:"port_of_arrival"`
	FinalDestination string                 `json:"final_destination"`
	Containers       string                 `json:"containers"`
	PIRef            string                 `json:"pi_ref"`
	ProductSummary   string                 `json:"product_summary"`
	PackingListNotes string                 `json:"packing_list_notes,omitempty"`
	ContainerItems   []PackingListContainer `json:"container_items"`
	SalesOrderNumber string                 `json:"sales_order_number"`
}

/// issuedAtPlace is fixed per company: Trade Evolution documents are
// issued in Tallinn, Successful Trade leaves the field blank.
func issuedAtPlace(company enum.Company) string {
	if company == enum.CompanySuccessfulTrade {
		return ""
	}
	return "Tallinn, Estonia"
}

// ProjectInvoiceData builds the invoice projection. invoiceNumber must
// already be resolved (frozen overlay value, derived Successful Trade
// number, or freshly allocated Trade Evolution folio). The client may be
// nil when the proforma has no linked client; every party field then
// degrades through the proforma snapshot to "N/A".
func ProjectInvoiceData(p *entity.Proforma, client *entity.Client, invoiceNumber string) InvoiceData {
	issuedDate := p.IssuedDate.Format("2006-01-02")
	paymentTerms := deref(p.PaymentTerms)
	if p.InvoiceFields != nil {
		if p.InvoiceFields.IssuedAtDate != "" {
			issuedDate = p.InvoiceFields.IssuedAtDate
		}
		if p.InvoiceFields.PaymentTerms != "" {
			paymentTerms = p.InvoiceFields.PaymentTerms
		}
	}

	items := make([]InvoiceItem, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, InvoiceItem{
			ProductName: item.ProductName,
			Description: firstNonEmpty(deref(item.Description), item.ProductName),
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	return InvoiceData{
		ProformaID:    p.ID.String(),
		InvoiceNumber: invoiceNumber,
		IssuedAtPlace: issuedAtPlace(p.Company),
		IssuedAtDate:  issuedDate,
		Company:       p.Company,
		SoldTo:        soldToInfo(p, client),
		ShipTo:        shipToInfo(p, client),
		Currency:      p.Currency,
		Items:         items,
		SalesDetail: SalesDetail{
			PortAtOrigin:      deref(p.PortAtOrigin),
			PortOfArrival:     deref(p.PortOfArrival),
			FinalDestination:  deref(p.FinalDestination),
			Reference:         deref(p.Reference),
			PaymentTerms:      paymentTerms,
			Vessel:            deref(p.Vessel),
			Containers:        deref(p.Containers),
			ContainerNo:       deref(p.ContainerNo),
			ProformaRefNumber: p.ProformaNumber,
		},
		SubTotal:       p.SubTotal,
		SalesTax:       p.TaxAmount,
		Total:          p.GrandTotal,
		AmountPaid:     p.AmountPaid(),
		BalanceDue:     p.BalanceDue(),
		ProformaNumber: p.ProformaNumber,
	}
}

// ProjectPackingListData builds the packing list projection. invoiceRef
// is the resolved invoice number cross-referenced on the document.
// Operator-edited containers are used verbatim when present, otherwise
// one container is synthesized per line item with the configured
// estimation heuristics.
func ProjectPackingListData(p *entity.Proforma, client *entity.Client, invoiceRef string, h Heuristics) PackingListData {
	place := issuedAtPlace(p.Company)
	productSummary := defaultProductSummary(p.Items)
	notes := ""
	var edited []entity.EditedContainer
	if p.PackingListFields != nil {
		if p.PackingListFields.IssuedAtPlace != "" {
			place = p.PackingListFields.IssuedAtPlace
		}
		if p.PackingListFields.ProductSummary != "" {
			productSummary = p.PackingListFields.ProductSummary
		}
		notes = p.PackingListFields.PackingListNotes
		edited = p.PackingListFields.EditedContainers
	}

	var containers []PackingListContainer
	if len(edited) > 0 {
		containers = editedContainers(p, edited)
	} else {
		containers = synthesizedContainers(p, h)
	}

	return PackingListData{
		PackingListName:  PackingListName(p),
		ProformaID:       p.ID.String(),
		Company:          p.Company,
		IssuedAtPlace:    place,
		IssuedAtDate:     p.IssuedDate.Format("2006-01-02"),
		BillTo:           soldToInfo(p, client),
		ShipTo:           shipToInfo(p, client),
		InvoiceRef:       invoiceRef,
		CustRef:          deref(p.Reference),
		PortAtOrigin:     firstNonEmpty(deref(p.PortAtOrigin), "N/A"),
		PortOfArrival:    firstNonEmpty(deref(p.PortOfArrival), "N/A"),
		FinalDestination: firstNonEmpty(deref(p.FinalDestination), "N/A"),
		Containers:       firstNonEmpty(deref(p.Containers), "N/A"),
		PIRef:            p.ProformaNumber,
		ProductSummary:   productSummary,
		PackingListNotes: notes,
		ContainerItems:   containers,
		SalesOrderNumber: p.ProformaNumber,
	}
}

// ContainerItemIndex maps an edited container row to the proforma item
// it describes: same index, clamped to the last item when the operator
// entered more containers than there are items.
func ContainerItemIndex(containerIdx, itemCount int) int {
	if itemCount == 0 {
		return -1
	}
	if containerIdx >= itemCount {
		return itemCount - 1
	}
	return containerIdx
}

func editedContainers(p *entity.Proforma, edited []entity.EditedContainer) []PackingListContainer {
	containers := make([]PackingListContainer, 0, len(edited))
	for i, ec := range edited {
		var item entity.ProformaItem
		if idx := ContainerItemIndex(i, len(p.Items)); idx >= 0 {
			item = p.Items[idx]
		}
		containers = append(containers, PackingListContainer{
			ContainerNumber: ec.ContainerNumber,
			NetWeight:       ec.NetWeight,
			GrossWeight:     ec.GrossWeight,
			Items: []PackingListContainerItem{
				{DescriptionOfGoods: goodsDescription(item), PiecesPerPack: 1},
			},
			TotalPacks:    item.Quantity,
			TotalPieces:   item.Quantity,
			TotalVolumeM3: ec.TotalVolumeM3,
		})
	}
	return containers
}

func synthesizedContainers(p *entity.Proforma, h Heuristics) []PackingListContainer {
	containers := make([]PackingListContainer, 0, len(p.Items))
	for _, item := range p.Items {
		containers = append(containers, PackingListContainer{
			ContainerNumber: firstNonEmpty(deref(p.ContainerNo), "TBN"),
			NetWeight:       item.UnitPrice * item.Quantity * h.NetWeightFactor,
			GrossWeight:     item.UnitPrice * item.Quantity * h.GrossWeightFactor,
			Items: []PackingListContainerItem{
				{DescriptionOfGoods: goodsDescription(item), PiecesPerPack: 1},
			},
			TotalPacks:    item.Quantity,
			TotalPieces:   item.Quantity,
			TotalVolumeM3: round3(item.Quantity * h.VolumeFactor),
		})
	}
	return containers
}

func goodsDescription(item entity.ProformaItem) string {
	if desc := deref(item.Description); desc != "" {
		return item.ProductName + "\n" + desc
	}
	return item.ProductName + "\n"
}

func defaultProductSummary(items []entity.ProformaItem) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.ProductName)
	}
	return strings.Join(names, "\n")
}

func soldToInfo(p *entity.Proforma, client *entity.Client) AddressInfo {
	return AddressInfo{
		Name:         firstNonEmpty(clientCompanyName(client), p.ClientName),
		AddressLines: addressLines(firstNonEmpty(deref(p.ClientAddress), clientAddress(client), "N/A")),
		TaxID:        firstNonEmpty(deref(p.ClientTaxID), clientTaxID(client)),
	}
}

func shipToInfo(p *entity.Proforma, client *entity.Client) AddressInfo {
	return AddressInfo{
		Name:         firstNonEmpty(deref(p.ShipToName), clientCompanyName(client), p.ClientName),
		AddressLines: addressLines(firstNonEmpty(deref(p.ShipToAddress), deref(p.ClientAddress), clientAddress(client), "N/A")),
		TaxID:        firstNonEmpty(deref(p.ShipToTaxID), deref(p.ClientTaxID), clientTaxID(client)),
	}
}

func clientCompanyName(client *entity.Client) string {
	if client == nil {
		return ""
	}
	return deref(client.CompanyName)
}

func clientAddress(client *entity.Client) string {
	if client == nil {
		return ""
	}
	return deref(client.Address)
}

func clientTaxID(client *entity.Client) string {
	if client == nil {
		return ""
	}
	return deref(client.TaxID)
}

func addressLines(address string) []string {
	return strings.Split(address, "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
