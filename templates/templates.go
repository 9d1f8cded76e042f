// Package templates lists the X12 transaction sets known by name.
package templates

import "sort"

// Template names a transaction set.
type Template struct {
	Code        string
	Name        string
	Description string
}

var registry = map[string]Template{
	"204": {"204", "Motor Carrier Load Tender", "Offer of a shipment to a motor carrier"},
	"210": {"210", "Motor Carrier Freight Details and Invoice", "Freight charges billed by a motor carrier"},
	"214": {"214", "Transportation Carrier Shipment Status Message", "Status updates for shipments in transit"},
	"270": {"270", "Eligibility, Coverage or Benefit Inquiry", "Inquiry about health care eligibility and benefits"},
	"271": {"271", "Eligibility, Coverage or Benefit Information", "Response to a health care eligibility inquiry"},
	"276": {"276", "Health Care Claim Status Request", "Request for the status of a health care claim"},
	"277": {"277", "Health Care Claim Status Notification", "Status of a previously submitted health care claim"},
	"810": {"810", "Invoice", "Request for payment for goods or services"},
	"812": {"812", "Credit/Debit Adjustment", "Adjustment to a previously issued invoice"},
	"820": {"820", "Payment Order/Remittance Advice", "Payment instruction and remittance detail"},
	"824": {"824", "Application Advice", "Result of application-level validation of a document"},
	"830": {"830", "Planning Schedule with Release Capability", "Forecast of material requirements"},
	"832": {"832", "Price/Sales Catalog", "Product and price catalog"},
	"834": {"834", "Benefit Enrollment and Maintenance", "Enrollment of members in a health benefit plan"},
	"835": {"835", "Health Care Claim Payment/Advice", "Payment and explanation of health care claims"},
	"837": {"837", "Health Care Claim", "Submission of health care claim billing information"},
	"846": {"846", "Inventory Inquiry/Advice", "Inventory levels and availability"},
	"850": {"850", "Purchase Order", "Order for goods or services"},
	"852": {"852", "Product Activity Data", "Sales and inventory activity by product"},
	"855": {"855", "Purchase Order Acknowledgment", "Seller acknowledgment of a purchase order"},
	"856": {"856", "Ship Notice/Manifest", "Contents and configuration of a shipment"},
	"860": {"860", "Purchase Order Change Request - Buyer Initiated", "Buyer change to a purchase order"},
	"865": {"865", "Purchase Order Change Acknowledgment/Request - Seller Initiated", "Seller response to or request for a purchase order change"},
	"875": {"875", "Grocery Products Purchase Order", "Purchase order for grocery products"},
	"880": {"880", "Grocery Products Invoice", "Invoice for grocery products"},
	"940": {"940", "Warehouse Shipping Order", "Instruction to a warehouse to ship goods"},
	"943": {"943", "Warehouse Stock Transfer Shipment Advice", "Advice of stock shipped to a warehouse"},
	"944": {"944", "Warehouse Stock Transfer Receipt Advice", "Receipt of stock by a warehouse"},
	"945": {"945", "Warehouse Shipping Advice", "Confirmation of a warehouse shipment"},
	"947": {"947", "Warehouse Inventory Adjustment Advice", "Adjustment of warehouse inventory"},
	"990": {"990", "Response to a Load Tender", "Carrier acceptance or rejection of a load tender"},
	"997": {"997", "Functional Acknowledgment", "Acknowledgment of a received functional group"},
	"999": {"999", "Implementation Acknowledgment", "Acknowledgment with implementation guide validation results"},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// All returns every template ordered by code.
func All() []Template {
	out := make([]Template, 0, len(registry))
	for _, t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Label returns "<code> <name>" for known codes and "Transaction Set <code>"
// otherwise.
func Label(code string) string {
	if t, ok := Lookup(code); ok {
		return t.Code + " " + t.Name
	}
	return "Transaction Set " + code
}
