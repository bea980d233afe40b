package enum

// ProformaStatus represents the lifecycle state of a proforma.
// The set is flat: any status may be set from any other status by
// explicit user action, there is no enforced transition graph.
type ProformaStatus string

const (
	ProformaStatusDraft    ProformaStatus = "DRAFT"
	ProformaStatusSent     ProformaStatus = "SENT"
	ProformaStatusReviewed ProformaStatus = "REVIEWED"
	ProformaStatusApproved ProformaStatus = "APPROVED"
	ProformaStatusRejected ProformaStatus = "REJECTED"
)

// Valid reports whether the status is one of the known states.
func (s ProformaStatus) Valid() bool {
	switch s {
	case ProformaStatusDraft, ProformaStatusSent, ProformaStatusReviewed,
		ProformaStatusApproved, ProformaStatusRejected:
		return true
	}
	return false
}
