package model

// StatusAwaitingPlacement is the default status of a freshly registered
// entry that has not been placed into the archive yet.
const StatusAwaitingPlacement = "awaiting placement"

// RegistryEntry is a row of the intake ledger: a document that has been
// registered but not yet placed into a box. Placement turns the entry into a
// root element of type "document" and removes it from the registry.
type RegistryEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	DocNumber string `json:"doc_number,omitempty"`
	SignDate  string `json:"sign_date,omitempty"`
	Status    string `json:"status"`
	Category  string `json:"category,omitempty"`
}
