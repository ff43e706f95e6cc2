package model

// Package model contains the archive domain types. These are pure data
// structures shared across layers (HTTP, service, repository) with no
// database-specific dependencies or tags.

// Element types. The archive is a single self-referencing tree: boxes hold
// folders and documents, folders hold documents, everything else sits in a
// box or at the root.
const (
	TypeBox      = "box"
	TypeFolder   = "folder"
	TypeDocument = "document"
	TypeOther    = "other"
)

// Types lists every valid element type in display order.
var Types = []string{TypeBox, TypeFolder, TypeDocument, TypeOther}

// Element is a single node of the archive tree. A box is an element of type
// "box" carrying a shelf/rack location; a document is an element of type
// "document" carrying a document number and signing date. ParentID is empty
// for root elements. Dates are stored as entered ("02.01.2006", a bare year,
// or empty); Category holds zero or more comma-separated category codes.
type Element struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	ParentID  string `json:"parent_id,omitempty"`
	Shelf     string `json:"shelf,omitempty"`
	Rack      string `json:"rack,omitempty"`
	DocNumber string `json:"doc_number,omitempty"`
	SignDate  string `json:"sign_date,omitempty"`
	Category  string `json:"category,omitempty"`
}

// ValidType reports whether t is a known element type.
func ValidType(t string) bool {
	switch t {
	case TypeBox, TypeFolder, TypeDocument, TypeOther:
		return true
	}
	return false
}

// ContainerTypes returns the element types allowed to contain an element of
// type t. Documents and folders live in boxes or folders; boxes and anything
// else nest only inside boxes.
func ContainerTypes(t string) []string {
	if t == TypeDocument || t == TypeFolder {
		return []string{TypeBox, TypeFolder}
	}
	return []string{TypeBox}
}

// IsContainer reports whether the element can hold children.
func (e Element) IsContainer() bool {
	return e.Type == TypeBox || e.Type == TypeFolder
}

// ShelfRackLabel renders the element's own shelf/rack as the short location
// string printed on labels, e.g. "Sh.A, R.4". Empty when the element carries
// no location.
func (e Element) ShelfRackLabel() string {
	switch {
	case e.Shelf != "" && e.Rack != "":
		return "Sh." + e.Shelf + ", R." + e.Rack
	case e.Shelf != "":
		return "Sh." + e.Shelf
	case e.Rack != "":
		return "R." + e.Rack
	}
	return ""
}

// TypeLabel returns the human form of an element type for pages and location
// paths ("box" -> "Box").
func TypeLabel(t string) string {
	switch t {
	case TypeBox:
		return "Box"
	case TypeFolder:
		return "Folder"
	case TypeDocument:
		return "Document"
	case TypeOther:
		return "Other"
	}
	return t
}
