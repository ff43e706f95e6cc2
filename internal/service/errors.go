package service

import "errors"

// Sentinel errors shared by the services. Handlers map these to HTTP codes;
// anything else is treated as an internal failure.
var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("element not found")
	ErrEntryNotFound   = errors.New("registry entry not found")
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidType     = errors.New("unknown element type")
	ErrInvalidRack     = errors.New("rack must be numeric")
	ErrUnknownCategory = errors.New("unknown category code")
	ErrParentNotFound  = errors.New("parent element not found")
	ErrInvalidParent   = errors.New("element cannot be placed in that container")
	ErrCycle           = errors.New("placement would create a cycle")
	ErrBaseURLRequired = errors.New("BASE_URL must be configured")
	ErrNoBoxes         = errors.New("no boxes to label")
	ErrBadLayout       = errors.New("unsupported label layout")
	ErrBadFormat       = errors.New("unsupported label format")
	ErrBadExport       = errors.New("unsupported export format")
	ErrNoEntries       = errors.New("no registry entries selected")
	ErrBadSnapshot     = errors.New("snapshot format not recognized")
	ErrNoStorage       = errors.New("object storage not configured")
)
