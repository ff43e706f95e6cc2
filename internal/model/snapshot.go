package model

import "time"

// SnapshotVersion is the format version written into exported snapshots.
const SnapshotVersion = "1.0"

// Snapshot is a full dump of the archive and the intake registry, used for
// backup and for moving data between deployments. Import replaces both
// tables wholesale.
type Snapshot struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Elements   []Element       `json:"elements"`
	Registry   []RegistryEntry `json:"registry"`
}
