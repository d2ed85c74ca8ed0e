package models

// ImageAssignment records the deterministic image pick for a piece of content.
// For a fixed (category, identity) pair the resolved URL never changes.
type ImageAssignment struct {
	Category Category `json:"category"`
	Identity string   `json:"identity"` // stable key, usually the slug
	URL      string   `json:"url"`
	// PoolIndex is the index drawn from the category pool, or -1 when a
	// keyword override pre-empted the hash pick.
	PoolIndex    int  `json:"pool_index"`
	FromOverride bool `json:"from_override"`
}
