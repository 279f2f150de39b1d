package admin

// ListsRequest replaces the managed name lists. A missing field keeps the
// stored list.
type ListsRequest struct {
	Teams     []string `json:"teams"`
	Opponents []string `json:"opponents"`
}

// PreviewRequest is a hypothetical calendar event to classify.
type PreviewRequest struct {
	Summary     string `json:"summary" binding:"required"`
	Description string `json:"description"`
}
