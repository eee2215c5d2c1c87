package models

// -----------------------------------------------------------------------------
// MSortSpec - persisted sort order of the collection
// -----------------------------------------------------------------------------

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// MSortSpec survives fetches: the container re-applies it to every new
// record set. An empty Key means insertion order.
type MSortSpec struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}
