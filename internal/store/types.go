package store

type Table string

const (
	TableKnowledge Table = "knowledge"
	TableBeats     Table = "beats"
	TableLayouts   Table = "layouts"
)

// PendingEmbedding is a catalog row whose embedding has not been computed.
// Key is the row's id for knowledge and its name for beats and layouts.
type PendingEmbedding struct {
	Table Table
	Key   string
	Text  string
}
