package entity

// ChunkRecord is one token window of the ingested document together with its
// embedding. Records are appended in document order and never mutated; the
// position inside the session's list is the chunk's retrieval index.
type ChunkRecord struct {
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

// HistoryEntry is one completed question/answer turn. Sessions keep the most
// recent N entries, oldest evicted first.
type HistoryEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
