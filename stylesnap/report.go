package stylesnap

import "time"

// Report is one finished extraction as delivered to sinks and stored in the
// archive. Collected and Retained are declaration counts before and after
// reduction.
type Report struct {
	ID        string            `json:"id"`
	URL       string            `json:"url"`
	Selector  string            `json:"selector"`
	Element   *ExtractedElement `json:"element"`
	Collected int               `json:"collected"`
	Retained  int               `json:"retained"`
	CreatedAt time.Time         `json:"createdAt"`
}
