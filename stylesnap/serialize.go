package stylesnap

import "encoding/json"

// MarshalElement serialises an ExtractedElement to JSON.
func MarshalElement(e *ExtractedElement) ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalElement deserialises an ExtractedElement from JSON.
func UnmarshalElement(data []byte) (*ExtractedElement, error) {
	var e ExtractedElement
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UnmarshalSnapshot deserialises a Snapshot from its ordered JSON form.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
