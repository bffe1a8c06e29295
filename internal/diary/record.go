package diary

import "time"

// KeyPrefix is shared by every stored diary key
const KeyPrefix = "diary-"

// keyTimeLayout renders the 14-digit second-resolution timestamp embedded in
// storage keys
const keyTimeLayout = "20060102150405"

// Record is the persisted unit: one diary entry plus its AI analysis and
// creation time. CreatedAt stays a string on the wire; ordering parses it
type Record struct {
	Content   string `json:"content"`
	AIMessage string `json:"aiMessage"`
	CreatedAt string `json:"createdAt"`
}

// StorageKey derives the record key from the ingestion wall-clock time in
// local server time. Two ingestions within the same second collide and the
// later write wins; existing stored keys depend on this exact shape
func StorageKey(t time.Time) string {
	return KeyPrefix + t.Format(keyTimeLayout)
}

// createdAtLayouts are tried in order when parsing timestamps for history
// ordering. Values written by this system are RFC 3339, but the store may
// hold records written by hand or by older clients
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseCreatedAt parses a CreatedAt value tolerantly. Unparseable values
// yield the zero time, which sorts after every valid instant
func parseCreatedAt(value string) time.Time {
	for _, layout := range createdAtLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
