package devtools

import (
	"encoding/json"
	"time"
)

// Frame is the JSON document describing one state observation.
type Frame struct {
	Store string          `json:"store"`
	Seq   uint64          `json:"seq"`
	Time  time.Time       `json:"time"`
	State json.RawMessage `json:"state,omitempty"`
	Error string          `json:"error,omitempty"`
}

// StoreInfo is one entry of the store listing.
type StoreInfo struct {
	Name      string `json:"name"`
	Listeners int    `json:"listeners"`
}

// newFrame encodes state. Values that cannot be encoded produce a frame
// carrying the encoding error instead.
func newFrame(store string, seq uint64, state any) Frame {
	f := Frame{Store: store, Seq: seq, Time: time.Now().UTC()}
	data, err := json.Marshal(state)
	if err != nil {
		f.Error = err.Error()
		return f
	}
	f.State = data
	return f
}
