package scoring

import (
	"encoding/json"
	"sort"
)

// stateAlias strips State's methods so decoding cannot recurse.
type stateAlias State

// stateDoc shadows the collection fields with raw JSON so documents written
// by older clients, which stored the ball history as a keyed object instead
// of an array, still decode.
type stateDoc struct {
	*stateAlias
	Stats   json.RawMessage `json:"player_stats"`
	History json.RawMessage `json:"ball_history"`
}

// EncodeState serializes a state snapshot in the canonical shape: history as
// an ordered array, stats keyed by player id.
func EncodeState(s *State) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeState parses a persisted snapshot, normalizing legacy collection
// shapes to the canonical ones before the engine ever sees them.
func DecodeState(data []byte) (*State, error) {
	var st State
	doc := stateDoc{stateAlias: (*stateAlias)(&st)}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	hist, err := normalizeHistory(doc.History)
	if err != nil {
		return nil, err
	}
	st.History = hist

	stats, err := normalizeStats(doc.Stats)
	if err != nil {
		return nil, err
	}
	st.Stats = stats

	if st.Status == "" {
		st.Status = StatusUpcoming
	}
	if st.CurrentInnings == 0 {
		st.CurrentInnings = 1
	}
	return &st, nil
}

// normalizeHistory accepts the ball history either as a JSON array or as an
// object keyed by generated ids, returning records in key order.
func normalizeHistory(raw json.RawMessage) ([]BallRecord, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var arr []BallRecord
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr, nil
	}
	var keyed map[string]BallRecord
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]BallRecord, 0, len(keyed))
	for _, k := range keys {
		out = append(out, keyed[k])
	}
	return out, nil
}

func normalizeStats(raw json.RawMessage) (map[uint]*PlayerStat, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[uint]*PlayerStat{}, nil
	}
	var stats map[uint]*PlayerStat
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, err
	}
	if stats == nil {
		stats = map[uint]*PlayerStat{}
	}
	return stats, nil
}
