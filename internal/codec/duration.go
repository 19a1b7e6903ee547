package codec

import (
	"encoding/json"
	"fmt"
	"time"
)

// Scale is the number of wire units per second.
type Scale int64

const (
	UnitSeconds      Scale = 1
	UnitMilliseconds Scale = 1000
)

func (s Scale) unit() time.Duration {
	return time.Second / time.Duration(s)
}

// EncodeDuration converts d to whole wire units, rounding half away from zero.
func EncodeDuration(d time.Duration, s Scale) int64 {
	u := s.unit()
	return int64(d.Round(u) / u)
}

// DecodeDuration converts n wire units back to a duration. It is exact.
func DecodeDuration(n int64, s Scale) time.Duration {
	return time.Duration(n) * s.unit()
}

// Seconds is a duration carried on the wire as whole seconds.
type Seconds time.Duration

// Duration returns s as a time.Duration.
func (s Seconds) Duration() time.Duration { return time.Duration(s) }

func (s Seconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeDuration(time.Duration(s), UnitSeconds))
}

func (s *Seconds) UnmarshalJSON(data []byte) error {
	n, ok, err := decodeInt(data)
	if err != nil || !ok {
		return err
	}
	*s = Seconds(DecodeDuration(n, UnitSeconds))
	return nil
}

// Milliseconds is a duration carried on the wire as whole milliseconds.
type Milliseconds time.Duration

// Duration returns m as a time.Duration.
func (m Milliseconds) Duration() time.Duration { return time.Duration(m) }

func (m Milliseconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeDuration(time.Duration(m), UnitMilliseconds))
}

func (m *Milliseconds) UnmarshalJSON(data []byte) error {
	n, ok, err := decodeInt(data)
	if err != nil || !ok {
		return err
	}
	*m = Milliseconds(DecodeDuration(n, UnitMilliseconds))
	return nil
}

// decodeInt reads a JSON integer; ok is false for null.
func decodeInt(data []byte) (int64, bool, error) {
	if string(data) == "null" {
		return 0, false, nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, false, fmt.Errorf("decode duration %s: %w", data, err)
	}
	return n, true, nil
}
