package codec

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidEnumValue is returned when an integer does not map to a known enum value.
var ErrInvalidEnumValue = errors.New("invalid enum value")

// Weekday is the integer-backed day of week used by beginning_of_week.
type Weekday uint8

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (w Weekday) String() string {
	if int(w) < len(weekdayNames) {
		return weekdayNames[w]
	}
	return fmt.Sprintf("Weekday(%d)", uint8(w))
}

// EncodeWeekday returns the wire integer for w.
func EncodeWeekday(w Weekday) int {
	return int(w)
}

// DecodeWeekday maps a wire integer back to a Weekday. Anything outside 0-6 fails.
func DecodeWeekday(n int64) (Weekday, error) {
	if n < int64(Sunday) || n > int64(Saturday) {
		return 0, fmt.Errorf("%w: weekday %d", ErrInvalidEnumValue, n)
	}
	return Weekday(n), nil
}

func (w Weekday) MarshalJSON() ([]byte, error) {
	if w > Saturday {
		return nil, fmt.Errorf("%w: weekday %d", ErrInvalidEnumValue, uint8(w))
	}
	return json.Marshal(EncodeWeekday(w))
}

// UnmarshalJSON rejects null; optional weekdays are wrapped in
// optional.Value, which handles null before reaching here.
func (w *Weekday) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return fmt.Errorf("%w: weekday is null", ErrInvalidEnumValue)
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: weekday %s", ErrInvalidEnumValue, data)
	}
	d, err := DecodeWeekday(n)
	if err != nil {
		return err
	}
	*w = d
	return nil
}
