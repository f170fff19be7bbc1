package helper

import (
	"fmt"

	"theatre_service/model"
)

// SeatError reports which bound a seat claim violated and the valid range.
type SeatError struct {
	Field string // "row" or "seat"
	Value int
	Max   int
}

func (e *SeatError) Error() string {
	return fmt.Sprintf("%s %d is out of range: must be between 1 and %d", e.Field, e.Value, e.Max)
}

// ValidateSeat checks a (row, seat) pair against the hall layout.
// Pure: no database access, no side effects.
func ValidateSeat(row, seat int, hall model.TheatreHall) error {
	if row < 1 || row > hall.Rows {
		return &SeatError{Field: "row", Value: row, Max: hall.Rows}
	}
	if seat < 1 || seat > hall.SeatsInRow {
		return &SeatError{Field: "seat", Value: seat, Max: hall.SeatsInRow}
	}
	return nil
}
