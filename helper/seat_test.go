package helper_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theatre_service/helper"
	"theatre_service/model"
)

func TestValidateSeat(t *testing.T) {
	hall := model.TheatreHall{Name: "Blue", Rows: 15, SeatsInRow: 20}

	tests := []struct {
		name      string
		row, seat int
		wantField string
		wantMax   int
	}{
		{name: "first seat", row: 1, seat: 1},
		{name: "last seat", row: 15, seat: 20},
		{name: "middle", row: 7, seat: 11},
		{name: "row past the back wall", row: 16, seat: 1, wantField: "row", wantMax: 15},
		{name: "row zero", row: 0, seat: 1, wantField: "row", wantMax: 15},
		{name: "negative row", row: -3, seat: 1, wantField: "row", wantMax: 15},
		{name: "seat past the aisle", row: 1, seat: 21, wantField: "seat", wantMax: 20},
		{name: "seat zero", row: 1, seat: 0, wantField: "seat", wantMax: 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := helper.ValidateSeat(tc.row, tc.seat, hall)
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var seatErr *helper.SeatError
			require.True(t, errors.As(err, &seatErr))
			assert.Equal(t, tc.wantField, seatErr.Field)
			assert.Equal(t, tc.wantMax, seatErr.Max)
		})
	}
}

func TestValidateSeatChecksRowBeforeSeat(t *testing.T) {
	hall := model.TheatreHall{Name: "Tiny", Rows: 2, SeatsInRow: 2}

	err := helper.ValidateSeat(5, 9, hall)
	require.Error(t, err)
	var seatErr *helper.SeatError
	require.True(t, errors.As(err, &seatErr))
	assert.Equal(t, "row", seatErr.Field)
	assert.Equal(t, "row 5 is out of range: must be between 1 and 2", err.Error())
}

func TestHallCapacity(t *testing.T) {
	hall := model.TheatreHall{Rows: 15, SeatsInRow: 20}
	assert.Equal(t, 300, hall.Capacity())
}
