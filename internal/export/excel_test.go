package export

import (
	"path/filepath"
	"testing"
	"time"

	"roombook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func date(s string) time.Time {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestWriteOccupancy(t *testing.T) {
	rooms := []models.Room{{ID: 1}, {ID: 2}}
	users := []models.User{{ID: 10, Name: "Alice"}}
	bookings := []models.Booking{
		{ID: 100, UserID: 10, RoomID: 1, Checkin: "2024-06-01", Checkout: "2024-06-03"},
	}

	path := filepath.Join(t.TempDir(), "occupancy.xlsx")
	err := WriteOccupancy(path, rooms, bookings, users, date("2024-06-01"), date("2024-06-03"))
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Period: 2024-06-01 - 2024-06-03", header)

	firstDate, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", firstDate)

	roomLabel, err := f.GetCellValue(sheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Room 1", roomLabel)

	// Booking covers checkin and the night after, not the checkout day.
	occupied, err := f.GetCellValue(sheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Alice", occupied)

	secondNight, err := f.GetCellValue(sheetName, "C3")
	require.NoError(t, err)
	assert.Equal(t, "Alice", secondNight)

	checkoutDay, err := f.GetCellValue(sheetName, "D3")
	require.NoError(t, err)
	assert.Empty(t, checkoutDay)

	otherRoom, err := f.GetCellValue(sheetName, "B4")
	require.NoError(t, err)
	assert.Empty(t, otherRoom)
}

func TestWriteOccupancyUnknownGuestName(t *testing.T) {
	rooms := []models.Room{{ID: 1}}
	bookings := []models.Booking{
		{ID: 100, UserID: 77, RoomID: 1, Checkin: "2024-06-01", Checkout: "2024-06-02"},
	}

	path := filepath.Join(t.TempDir(), "occupancy.xlsx")
	err := WriteOccupancy(path, rooms, bookings, nil, date("2024-06-01"), date("2024-06-01"))
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	cell, err := f.GetCellValue(sheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "user 77", cell)
}

func TestWriteOccupancyInvalidRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "occupancy.xlsx")
	err := WriteOccupancy(path, nil, nil, nil, date("2024-06-10"), date("2024-06-01"))
	assert.Error(t, err)
}
