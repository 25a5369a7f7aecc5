package export

import (
	"fmt"
	"time"

	"roombook/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Occupancy"

// WriteOccupancy renders an occupancy grid: one row per room, one column per
// date in [start, end], each cell carrying the name of the guest whose
// booking covers that date. The file is written to path.
func WriteOccupancy(
	path string,
	rooms []models.Room,
	bookings []models.Booking,
	users []models.User,
	start, end time.Time,
) error {
	if end.Before(start) {
		return fmt.Errorf("export range end %s before start %s",
			end.Format(models.DateLayout), start.Format(models.DateLayout))
	}

	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Period: %s - %s",
		start.Format(models.DateLayout), end.Format(models.DateLayout)))

	// Header row: dates across, rooms down.
	_ = f.SetCellValue(sheetName, "A2", "Room")
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(models.DateLayout))
	}
	for i, date := range dates {
		cell, err := excelize.CoordinatesToCellName(i+2, 2)
		if err != nil {
			return err
		}
		_ = f.SetCellValue(sheetName, cell, date)
	}

	for row, room := range rooms {
		cell, err := excelize.CoordinatesToCellName(1, row+3)
		if err != nil {
			return err
		}
		_ = f.SetCellValue(sheetName, cell, fmt.Sprintf("Room %d", room.ID))

		for col, date := range dates {
			guest := occupant(bookings, names, room.ID, date)
			if guest == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+2, row+3)
			if err != nil {
				return err
			}
			_ = f.SetCellValue(sheetName, cell, guest)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 16)

	lastCol, err := excelize.CoordinatesToCellName(len(dates)+1, 1)
	if err == nil {
		_ = f.MergeCell(sheetName, "A1", lastCol)
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)

	_ = f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving export file: %w", err)
	}
	return nil
}

// occupant returns the guest name for a room on a date. Checkout day itself
// is free: a booking covers [checkin, checkout).
func occupant(bookings []models.Booking, names map[int64]string, roomID int64, date string) string {
	for _, b := range bookings {
		if b.RoomID != roomID {
			continue
		}
		if b.Checkin <= date && date < b.Checkout {
			if name, ok := names[b.UserID]; ok {
				return name
			}
			return fmt.Sprintf("user %d", b.UserID)
		}
	}
	return ""
}
