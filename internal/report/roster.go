// Package report renders the student roster to spreadsheet form.
package report

import (
	"fmt"
	"strings"

	"github.com/schoolhq/registrar/internal/store"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Roster"

var headers = []string{"ID", "Name", "Class", "Roll No", "Courses", "Fees", "Fee Status"}

// WriteRoster writes all students to an .xlsx workbook at path, one row per
// record in store order.
func WriteRoster(path string, entries []store.Entry) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}

	for row, e := range entries {
		status := "Unpaid"
		if e.Student.FeePaid {
			status = "Paid"
		}
		values := []interface{}{
			e.ID,
			e.Student.Name,
			e.Student.Class,
			e.Student.RollNo,
			strings.Join(e.Student.Courses, ", "),
			e.Student.Fees,
			status,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}
