package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXRenderer renders the attendee list as a spreadsheet, one numbered row
// per entry.
type XLSXRenderer struct{}

func (XLSXRenderer) Render(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	if err := f.SetCellValue(sheet, "A1", doc.Title); err != nil {
		return nil, err
	}
	row := 2
	for _, m := range doc.Meta {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m); err != nil {
			return nil, err
		}
		row++
	}
	row++

	for i, it := range doc.Items {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), it); err != nil {
			return nil, err
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXRenderer) Extension() string {
	return "xlsx"
}
