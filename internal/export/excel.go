package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"logoped/internal/models"
)

var applicationColumns = []string{
	"Дата заявки", "Родитель", "Телефон", "Email", "Возраст",
	"Проблема", "Время приёма", "Комментарий", "Комментарий админа", "Статус",
}

var statusLabels = map[models.AppStatus]string{
	models.StatusNew:        "Новая",
	models.StatusInProgress: "В работе",
	models.StatusCompleted:  "Завершена",
	models.StatusRejected:   "Отказ",
}

// WriteApplicationsXLSX streams an XLSX report of applications to w,
// one row per application in the given order.
func WriteApplicationsXLSX(w io.Writer, apps []models.Application) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Заявки"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range applicationColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(applicationColumns), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}

	for rowIdx, app := range apps {
		status := statusLabels[app.Status]
		if status == "" {
			status = string(app.Status)
		}
		row := []any{
			app.CreatedAt.Format("02.01.2006 15:04"),
			app.ParentName,
			app.Phone,
			app.Email,
			app.ChildAge,
			app.Problem,
			app.PreferredTime,
			app.Comment,
			app.AdminComment,
			status,
		}
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
