package inventory

import (
	"blood-portal/domain"
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	stockSheet   = "Stock"
	historySheet = "History"
)

var (
	StockReportHeader   = []string{"Blood Group", "Units", "Pending Demand", "Shortfall"}
	HistoryReportHeader = []string{"Time", "Blood Group", "Type", "Units", "Previous Units", "New Units", "Performed By", "Reason"}
)

// GenerateInventoryReport renders the stock summary and adjustment history
// into an XLSX workbook.
func GenerateInventoryReport(summary *domain.InventorySummary, history []*domain.InventoryHistoryEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(stockSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(historySheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FDE2E2"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	stockRows := make([][]interface{}, 0, len(summary.Groups)+1)
	for _, g := range summary.Groups {
		stockRows = append(stockRows, []interface{}{g.BloodGroup, g.Units, g.PendingDemand, g.Shortfall})
	}
	stockRows = append(stockRows, []interface{}{"Total", summary.TotalUnits, summary.TotalDemand, ""})
	if err := writeSheet(f, stockSheet, StockReportHeader, stockRows, headerStyle); err != nil {
		return nil, err
	}

	historyRows := make([][]interface{}, 0, len(history))
	for _, h := range history {
		historyRows = append(historyRows, []interface{}{
			h.CreatedAt.Format("2006-01-02 15:04:05"),
			h.BloodGroup,
			h.Type,
			h.Units,
			h.PreviousUnits,
			h.NewUnits,
			h.PerformedBy,
			h.Reason,
		})
	}
	if err := writeSheet(f, historySheet, HistoryReportHeader, historyRows, headerStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}, headerStyle int) error {
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("failed to convert column number: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return nil
}
