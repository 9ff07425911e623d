// Package xlsxexport renders the turn audit trail as an Excel workbook.
package xlsxexport

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"tabsplit/internal/domain"
)

const sheetName = "Turns"

// columns defines the header row of the turns sheet.
var columns = []interface{}{
	"Turn ID",
	"Kind",
	"Chat ID",
	"Model",
	"Provider",
	"Settled",
	"Refinement",
	"Currency",
	"Total",
	"Payer",
	"Participants",
	"Summary",
	"Created At",
}

// Write renders the given turns into an xlsx workbook on w. Split turns get
// plan columns filled from their payload; parse turns only carry metadata.
func Write(w io.Writer, turns []domain.SplitTurn) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	if err := f.SetSheetRow(sheetName, "A1", &columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range turns {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := turnToRow(&turns[i])
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func turnToRow(turn *domain.SplitTurn) []interface{} {
	row := make([]interface{}, len(columns))
	row[0] = turn.ID.String()
	row[1] = string(turn.Kind)
	row[2] = turn.ChatID
	row[3] = turn.Model
	row[4] = turn.Provider
	row[5] = turn.IsValid
	row[6] = turn.Refinement
	row[12] = turn.CreatedAt.Format(time.RFC3339)

	// Plan columns: only for split turns with a decodable payload.
	if turn.Kind != domain.TurnKindSplit || len(turn.Payload) == 0 {
		return row
	}
	var plan domain.SplitPlan
	if err := json.Unmarshal(turn.Payload, &plan); err != nil {
		return row
	}

	row[7] = plan.Currency
	row[8] = plan.Total
	row[9] = plan.Payer
	row[10] = len(plan.Participants)
	row[11] = plan.Summary
	return row
}
