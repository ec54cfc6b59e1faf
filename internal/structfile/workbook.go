package structfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names. Each sheet starts with a header row.
const (
	SheetNodes       = "Nodes"
	SheetMembers     = "Members"
	SheetSupports    = "Supports"
	SheetPointLoads  = "PointLoads"
	SheetMomentLoads = "MomentLoads"
)

var sheetHeaders = map[string][]interface{}{
	SheetNodes:       {"id", "x", "y"},
	SheetMembers:     {"id", "startNodeId", "endNodeId"},
	SheetSupports:    {"id", "nodeId", "type"},
	SheetPointLoads:  {"id", "nodeId", "fx", "fy", "case"},
	SheetMomentLoads: {"id", "nodeId", "mz", "case"},
}

var sheetOrder = []string{SheetNodes, SheetMembers, SheetSupports, SheetPointLoads, SheetMomentLoads}

func readWorkbook(r io.Reader) (frame.Structure, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return frame.Structure{}, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()

	var s frame.Structure
	err = eachRow(f, SheetNodes, 3, func(row []string) error {
		x, err := toFloat(row[1])
		if err != nil {
			return err
		}
		y, err := toFloat(row[2])
		if err != nil {
			return err
		}
		s.Nodes = append(s.Nodes, frame.Node{ID: row[0], X: x, Y: y})
		return nil
	})
	if err != nil {
		return frame.Structure{}, err
	}

	err = eachRow(f, SheetMembers, 3, func(row []string) error {
		s.Members = append(s.Members, frame.Member{ID: row[0], StartNodeID: row[1], EndNodeID: row[2]})
		return nil
	})
	if err != nil {
		return frame.Structure{}, err
	}

	err = eachRow(f, SheetSupports, 3, func(row []string) error {
		typ, err := frame.ParseSupportType(row[2])
		if err != nil {
			return err
		}
		s.Supports = append(s.Supports, frame.Support{ID: row[0], NodeID: row[1], Type: typ})
		return nil
	})
	if err != nil {
		return frame.Structure{}, err
	}

	err = eachRow(f, SheetPointLoads, 4, func(row []string) error {
		fx, err := toFloat(row[2])
		if err != nil {
			return err
		}
		fy, err := toFloat(row[3])
		if err != nil {
			return err
		}
		s.PointLoads = append(s.PointLoads, frame.PointLoad{
			ID: row[0], NodeID: row[1], Fx: fx, Fy: fy, Case: optional(row, 4),
		})
		return nil
	})
	if err != nil {
		return frame.Structure{}, err
	}

	err = eachRow(f, SheetMomentLoads, 3, func(row []string) error {
		mz, err := toFloat(row[2])
		if err != nil {
			return err
		}
		s.MomentLoads = append(s.MomentLoads, frame.MomentLoad{
			ID: row[0], NodeID: row[1], Mz: mz, Case: optional(row, 3),
		})
		return nil
	})
	if err != nil {
		return frame.Structure{}, err
	}

	return s, nil
}

// eachRow calls fn for every non-blank data row of a sheet. A missing sheet
// has no rows. Rows shorter than minCols are rejected.
func eachRow(f *excelize.File, sheet string, minCols int, fn func(row []string) error) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx < 0 {
		return nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("sheet %s: %w", sheet, err)
	}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		if len(row) < minCols {
			return fmt.Errorf("sheet %s row %d: expected at least %d columns, got %d", sheet, i+1, minCols, len(row))
		}
		for j := range row {
			row[j] = strings.TrimSpace(row[j])
		}
		if err := fn(row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func writeWorkbook(w io.Writer, s frame.Structure) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetNodes); err != nil {
		return err
	}
	for _, sheet := range sheetOrder[1:] {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	rows := map[string][][]interface{}{}
	for _, n := range s.Nodes {
		rows[SheetNodes] = append(rows[SheetNodes], []interface{}{n.ID, n.X, n.Y})
	}
	for _, m := range s.Members {
		rows[SheetMembers] = append(rows[SheetMembers], []interface{}{m.ID, m.StartNodeID, m.EndNodeID})
	}
	for _, sp := range s.Supports {
		rows[SheetSupports] = append(rows[SheetSupports], []interface{}{sp.ID, sp.NodeID, sp.Type.String()})
	}
	for _, pl := range s.PointLoads {
		rows[SheetPointLoads] = append(rows[SheetPointLoads], []interface{}{pl.ID, pl.NodeID, pl.Fx, pl.Fy, pl.Case})
	}
	for _, ml := range s.MomentLoads {
		rows[SheetMomentLoads] = append(rows[SheetMomentLoads], []interface{}{ml.ID, ml.NodeID, ml.Mz, ml.Case})
	}

	for _, sheet := range sheetOrder {
		header := sheetHeaders[sheet]
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		for i, row := range rows[sheet] {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return err
			}
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func toFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func optional(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
