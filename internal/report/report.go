// Package report renders frame analysis results as a PDF calculation report.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/phpdave11/gofpdf"
	"gonum.org/v1/plot/vg"
)

// Input is the header block of a report
type Input struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

// Data is everything a report prints. Results is required; Combinations
// adds the envelope table when set.
type Data struct {
	Input
	Structure    frame.Structure
	Results      *frame.AnalysisResults
	Combinations *nscp.CombinationAnalysis
	Date         time.Time

	// Embed a rendering of the frame
	Diagram bool
}

const lineHeight = 6.0

// Write renders the report as PDF to w
func Write(w io.Writer, data Data) error {
	if data.Results == nil {
		return fmt.Errorf("report: no analysis results")
	}
	if data.Title == "" {
		data.Title = "Frame Analysis Report"
	}
	if data.Date.IsZero() {
		data.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(data.Title, false)
	pdf.SetAuthor(data.Author, false)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, data.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, lineHeight, fmt.Sprintf("Project: %s", data.Project))
	pdf.Ln(lineHeight)
	pdf.Cell(0, lineHeight, fmt.Sprintf("Author: %s", data.Author))
	pdf.Ln(lineHeight)
	pdf.Cell(0, lineHeight, fmt.Sprintf("Date: %s", data.Date.Format("2006-01-02")))
	pdf.Ln(10)
	if data.Notes != "" {
		pdf.MultiCell(0, lineHeight, data.Notes, "", "L", false)
		pdf.Ln(4)
	}

	s := data.Structure
	heading(pdf, "Material and section")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, lineHeight, fmt.Sprintf("E = %.4g kPa    A = %.4g m2    I = %.4g m4 (all members)",
		frame.ElasticModulus, frame.SectionArea, frame.SecondMoment))
	pdf.Ln(10)

	if data.Diagram {
		if err := embedDiagram(pdf, data); err != nil {
			return err
		}
	}

	heading(pdf, "Nodes")
	rows := make([][]string, len(s.Nodes))
	for i, n := range s.Nodes {
		rows[i] = []string{n.ID, num(n.X), num(n.Y)}
	}
	table(pdf, []string{"Node", "x (m)", "y (m)"}, rows)

	heading(pdf, "Members")
	rows = make([][]string, len(s.Members))
	for i, m := range s.Members {
		rows[i] = []string{m.ID, m.StartNodeID, m.EndNodeID}
	}
	table(pdf, []string{"Member", "Start", "End"}, rows)

	heading(pdf, "Supports")
	rows = make([][]string, len(s.Supports))
	for i, sp := range s.Supports {
		rows[i] = []string{sp.ID, sp.NodeID, sp.Type.String()}
	}
	table(pdf, []string{"Support", "Node", "Type"}, rows)

	heading(pdf, "Loads")
	rows = nil
	for _, pl := range s.PointLoads {
		rows = append(rows, []string{pl.ID, pl.NodeID, num(pl.Fx), num(pl.Fy), "", caseOf(pl.Case)})
	}
	for _, ml := range s.MomentLoads {
		rows = append(rows, []string{ml.ID, ml.NodeID, "", "", num(ml.Mz), caseOf(ml.Case)})
	}
	table(pdf, []string{"Load", "Node", "Fx (kN)", "Fy (kN)", "Mz (kN-m)", "Case"}, rows)

	heading(pdf, "Support reactions")
	rows = make([][]string, len(data.Results.Reactions))
	for i, rx := range data.Results.Reactions {
		rows[i] = []string{rx.ID, rx.NodeID, num(rx.Fx), num(rx.Fy), num(rx.Mz)}
	}
	table(pdf, []string{"Support", "Node", "Fx (kN)", "Fy (kN)", "Mz (kN-m)"}, rows)

	if len(data.Results.SkippedMembers) > 0 {
		pdf.SetFont("Helvetica", "I", 10)
		for _, sk := range data.Results.SkippedMembers {
			pdf.Cell(0, lineHeight, fmt.Sprintf("Member %s was skipped: %s", sk.MemberID, sk.Reason))
			pdf.Ln(lineHeight)
		}
		pdf.Ln(4)
	}

	eq := frame.CheckEquilibrium(s, data.Results)
	heading(pdf, "Equilibrium check")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, lineHeight, fmt.Sprintf("Sum Fx = %.3e kN    Sum Fy = %.3e kN    Sum Mz = %.3e kN-m", eq.SumFx, eq.SumFy, eq.SumMz))
	pdf.Ln(lineHeight)
	status := "SATISFIED"
	if !eq.OK {
		status = "NOT SATISFIED"
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, lineHeight, fmt.Sprintf("Equilibrium %s (tolerance %.0e x %.4g)", status, frame.EquilibriumTolerance, eq.Scale))
	pdf.Ln(10)

	if data.Combinations != nil {
		heading(pdf, "Load combinations (NSCP 2015)")
		rows = make([][]string, len(data.Combinations.Combinations))
		for i, cr := range data.Combinations.Combinations {
			rows[i] = []string{cr.Combination.ID, cr.Combination.Description}
		}
		table(pdf, []string{"ID", "Combination"}, rows)

		heading(pdf, "Reaction envelope")
		rows = make([][]string, len(data.Combinations.Envelopes))
		for i, e := range data.Combinations.Envelopes {
			rows[i] = []string{e.SupportID, extreme(e.MinFx), extreme(e.MaxFx), extreme(e.MinFy), extreme(e.MaxFy), extreme(e.MinMz), extreme(e.MaxMz)}
		}
		table(pdf, []string{"Support", "min Fx", "max Fx", "min Fy", "max Fy", "min Mz", "max Mz"}, rows)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func embedDiagram(pdf *gofpdf.Fpdf, data Data) error {
	p, err := diagram.FramePlot(diagram.FrameDiagramData{Structure: data.Structure, Results: data.Results})
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("frame", opts, &buf)
	pdf.ImageOptions("frame", 10, pdf.GetY(), 150, 0, true, opts, 0, "")
	pdf.Ln(4)
	return nil
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, text)
	pdf.Ln(8)
}

func table(pdf *gofpdf.Fpdf, header []string, rows [][]string) {
	width := 180.0 / float64(len(header))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	for _, h := range header {
		pdf.CellFormat(width, lineHeight, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(rows) == 0 {
		pdf.CellFormat(width*float64(len(header)), lineHeight, "(none)", "1", 1, "C", false, 0, "")
	}
	for _, row := range rows {
		for i, cell := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(width, lineHeight, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func num(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func caseOf(tag string) string {
	if tag == "" {
		return string(nscp.Dead)
	}
	return tag
}

func extreme(e nscp.Extreme) string {
	if e.Combination == "" {
		return num(e.Value)
	}
	return fmt.Sprintf("%.3f (%s)", e.Value, e.Combination)
}
