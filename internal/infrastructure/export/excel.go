package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"career-advisor/internal/domain/interview"
	"career-advisor/internal/domain/resume"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet   = "Summary"
	keywordsSheet  = "Keywords"
	questionsSheet = "Questions"

	timeLayout = "2006-01-02 15:04:05"
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

type styles struct {
	title  int
	header int
	label  int
	wrap   int
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		s   styles
		err error
	)
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	}); err != nil {
		return s, err
	}
	if s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, err
	}
	if s.wrap, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorder,
	}); err != nil {
		return s, err
	}
	return s, nil
}

// sheet tracks the next free row while a two-column report is written.
type sheet struct {
	f    *excelize.File
	name string
	st   styles
	row  int
	err  error
}

func (s *sheet) set(cell string, v any) {
	if s.err != nil {
		return
	}
	s.err = s.f.SetCellValue(s.name, cell, v)
}

func (s *sheet) style(from, to string, style int) {
	if s.err != nil {
		return
	}
	s.err = s.f.SetCellStyle(s.name, from, to, style)
}

func (s *sheet) title(text string) {
	a, b := fmt.Sprintf("A%d", s.row), fmt.Sprintf("B%d", s.row)
	s.set(a, text)
	s.style(a, b, s.st.title)
	if s.err == nil {
		s.err = s.f.MergeCell(s.name, a, b)
	}
	s.row += 2
}

func (s *sheet) field(label string, v any) {
	a, b := fmt.Sprintf("A%d", s.row), fmt.Sprintf("B%d", s.row)
	s.set(a, label)
	s.style(a, a, s.st.label)
	s.set(b, v)
	s.style(b, b, s.st.wrap)
	s.row++
}

func (s *sheet) table(headers []string, rows [][]any) {
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, s.row)
		s.set(cell, h)
		s.style(cell, cell, s.st.header)
	}
	s.row++
	for _, r := range rows {
		for col, v := range r {
			cell, _ := excelize.CoordinatesToCellName(col+1, s.row)
			s.set(cell, v)
			s.style(cell, cell, s.st.wrap)
		}
		s.row++
	}
}

func newSheet(f *excelize.File, name string, st styles, widths ...float64) (*sheet, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(name, col, col, w); err != nil {
			return nil, err
		}
	}
	return &sheet{f: f, name: name, st: st, row: 1}, nil
}

func freezeHeader(f *excelize.File, name string) error {
	return f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func write(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ResumeAnalysis renders a resume analysis as a workbook with a summary
// sheet and a keyword sheet.
func ResumeAnalysis(jobTitle string, a resume.Analysis, generated time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create styles: %w", err)
	}

	sum, err := newSheet(f, summarySheet, st, 25, 80)
	if err != nil {
		return nil, err
	}
	sum.title("Resume Analysis Report")
	sum.field("Job Title:", jobTitle)
	sum.field("Generated:", generated.Format(timeLayout))
	sum.field("Strength Score:", a.StrengthScore)
	sum.field("Weaknesses:", strings.Join(a.Weaknesses, "\n"))
	sum.field("Suggestions:", strings.Join(a.Suggestions, "\n"))
	sum.field("Improvement Plan:", a.ImprovementPlan)
	if sum.err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", sum.err)
	}

	kw, err := newSheet(f, keywordsSheet, st, 30, 15)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(a.KeywordAnalysis.Present)+len(a.KeywordAnalysis.Missing))
	for _, k := range a.KeywordAnalysis.Present {
		rows = append(rows, []any{k, "Present"})
	}
	for _, k := range a.KeywordAnalysis.Missing {
		rows = append(rows, []any{k, "Missing"})
	}
	kw.table([]string{"Keyword", "Status"}, rows)
	if kw.err != nil {
		return nil, fmt.Errorf("failed to create keywords sheet: %w", kw.err)
	}
	if err := freezeHeader(f, keywordsSheet); err != nil {
		return nil, err
	}

	return write(f)
}

// InterviewPrep renders an interview preparation guide. Each question gets
// its own row, with the suggested answer when one exists.
func InterviewPrep(p interview.Prep, generated time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create styles: %w", err)
	}

	sum, err := newSheet(f, summarySheet, st, 25, 80)
	if err != nil {
		return nil, err
	}
	sum.title("Interview Preparation")
	sum.field("Job Title:", p.JobTitle)
	if p.CompanyName != "" {
		sum.field("Company:", p.CompanyName)
	}
	sum.field("Generated:", generated.Format(timeLayout))
	sum.field("Preparation Tips:", p.PreparationTips)
	if p.CompanyResearch != "" {
		sum.field("Company Research:", p.CompanyResearch)
	}
	if sum.err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", sum.err)
	}

	qs, err := newSheet(f, questionsSheet, st, 6, 60, 80)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(p.CommonQuestions))
	for i, q := range p.CommonQuestions {
		answer, _ := p.SuggestedAnswers.Get(q)
		rows = append(rows, []any{i + 1, q, answer})
	}
	qs.table([]string{"#", "Question", "Suggested Answer"}, rows)
	if qs.err != nil {
		return nil, fmt.Errorf("failed to create questions sheet: %w", qs.err)
	}
	if err := freezeHeader(f, questionsSheet); err != nil {
		return nil, err
	}

	return write(f)
}
