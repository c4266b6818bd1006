package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported file type: expected .xlsx or .csv")

// Row is one candidate from an uploaded sheet.
type Row struct {
	Line   int // 1-based line in the file, header included
	Name   string
	Email  string
	Role   string
	Skills []string
}

type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type Result struct {
	Rows       []Row
	Errors     []RowError
	Duplicates int // rows whose email already appeared earlier in the file
}

// Parse reads a candidate sheet. The first row is a header naming the
// columns name, email, role and optionally skills (separated by ';').
// Column order does not matter.
func Parse(filename string, r io.Reader) (*Result, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

type columns struct {
	name, email, role, skills int
}

func headerColumns(header []string) (columns, error) {
	cols := columns{name: -1, email: -1, role: -1, skills: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "name", "full name", "candidate":
			cols.name = i
		case "email", "e-mail", "email address":
			cols.email = i
		case "role", "position":
			cols.role = i
		case "skills", "skill":
			cols.skills = i
		}
	}
	if cols.email < 0 {
		return cols, errors.New("header must contain an email column")
	}
	return cols, nil
}

func parseRows(rows [][]string) (*Result, error) {
	if len(rows) < 2 {
		return nil, errors.New("file must have a header row and at least one candidate row")
	}
	cols, err := headerColumns(rows[0])
	if err != nil {
		return nil, err
	}

	res := &Result{}
	seen := map[string]struct{}{}
	for i, raw := range rows[1:] {
		line := i + 2
		if blank(raw) {
			continue
		}

		email := strings.ToLower(cell(raw, cols.email))
		if email == "" {
			res.Errors = append(res.Errors, RowError{Line: line, Reason: "missing email"})
			continue
		}
		if _, err := mail.ParseAddress(email); err != nil {
			res.Errors = append(res.Errors, RowError{Line: line, Reason: "invalid email"})
			continue
		}
		if _, dup := seen[email]; dup {
			res.Duplicates++
			continue
		}
		seen[email] = struct{}{}

		res.Rows = append(res.Rows, Row{
			Line:   line,
			Name:   cell(raw, cols.name),
			Email:  email,
			Role:   cell(raw, cols.role),
			Skills: splitSkills(cell(raw, cols.skills)),
		})
	}
	return res, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func splitSkills(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
