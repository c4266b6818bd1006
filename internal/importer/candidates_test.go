package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Name,Email,Role,Skills
Ada Lovelace,ADA@example.com,Backend,Go; SQL
Grace Hopper,,Compilers,
Alan Turing,not-an-email,Research,
,,,
Ada Again,ada@example.com,Backend,Go
Linus,linus@example.com,Kernel,
`

func TestParseCSV(t *testing.T) {
	res, err := Parse("candidates.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, Row{Line: 2, Name: "Ada Lovelace", Email: "ada@example.com", Role: "Backend", Skills: []string{"Go", "SQL"}}, res.Rows[0])
	assert.Equal(t, "linus@example.com", res.Rows[1].Email)
	assert.Nil(t, res.Rows[1].Skills)

	assert.Equal(t, []RowError{
		{Line: 3, Reason: "missing email"},
		{Line: 4, Reason: "invalid email"},
	}, res.Errors)
	assert.Equal(t, 1, res.Duplicates)
}

func TestParseCSV_ColumnOrderDoesNotMatter(t *testing.T) {
	res, err := Parse("x.CSV", strings.NewReader("email,skills,name\nbob@example.com,React,Bob\n"))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Bob", res.Rows[0].Name)
	assert.Equal(t, []string{"React"}, res.Rows[0].Skills)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("candidates.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse("c.csv", strings.NewReader("name,role\nBob,dev\n"))
	assert.ErrorContains(t, err, "email column")

	_, err = Parse("c.csv", strings.NewReader("name,email\n"))
	assert.Error(t, err)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Name", "Email", "Role", "Skills"},
		{"Ada Lovelace", "ada@example.com", "Backend", "Go;Kafka"},
		{"No Mail", "", "Frontend", "React"},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	res, err := Parse("candidates.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, []string{"Go", "Kafka"}, res.Rows[0].Skills)
	assert.Equal(t, []RowError{{Line: 3, Reason: "missing email"}}, res.Errors)
}
