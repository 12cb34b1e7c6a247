package dataset

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	in := "City,Sales,Active\nTokyo,100,true\nOsaka,50.5,false\n,,\n"
	d, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"City", "Sales", "Active"}, d.Columns)
	require.Len(t, d.Rows, 3)

	require.Equal(t, "Tokyo", d.Rows[0]["City"])
	require.Equal(t, 100.0, d.Rows[0]["Sales"])
	require.Equal(t, true, d.Rows[0]["Active"])
	require.Equal(t, 50.5, d.Rows[1]["Sales"])
	// Empty cells read as null.
	require.Nil(t, d.Rows[2]["City"])
	require.Nil(t, d.Rows[2]["Sales"])
}

func TestParseCSV_HeaderNormalization(t *testing.T) {
	in := "Name,,Name\nfoo,bar,baz\n"
	d, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "column_2", "Name_2"}, d.Columns)
	require.Equal(t, "foo", d.Rows[0]["Name"])
	require.Equal(t, "baz", d.Rows[0]["Name_2"])
}

func TestParseCSV_RaggedRows(t *testing.T) {
	in := "A,B,C\n1,2\n"
	d, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 1.0, d.Rows[0]["A"])
	require.Nil(t, d.Rows[0]["C"])
}

func TestParseCSV_Empty(t *testing.T) {
	d, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, d.Columns)
	require.Empty(t, d.Rows)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"City", "Sales"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Tokyo", 100}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Osaka", 50.5}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	d, err := ParseXLSX(&buf)
	require.NoError(t, err)
	require.Equal(t, []string{"City", "Sales"}, d.Columns)
	require.Len(t, d.Rows, 2)
	require.Equal(t, "Tokyo", d.Rows[0]["City"])
	// Cells arrive as display strings and go through scalar parsing.
	require.Equal(t, 100.0, d.Rows[0]["Sales"])
	require.Equal(t, 50.5, d.Rows[1]["Sales"])
}

func TestInferMeta_Types(t *testing.T) {
	in := "N,B,S,M\n1,true,x,1\n2,false,y,z\n,,,\n"
	d, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, TypeNumber, d.Meta["N"].Type)
	require.Equal(t, TypeBoolean, d.Meta["B"].Type)
	require.Equal(t, TypeString, d.Meta["S"].Type)
	// Mixed numeric and text resolves to string.
	require.Equal(t, TypeString, d.Meta["M"].Type)
	require.Equal(t, 1, d.Meta["N"].NullCount)
	require.Equal(t, 2, d.Meta["N"].DistinctCount)
}

func TestExtract(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("City,Sales\n")
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&sb, "c%d,%d\n", i, i*10)
	}
	d, err := ParseCSV(strings.NewReader(sb.String()))
	require.NoError(t, err)

	s := Extract(d)
	require.Equal(t, []string{"City", "Sales"}, s.Columns)
	require.Equal(t, 8, s.RowCount)
	require.Len(t, s.SampleRows, 5)
	require.Equal(t, "number", s.ColumnTypes["Sales"])
	require.Equal(t, "string", s.ColumnTypes["City"])

	// Samples are copies; mutating them must not touch the dataset.
	s.SampleRows[0]["City"] = "mutated"
	require.Equal(t, "c0", d.Rows[0]["City"])
}

func TestExtract_EmptyAndNil(t *testing.T) {
	s := Extract(nil)
	require.NotNil(t, s.Columns)
	require.Zero(t, s.RowCount)

	s = Extract(&Dataset{Columns: []string{}, Rows: []Row{}})
	require.Empty(t, s.SampleRows)
	require.Zero(t, s.RowCount)
}
