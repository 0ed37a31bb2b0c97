package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableData(t *testing.T) {
	table := NewTableData("Name", "Type")

	assert.Equal(t, []string{"Name", "Type"}, table.Headers())
	assert.Empty(t, table.Rows())

	table.AddRow("a.txt", "file")
	table.AddRow("sub", "dir")

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a.txt", "file"}, rows[0])
	assert.Equal(t, []string{"sub", "dir"}, rows[1])
}

func TestPrintTable(t *testing.T) {
	table := NewTableData("Name", "Type")
	table.AddRow("a.txt", "file")
	table.AddRow("sub", "dir")

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, table))

	output := buf.String()
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "TYPE")
	assert.Contains(t, output, "a.txt")
	assert.Contains(t, output, "sub")
	assert.NotContains(t, output, "+")
}

func TestSimpleTable(t *testing.T) {
	pairs := [][2]string{
		{"Status", "healthy"},
		{"Uptime", "3m 2s"},
	}

	var buf bytes.Buffer
	require.NoError(t, SimpleTable(&buf, pairs))

	output := buf.String()
	assert.Contains(t, output, "Status")
	assert.Contains(t, output, "healthy")
	assert.Contains(t, output, "Uptime")
	assert.Contains(t, output, "3m 2s")
}
