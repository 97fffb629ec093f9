package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentsTable() Table {
	return Table{
		Title:   "Payments",
		Columns: []Column{{Key: "id", Label: "ID", Width: 60}, {Key: "amount", Label: "Amount"}, {Key: "status"}},
		Rows: []map[string]string{
			{"id": "p-1", "amount": "1500.00", "status": "PAID"},
			{"id": "p-2", "amount": "200.50", "status": "PENDING"},
		},
		Footer: "generated for admin",
	}
}

func TestCSVRendererUsesLabelsAndColumnOrder(t *testing.T) {
	out, err := NewCSVRenderer().Render(paymentsTable())
	require.NoError(t, err)
	assert.Equal(t, "ID,Amount,status\np-1,1500.00,PAID\np-2,200.50,PENDING\n", string(out))
}

func TestRenderersRejectEmptyColumns(t *testing.T) {
	_, err := NewCSVRenderer().Render(Table{})
	assert.Error(t, err)
	_, err = NewPDFRenderer().Render(Table{})
	assert.Error(t, err)
}

func TestPDFRendererProducesDocument(t *testing.T) {
	out, err := NewPDFRenderer().Render(paymentsTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestColumnWidthsShareRemainingSpace(t *testing.T) {
	widths := columnWidths([]Column{{Width: 77}, {}, {}})
	assert.Equal(t, []float64{77, 100, 100}, widths)
}
