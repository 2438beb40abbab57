package dining

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	t.Run("creates available table", func(t *testing.T) {
		table, err := NewTable("T-12", 4)
		require.NoError(t, err)
		assert.Equal(t, TableStatusAvailable, table.Status)
		assert.Equal(t, "T-12", table.Number)
	})

	t.Run("rejects blank number", func(t *testing.T) {
		_, err := NewTable("  ", 4)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		_, err := NewTable("T-12", 0)
		assert.Error(t, err)
	})
}

func TestChangeStatus(t *testing.T) {
	table, err := NewTable("T-12", 4)
	require.NoError(t, err)

	require.NoError(t, table.ChangeStatus(TableStatusOccupied))
	assert.Equal(t, TableStatusOccupied, table.Status)

	assert.Error(t, table.ChangeStatus(TableStatus("broken")))
	assert.Equal(t, TableStatusOccupied, table.Status)
}
