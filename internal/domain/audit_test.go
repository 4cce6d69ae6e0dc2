package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeta_ThreeStates(t *testing.T) {
	absent := MetaAbsent()
	assert.False(t, absent.Present())
	assert.False(t, absent.Null())
	assert.Nil(t, absent.DatabaseValue())

	null := MetaNull()
	assert.True(t, null.Present())
	assert.True(t, null.Null())
	assert.Equal(t, []byte("null"), null.DatabaseValue())

	value, err := MetaValue(map[string]string{"reviewerId": "r1"})
	require.NoError(t, err)
	assert.True(t, value.Present())
	assert.False(t, value.Null())
	assert.JSONEq(t, `{"reviewerId":"r1"}`, string(value.DatabaseValue().([]byte)))
}

func TestMeta_ColumnRoundTrip(t *testing.T) {
	// SQL NULL scans as a nil slice.
	assert.False(t, MetaFromColumn(nil).Present())

	// jsonb null is the recorded "no metadata" state, distinct from absent.
	fromNull := MetaFromColumn([]byte("null"))
	assert.True(t, fromNull.Present())
	assert.True(t, fromNull.Null())

	fromValue := MetaFromColumn([]byte(`{"k":"v"}`))
	assert.True(t, fromValue.Present())
	assert.False(t, fromValue.Null())
	assert.JSONEq(t, `{"k":"v"}`, string(fromValue.Value()))
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleViewer))
	assert.True(t, RoleEditor.AtLeast(RoleEditor))
	assert.False(t, RoleViewer.AtLeast(RoleEditor))
	assert.False(t, Role("stranger").AtLeast(RoleViewer))
}
