package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "required": ["name", "count"],
  "properties": {
    "name":  {"type": "string"},
    "count": {"type": "integer", "minimum": 0}
  }
}`

func TestSchema_ValidateBytes(t *testing.T) {
	s, err := NewSchema(testSchema)
	require.NoError(t, err)

	ok := s.ValidateBytes([]byte(`{"name":"a","count":1}`))
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.Errors)

	bad := s.ValidateBytes([]byte(`{"name":3}`))
	assert.False(t, bad.Valid)
	require.Len(t, bad.Errors, 2)
	assert.Contains(t, bad.Summary(), "count")
}

func TestSchema_ValidateBytes_NotJSON(t *testing.T) {
	s := MustSchema(testSchema)

	res := s.ValidateBytes([]byte(`not json`))
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "INVALID_DOCUMENT", res.Errors[0].Code)
}

func TestSchema_ValidateValue(t *testing.T) {
	s := MustSchema(testSchema)

	res := s.ValidateValue(map[string]interface{}{"name": "a", "count": -1})
	assert.False(t, res.Valid)
}

func TestNewSchema_Invalid(t *testing.T) {
	_, err := NewSchema(`{"type": 12}`)
	assert.Error(t, err)

	assert.Panics(t, func() { MustSchema(`{`) })
}
