// internal/workers/agent/search-web/activity_test.go
package searchweb

import (
	"testing"

	"websearch-action/internal/common/validation"
	"websearch-action/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity(t *testing.T) {
	a := Activity(nil)

	assert.Equal(t, TaskType, a.ID)
	assert.Equal(t, DefaultFunctionName, a.FunctionName)
	assert.Equal(t, "10s", a.Timeout)
	assert.Contains(t, a.ErrorCodes, "EVENT_DECODE_FAILED")
	assert.Equal(t, "object", a.OutputSchema["type"])

	reg := &registry.ActivityRegistry{}
	reg.Upsert(a)
	require.NoError(t, reg.Validate())
}

func TestEventSchema_AcceptsSampleEvents(t *testing.T) {
	schema := validation.MustSchema(EventSchema)

	for _, raw := range []string{
		`{}`,
		`{"parameters":{"query":"x"}}`,
		`{"parameters":[{"name":"query","value":"x"}]}`,
		`{"actionGroup":"a","requestBody":{"content":{"application/json":{"properties":[{"name":"query","value":"x"}]}}}}`,
	} {
		res := schema.ValidateBytes([]byte(raw))
		assert.True(t, res.Valid, "%s: %s", raw, res.Summary())
	}
}
