package validate

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeJSON(t *testing.T) {
	type req struct {
		Name string `json:"name"`
	}

	t.Run("decodes_known_fields", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Wedding"}`))
		var dst req
		assert.NoError(t, DecodeJSON(r, &dst))
		assert.Equal(t, "Wedding", dst.Name)
	})

	t.Run("rejects_unknown_fields", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Wedding","bogus":1}`))
		var dst req
		assert.Error(t, DecodeJSON(r, &dst))
	})
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	assert.False(t, IsUUID("not-a-uuid"))
	assert.False(t, IsUUID(""))
}
