package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
)

func TestMethodLabel(t *testing.T) {
	assert.Equal(t, "direct", domain.DirectMethod().Label())
	assert.Equal(t, "redirected-from:amazon.nova-lite-v1:0",
		domain.RedirectedMethod("amazon.nova-lite-v1:0").Label())
}

func TestParseMethodLabel(t *testing.T) {
	m, err := domain.ParseMethodLabel("direct")
	require.NoError(t, err)
	assert.Equal(t, domain.MethodDirect, m.Kind)

	m, err = domain.ParseMethodLabel("redirected-from:amazon.nova-lite-v1:0")
	require.NoError(t, err)
	assert.Equal(t, domain.MethodRedirected, m.Kind)
	assert.Equal(t, "amazon.nova-lite-v1:0", m.Substitute)

	_, err = domain.ParseMethodLabel("redirected-from:")
	assert.Error(t, err)

	_, err = domain.ParseMethodLabel("cached")
	assert.Error(t, err)
}

func TestMethodJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(domain.RedirectedMethod("amazon.nova-lite-v1:0"))
	require.NoError(t, err)
	assert.Equal(t, `"redirected-from:amazon.nova-lite-v1:0"`, string(data))

	var m domain.Method
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, domain.RedirectedMethod("amazon.nova-lite-v1:0"), m)
}
