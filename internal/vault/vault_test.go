package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	path, key, err := ParseRef("vault:secret/linkpage#sink_url")
	require.NoError(t, err)
	assert.Equal(t, "secret/linkpage", path)
	assert.Equal(t, "sink_url", key)

	for _, bad := range []string{
		"secret/linkpage#k",     // no prefix
		"vault:secret/linkpage", // no key
		"vault:secret#k",        // no mount/path split
		"vault:secret/app#",     // empty key
	} {
		_, _, err := ParseRef(bad)
		assert.ErrorIs(t, err, ErrBadRef, bad)
	}
}

func TestSplitMount(t *testing.T) {
	m, r := splitMount("secret/linkpage/prod")
	assert.Equal(t, "secret", m)
	assert.Equal(t, "linkpage/prod", r)
}
