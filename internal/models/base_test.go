package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBValue(t *testing.T) {
	var empty JSONB
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	doc := JSONB(`{"runs":4}`)
	v, err = doc.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"runs":4}`), v)
}

func TestJSONBScan(t *testing.T) {
	var j JSONB

	require.NoError(t, j.Scan([]byte(`{"balls":6}`)))
	assert.Equal(t, JSONB(`{"balls":6}`), j)

	require.NoError(t, j.Scan(`{"balls":7}`))
	assert.Equal(t, JSONB(`{"balls":7}`), j)

	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j)

	assert.Error(t, j.Scan(42))
}

func TestJSONBMarshalEmptyIsNull(t *testing.T) {
	var empty JSONB
	out, err := empty.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
