package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageSpecDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/staking/stakers", nil)
	spec, err := parsePageSpec(r)
	require.NoError(t, err)
	assert.Equal(t, 1, spec.Page)
	assert.Equal(t, defaultPageSize, spec.PageSize)
}

func TestParsePageSpecExplicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/staking/stakers?page=3&pageSize=25", nil)
	spec, err := parsePageSpec(r)
	require.NoError(t, err)
	assert.Equal(t, 3, spec.Page)
	assert.Equal(t, 25, spec.PageSize)
}

func TestParsePageSpecCapsPageSize(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/staking/stakers?pageSize=9999", nil)
	spec, err := parsePageSpec(r)
	require.NoError(t, err)
	assert.Equal(t, maxPageSize, spec.PageSize)
}

func TestParsePageSpecRejectsInvalid(t *testing.T) {
	for _, qs := range []string{"page=0", "page=abc", "pageSize=-1", "pageSize=x"} {
		r := httptest.NewRequest("GET", "/api/staking/stakers?"+qs, nil)
		_, err := parsePageSpec(r)
		assert.Error(t, err, qs)
	}
}
