package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSort(t *testing.T) {
	fallback := []Sort{Desc("updated_at")}

	assert.Equal(t, fallback, ParseSort("", fallback...))
	assert.Equal(t, fallback, ParseSort(" , -", fallback...))
	assert.Equal(t, []Sort{Asc("name"), Desc("created_at")}, ParseSort("name, -created_at", fallback...))
	assert.Nil(t, ParseSort(""))
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "ASC", Asc("name").Direction())
	assert.Equal(t, "DESC", Desc("name").Direction())
}
