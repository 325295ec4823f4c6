package common

import (
	"encoding/json"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefIDWithYear(t *testing.T) {
	pattern := regexp.MustCompile(fmt.Sprintf(`^TF%d-[0-9A-F]{8}$`, time.Now().Year()))
	for i := 0; i < 100; i++ {
		id := NewRefID("TF", true)
		assert.Regexp(t, pattern, id)
	}
}

func TestNewRefIDWithoutYear(t *testing.T) {
	assert.Regexp(t, `^C2C-[0-9A-F]{8}$`, NewRefID("C2C-", false))
	assert.Regexp(t, `^CSC-[0-9A-F]{8}$`, NewRefID("CSC-", false))
	assert.Regexp(t, `^CT-[0-9A-F]{8}$`, NewRefID("CT-", false))
}

func TestUUIDint64Unique(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		require.False(t, seen[id], "duplicate id %d", id)
		require.Greater(t, id, int64(0))
		seen[id] = true
	}
}

func TestFieldTriState(t *testing.T) {
	var in struct {
		Absent Field `json:"absent"`
		Nil    Field `json:"nil"`
		Empty  Field `json:"empty"`
		Num    Field `json:"num"`
		Str    Field `json:"str"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"nil":null,"empty":"","num":42.5,"str":"x"}`), &in))

	assert.False(t, in.Absent.Present())
	assert.True(t, in.Nil.Present())
	assert.True(t, in.Nil.Null())
	assert.True(t, in.Nil.Blank())
	assert.True(t, in.Empty.Present())
	assert.False(t, in.Empty.Null())
	assert.True(t, in.Empty.EmptyString())
	assert.True(t, in.Empty.Blank())
	assert.False(t, in.Num.Blank())
	assert.Equal(t, 42.5, in.Num.Value())
	assert.Equal(t, "x", in.Str.Value())
}
