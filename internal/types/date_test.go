package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Start *Date `json:"start"`
		End   *Date `json:"end"`
	}

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024-03-01","end":null}`), &w))
	require.NotNil(t, w.Start)
	assert.Nil(t, w.End)
	assert.Equal(t, time.March, w.Start.Month())

	out, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-03-01","end":null}`, string(out))
}

func TestDate_UnmarshalTimestamp(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-06-30T15:04:05Z"`), &d))
	assert.Equal(t, "2024-06-30", d.Format(DateLayout))
	assert.Equal(t, 0, d.Hour())
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"30/06/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestDate_EmptyString(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
	assert.Nil(t, d.Clone())
}

func TestDate_Clone(t *testing.T) {
	var nilDate *Date
	assert.Nil(t, nilDate.Clone())

	d := NewDate(2024, time.January, 15)
	c := d.Clone()
	require.NotNil(t, c)
	assert.NotSame(t, d, c)
	assert.Equal(t, 15, c.Day())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
}

func TestDate_ScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, d.Scan(ts))
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, ts, v)

	assert.Error(t, d.Scan("2024-05-01"))

	v, err = (&Date{}).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
