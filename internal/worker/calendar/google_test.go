package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGoogleEvent_MapsAllFields(t *testing.T) {
	start := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	payload := EntryPayload{
		Title:       "Release planning",
		Description: "Q3 scope",
		Location:    "Room 1",
		Start:       start,
		End:         start.Add(time.Hour),
	}

	ev := toGoogleEvent(payload)

	assert.Equal(t, "Release planning", ev.Summary)
	assert.Equal(t, "Q3 scope", ev.Description)
	assert.Equal(t, "Room 1", ev.Location)
	assert.Equal(t, "2025-06-01T14:00:00Z", ev.Start.DateTime)
	assert.Equal(t, "2025-06-01T15:00:00Z", ev.End.DateTime)
	assert.Equal(t, "UTC", ev.Start.TimeZone)
}

func TestToGoogleEvent_AlertOverrides(t *testing.T) {
	ev := toGoogleEvent(EntryPayload{Start: time.Now(), End: time.Now()})

	require.NotNil(t, ev.Reminders)
	assert.False(t, ev.Reminders.UseDefault)
	assert.Contains(t, ev.Reminders.ForceSendFields, "UseDefault")

	require.Len(t, ev.Reminders.Overrides, 3)
	var minutes []int64
	for _, o := range ev.Reminders.Overrides {
		assert.Equal(t, "popup", o.Method)
		minutes = append(minutes, o.Minutes)
	}
	assert.Equal(t, []int64{1440, 180, 30}, minutes)
}

func TestToGoogleEvent_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	start := time.Date(2025, 6, 1, 16, 0, 0, 0, loc)

	ev := toGoogleEvent(EntryPayload{Start: start, End: start.Add(time.Hour)})
	assert.Equal(t, "2025-06-01T14:00:00Z", ev.Start.DateTime)
}
