package levelmeta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	// Example level.dat dump with the tag-object serialization shape
	dump := `{
  "Tag": "Compound",
  "Label": "",
  "Payload": [
    {
      "Tag": "Compound",
      "Label": "Data",
      "Payload": [
        {"Tag": "Long", "Label": "Time", "Payload": "00000000004C4B40"},
        {"Tag": "String", "Label": "LevelName", "Payload": "Skyblock Season 3"},
        {"Tag": "Long", "Label": "DayTime", "Payload": "0000000000001A2C"},
        {"Tag": "Byte", "Label": "Difficulty", "Payload": "02"}
      ]
    }
  ]
}`

	md, err := New().Extract(strings.NewReader(dump))
	require.NoError(t, err)

	require.NotNil(t, md.TimeTicks)
	require.Equal(t, int64(5000000), *md.TimeTicks)
	require.Equal(t, int64(208), md.DayNumber)
	require.Equal(t, "08:00", md.TimeOfDay)
	require.True(t, md.Daytime)
	require.Equal(t, "Skyblock Season 3", md.LevelName)
	require.NotNil(t, md.DayTimeTicks)
	require.Equal(t, int64(6700), *md.DayTimeTicks)
	require.Equal(t, "Normal", md.Difficulty)
}

func TestExtractor_ExtractTimeFallback(t *testing.T) {
	// Dumps without a Tag key on the Time entry still match via the loose
	// Label/Payload fallback.
	dump := `{"Data": [{"Label": "Time", "Payload": "1770"}]}`

	md, err := New().Extract(strings.NewReader(dump))
	require.NoError(t, err)
	require.NotNil(t, md.TimeTicks)
	require.Equal(t, int64(6000), *md.TimeTicks)
	require.Equal(t, "06:00", md.TimeOfDay)
	require.True(t, md.Daytime)
}

func TestExtractor_ExtractMissingFields(t *testing.T) {
	dump := `{"Tag": "Compound", "Label": "", "Payload": [
		{"Tag": "String", "Label": "LevelName", "Payload": "Empty World"}
	]}`

	md, err := New().Extract(strings.NewReader(dump))
	require.NoError(t, err)
	require.Nil(t, md.TimeTicks)
	require.Nil(t, md.DayTimeTicks)
	require.Empty(t, md.Difficulty)
	require.Equal(t, "Empty World", md.LevelName)

	// Missing fields contribute nothing to the summary
	require.Equal(t, "World: Empty World", Summary(md))
}

func TestExtractor_ExtractMalformed(t *testing.T) {
	_, err := New().Extract(strings.NewReader("{not json"))
	require.Error(t, err)
}

func TestParseHexPayload(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "zero padded", in: "00000000004C4B40", want: 5000000},
		{name: "all zeros", in: "00000000", want: 0},
		{name: "empty", in: "", want: 0},
		{name: "no padding", in: "FF", want: 255},
		{name: "lowercase", in: "0000abcd", want: 43981},
		{name: "0x prefix", in: "0x1A2C", want: 6700},
		{name: "garbage", in: "zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexPayload(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTimeDerivation(t *testing.T) {
	tests := []struct {
		ticks   int64
		day     int64
		hour    string
		daytime bool
	}{
		{ticks: 0, day: 0, hour: "00:00", daytime: false},
		{ticks: 6000, day: 0, hour: "06:00", daytime: true},
		{ticks: 17999, day: 0, hour: "17:00", daytime: true},
		{ticks: 18000, day: 0, hour: "18:00", daytime: false},
		{ticks: 23999, day: 0, hour: "23:00", daytime: false},
		{ticks: 24000, day: 1, hour: "00:00", daytime: false},
		{ticks: 5000000, day: 208, hour: "08:00", daytime: true},
	}

	for _, tt := range tests {
		dump := `{"Tag": "Long", "Label": "Time", "Payload": ` +
			`"` + hexTicks(tt.ticks) + `"}`
		md, err := New().Extract(strings.NewReader(dump))
		require.NoError(t, err)
		require.NotNil(t, md.TimeTicks, "ticks=%d", tt.ticks)
		require.Equal(t, tt.ticks, *md.TimeTicks)
		require.Equal(t, tt.day, md.DayNumber, "ticks=%d", tt.ticks)
		require.Equal(t, tt.hour, md.TimeOfDay, "ticks=%d", tt.ticks)
		require.Equal(t, tt.daytime, md.Daytime, "ticks=%d", tt.ticks)
	}
}

func hexTicks(ticks int64) string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = digits[ticks&0xF]
		ticks >>= 4
	}
	return string(out)
}

func TestDifficultyName(t *testing.T) {
	require.Equal(t, "Peaceful", DifficultyName(0))
	require.Equal(t, "Easy", DifficultyName(1))
	require.Equal(t, "Normal", DifficultyName(2))
	require.Equal(t, "Hard", DifficultyName(3))
	require.Equal(t, "Unknown", DifficultyName(4))
	require.Equal(t, "Unknown", DifficultyName(-1))
}

func TestSummary(t *testing.T) {
	dump := `{"Tag": "Compound", "Label": "", "Payload": [
		{"Tag": "Long", "Label": "Time", "Payload": "00000000004C4B40"},
		{"Tag": "String", "Label": "LevelName", "Payload": "Skyblock Season 3"},
		{"Tag": "Long", "Label": "DayTime", "Payload": "0000000000001A2C"},
		{"Tag": "Byte", "Label": "Difficulty", "Payload": "03"}
	]}`

	md, err := New().Extract(strings.NewReader(dump))
	require.NoError(t, err)

	want := "Time: Day 208, 08:00 (Daytime)\n" +
		"World: Skyblock Season 3\n" +
		"Day time: 6700 ticks\n" +
		"Difficulty: Hard"
	require.Equal(t, want, Summary(md))
}

func TestSummary_Nil(t *testing.T) {
	require.Equal(t, PlaceholderSummary, Summary(nil))
}
