package horoscope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignForBirthday(t *testing.T) {
	tests := []struct {
		birthday string
		want     Sign
	}{
		{"1990-01-01", Capricorn},
		{"1990-01-20", Aquarius},
		{"02-29", Pisces},
		{"1990-03-21", Aries},
		{"04-19", Aries},
		{"04-20", Taurus},
		{"1990-07-23", Leo},
		{"11-21", Scorpio},
		{"11-22", Sagittarius},
		{"1990-12-21", Sagittarius},
		{"12-22", Capricorn},
	}
	for _, tt := range tests {
		got, err := SignForBirthday(tt.birthday)
		require.NoError(t, err, tt.birthday)
		assert.Equal(t, tt.want, got, tt.birthday)
	}
}

func TestSignForBirthdayRejectsBadInput(t *testing.T) {
	for _, birthday := range []string{"", "1990", "13-01", "02-30", "1990-00-10", "ab-cd"} {
		_, err := SignForBirthday(birthday)
		assert.Error(t, err, birthday)
	}
}

func TestCleanup(t *testing.T) {
	in := "Dear Leo, Astroyogi astrologers see a calm day. keep spending low. rest well"
	got := cleanup(in)
	assert.False(t, strings.Contains(got, "Astroyogi"))
	assert.Contains(t, got, "Keep spending low")
	assert.Contains(t, got, "Rest well")
}
