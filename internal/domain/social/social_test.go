package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFollowerScore(t *testing.T) {
	tests := []struct {
		followers int
		want      int
	}{
		{-5, 0},
		{0, 0},
		{9, 25},
		{99, 50},
		{999, 75},
		{9999, 100},
		{2_000_000, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FollowerScore(tt.followers), "followers=%d", tt.followers)
	}
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("GitHub")
	assert.NoError(t, err)
	assert.Equal(t, PlatformGitHub, p)
	assert.True(t, p.Syncable())

	p, err = ParsePlatform("linkedin")
	assert.NoError(t, err)
	assert.False(t, p.Syncable())

	_, err = ParsePlatform("myspace")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}
