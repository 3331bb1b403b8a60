package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelNumber(t *testing.T) {
	assert.Equal(t, 100, LevelNumber("L100"))
	assert.Equal(t, 600, LevelNumber("L600"))
	assert.Equal(t, 0, LevelNumber(LevelAlumni))
	assert.Equal(t, 0, LevelNumber(""))
	assert.Equal(t, 0, LevelNumber("level 300"))
}

func TestIsCanonicalLevel(t *testing.T) {
	for _, lvl := range CanonicalLevels {
		assert.True(t, IsCanonicalLevel(lvl))
	}
	assert.False(t, IsCanonicalLevel("L700"))
	assert.False(t, IsCanonicalLevel(LevelAlumni))
	assert.False(t, IsCanonicalLevel("l100"))
}

func TestMaxLevelNumber(t *testing.T) {
	s := Student{ProgramDurationYears: 4}
	assert.Equal(t, 400, s.MaxLevelNumber())
}
