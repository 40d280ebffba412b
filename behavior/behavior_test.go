package behavior_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpia/tetgen/behavior"
)

func TestParseDefaults(t *testing.T) {
	b, err := behavior.Parse("")
	require.NoError(t, err)
	assert.Equal(t, behavior.Default(), b)
}

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"p",
		"pq",
		"pq1.414a0.1",
		"pAzfe",
		"Y",
		"S200",
		"T1e-09",
		"o2",
		"pqaAYQVC",
	}
	for _, sw := range cases {
		sw := sw
		t.Run(sw, func(t *testing.T) {
			b, err := behavior.Parse(sw)
			require.NoError(t, err)
			again, err := behavior.Parse(b.String())
			require.NoError(t, err)
			assert.Equal(t, b, again)
		})
	}
}

func TestParseYRejectsNumericSuffix(t *testing.T) {
	_, err := behavior.Parse("Y2")
	require.Error(t, err)
}

func TestParseOrderRejectsBadValue(t *testing.T) {
	_, err := behavior.Parse("o3")
	require.Error(t, err)
}

func TestParseUnknownSwitch(t *testing.T) {
	_, err := behavior.Parse("pX")
	require.Error(t, err)
}

func TestParseQualityDefaultRatio(t *testing.T) {
	b, err := behavior.Parse("q")
	require.NoError(t, err)
	assert.Equal(t, 2.0, b.MinRatio)
}

func TestParseQualityExplicitRatio(t *testing.T) {
	b, err := behavior.Parse("q1.5")
	require.NoError(t, err)
	assert.Equal(t, 1.5, b.MinRatio)
}
