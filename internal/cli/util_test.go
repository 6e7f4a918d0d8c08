package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigHelpers(t *testing.T) {
	data := map[string]interface{}{
		"scoring": map[string]interface{}{
			"minimum_score_threshold": 30,
		},
	}
	value, ok := getConfigValue(data, "scoring.minimum_score_threshold")
	require.True(t, ok)
	require.Equal(t, 30, value)

	require.NoError(t, setConfigValue(data, "scoring.minimum_score_threshold", 45))
	value, ok = getConfigValue(data, "scoring.minimum_score_threshold")
	require.True(t, ok)
	require.Equal(t, 45, value)

	require.NoError(t, setConfigValue(data, "spatial.spread_above", 60))
	value, ok = getConfigValue(data, "spatial.spread_above")
	require.True(t, ok)
	require.Equal(t, 60, value)
}

func TestParseValueCoercesTypes(t *testing.T) {
	require.Equal(t, true, parseValue("true"))
	require.Equal(t, int64(7), parseValue("7"))
	require.Equal(t, 0.5, parseValue("0.5"))
	require.Equal(t, "hello", parseValue("hello"))
}
