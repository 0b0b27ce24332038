package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"500ms", 500 * time.Millisecond},
		{"30s", 30 * time.Second},
		{"2h45m", 2*time.Hour + 45*time.Minute},
		{"1d", Day},
		{"2d", 2 * Day},
		{"1w", Week},
		{"1d12h", Day + 12*time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, in := range []string{"banana", "1x", "d"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDuration(in)
			assert.Error(t, err)
		})
	}
}

func TestDuration_YAMLRoundTrip(t *testing.T) {
	type wrapper struct {
		D Duration `yaml:"d"`
	}

	in := wrapper{D: Duration(90 * time.Second)}
	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	var out wrapper
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, in.D, out.D)
}
