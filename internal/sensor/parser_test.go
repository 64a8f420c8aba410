package sensor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemperature(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    float64
		wantErr bool
	}{
		{name: "vcgencmd", output: "temp=48.3'C\n", want: 48.3},
		{name: "integer value", output: "temp=48'C", want: 48},
		{name: "high value", output: "temp=82.1'C\n", want: 82.1},
		{name: "negative value", output: "temp=-3.2'C", want: -3.2},
		{name: "surrounded by noise", output: "firmware says: temp=61.7'C (soc)", want: 61.7},
		{name: "empty output", output: "", wantErr: true},
		{name: "no temperature", output: "command not found", wantErr: true},
		{name: "missing value", output: "temp='C", wantErr: true},
		{name: "missing unit", output: "temp=48.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTemperature(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseTemperatureErrorQuotesOutput(t *testing.T) {
	_, err := ParseTemperature("mailbox timeout")
	require.Error(t, err)
	require.Contains(t, err.Error(), "mailbox timeout")
}

func TestFormatCelsius(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{82, "82.0"},
		{65.53, "65.53"},
		{60.1, "60.1"},
		{0, "0.0"},
		{-5.25, "-5.25"},
		{100, "100.0"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FormatCelsius(tt.in), "FormatCelsius(%v)", tt.in)
	}
}
