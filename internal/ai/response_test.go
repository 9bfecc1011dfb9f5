package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON_FencedAndUnfenced(t *testing.T) {
	raw := `{"make": "Toyota", "model": "Corolla", "color": "серый"}`
	fenced := "```json\n" + raw + "\n```"
	bareFence := "```\n" + raw + "\n```"

	var plain, withFence, withBareFence VehicleInfo
	require.NoError(t, decodeJSON(raw, &plain))
	require.NoError(t, decodeJSON(fenced, &withFence))
	require.NoError(t, decodeJSON(bareFence, &withBareFence))

	// Ответ в ограждениях разбирается так же, как без них
	assert.Equal(t, plain, withFence)
	assert.Equal(t, plain, withBareFence)
	assert.Equal(t, "Toyota", plain.Make)
}

func TestDecodeJSON_Garbage(t *testing.T) {
	var info VehicleInfo
	err := decodeJSON("к сожалению, не могу определить автомобиль", &info)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "невалидный JSON")
}

func TestDecodeJSON_Empty(t *testing.T) {
	var info VehicleInfo
	assert.Error(t, decodeJSON("", &info))
	assert.Error(t, decodeJSON("``````", &info))
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"без ограждений", `{"a":1}`, `{"a":1}`},
		{"json-ограждение", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"пустое ограждение", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"пробелы вокруг", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}
