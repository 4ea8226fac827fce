package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeature_MarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		feature Feature
		want    string
	}{
		{name: "bytes", feature: Feature{1, 2, 3}, want: "[1,2,3]"},
		{name: "empty", feature: Feature{}, want: "[]"},
		{name: "nil", feature: nil, want: "[]"},
		{name: "full range", feature: Feature{0, 255}, want: "[0,255]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.feature)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestFeature_UnmarshalJSON_NumberArray(t *testing.T) {
	var f Feature
	require.NoError(t, json.Unmarshal([]byte("[1,2,3]"), &f))
	assert.Equal(t, Feature{1, 2, 3}, f)

	require.NoError(t, json.Unmarshal([]byte("[]"), &f))
	assert.Empty(t, f)
}

func TestFeature_UnmarshalJSON_Base64(t *testing.T) {
	var f Feature
	require.NoError(t, json.Unmarshal([]byte(`"AQID"`), &f))
	assert.Equal(t, Feature{1, 2, 3}, f)

	err := json.Unmarshal([]byte(`"not base64!!"`), &f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid base64 feature")
}

func TestFeature_UnmarshalJSON_OutOfRange(t *testing.T) {
	var f Feature
	err := json.Unmarshal([]byte("[1,256]"), &f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestFeature_RoundTrip(t *testing.T) {
	in := Feature{10, 20, 30, 255}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Feature
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestAccount_FeatureEmbedding(t *testing.T) {
	acc := Account{ID: 1, UID: 7, Address: "0xabc", Feature: Feature{4, 5}}
	data, err := json.Marshal(acc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"feature":[4,5]`)
}
