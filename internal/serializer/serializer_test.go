package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactSerializationLiteral(t *testing.T) {
	env := Envelope{Success: true, Algorithm: "AES", Data: "AAA", IV: "0011", Mode: "CBC", KeySize: 256}

	out, err := Serialize(env, FormatCompact, "", 0)
	require.Nil(t, err)
	assert.Equal(t, "AES.AAA.0011.CBC.256", out)

	back, err := Deserialize(out, FormatCompact, "")
	require.Nil(t, err)
	assert.True(t, back.Success)
	assert.Equal(t, "AES", back.Algorithm)
	assert.Equal(t, "AAA", back.Data)
	assert.Equal(t, "0011", back.IV)
	assert.Equal(t, "CBC", back.Mode)
	assert.Equal(t, 256, back.KeySize)
}

func TestJSONRoundTrip(t *testing.T) {
	env := Envelope{Success: true, Algorithm: "AES", Data: "AAA", IV: "0011", Mode: "CBC", KeySize: 256}

	out, err := Serialize(env, FormatJSON, "", 12345)
	require.Nil(t, err)

	back, err := Deserialize(out, FormatJSON, "")
	require.Nil(t, err)
	assert.Equal(t, env, back)
}

func TestBase64RoundTrip(t *testing.T) {
	env := Envelope{Success: true, Algorithm: "AES", Data: "AAA", IV: "0011", Mode: "CBC", KeySize: 256}

	out, err := Serialize(env, FormatBase64, "", 0)
	require.Nil(t, err)

	back, err := Deserialize(out, FormatBase64, "")
	require.Nil(t, err)
	assert.Equal(t, env, back)
}

func TestAutoDetectFormat(t *testing.T) {
	env := Envelope{Success: true, Algorithm: "AES", Data: "AAA", IV: "0011", Mode: "CBC", KeySize: 256}

	jsonOut, _ := Serialize(env, FormatJSON, "", 0)
	compactOut, _ := Serialize(env, FormatCompact, "", 0)
	base64Out, _ := Serialize(env, FormatBase64, "", 0)

	gotJSON, err := Deserialize(jsonOut, "", "")
	require.Nil(t, err)
	assert.Equal(t, "AES", gotJSON.Algorithm)

	gotCompact, err := Deserialize(compactOut, "", "")
	require.Nil(t, err)
	assert.Equal(t, "AES", gotCompact.Algorithm)

	gotBase64, err := Deserialize(base64Out, "", "")
	require.Nil(t, err)
	assert.Equal(t, "AES", gotBase64.Algorithm)
}

func TestGetInfoDoesNotRequireCiphertext(t *testing.T) {
	env := Envelope{Success: true, Algorithm: "AES", Data: "AAA", IV: "0011", Mode: "CBC", KeySize: 256}
	out, _ := Serialize(env, FormatCompact, "", 0)

	info, err := GetInfo(out, "")
	require.Nil(t, err)
	assert.Equal(t, "AES", info.Algorithm)
	assert.Equal(t, "CBC", info.Mode)
	assert.True(t, info.HasIV)
	assert.Equal(t, FormatCompact, info.Format)
}
