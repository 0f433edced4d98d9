package assets

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeAudioCategoryConvertsDBToLinear(t *testing.T) {
	out, err := DecodeAudioCategory([]byte(`{"id":"ambient","volumeDb":-6}`))
	require.NoError(t, err)
	require.Equal(t, "ambient", out.ID)
	require.InDelta(t, math.Pow(10, -6.0/20), float64(out.Volume), 1e-6)
}

func TestDecodeAudioCategoryDefaultsToFullVolume(t *testing.T) {
	out, err := DecodeAudioCategory([]byte(`{"id":"silent"}`))
	require.NoError(t, err)
	require.Equal(t, float32(1.0), out.Volume)
}

func TestDecodeReverbEffectAcceptsBothAirAbsorptionSpellings(t *testing.T) {
	typo, err := DecodeReverbEffect([]byte(`{"airAbsorbptionHighFrequencyGainDb":-3}`))
	require.NoError(t, err)

	corrected, err := DecodeReverbEffect([]byte(`{"airAbsorptionHfGainDb":-3}`))
	require.NoError(t, err)

	require.InDelta(t, float64(typo.AirAbsorptionHFGain), float64(corrected.AirAbsorptionHFGain), 1e-6)
	require.InDelta(t, math.Pow(10, -3.0/20), float64(corrected.AirAbsorptionHFGain), 1e-6)
}

func TestDecodeReverbEffectDefaultsAirAbsorptionWhenAbsent(t *testing.T) {
	out, err := DecodeReverbEffect([]byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, float32(1.0), out.AirAbsorptionHFGain)
}

func TestDecodeReverbEffectOptionalID(t *testing.T) {
	withID, err := DecodeReverbEffect([]byte(`{"id":"cave"}`))
	require.NoError(t, err)
	require.True(t, withID.HasID)
	require.Equal(t, "cave", withID.ID)

	withoutID, err := DecodeReverbEffect([]byte(`{}`))
	require.NoError(t, err)
	require.False(t, withoutID.HasID)
}

func TestDecodeEnvironmentOptionalWaterTint(t *testing.T) {
	withTint, err := DecodeEnvironment([]byte(`{"id":"ocean","waterTint":{"r":10,"g":20,"b":200}}`))
	require.NoError(t, err)
	require.True(t, withTint.HasWaterTint)
	require.Equal(t, byte(10), withTint.WaterTintR)
	require.Equal(t, byte(20), withTint.WaterTintG)
	require.Equal(t, byte(200), withTint.WaterTintB)

	withoutTint, err := DecodeEnvironment([]byte(`{"id":"plains"}`))
	require.NoError(t, err)
	require.False(t, withoutTint.HasWaterTint)
}

func TestDecodeBlockTypeAndItem(t *testing.T) {
	block, err := DecodeBlockType([]byte(`{"id":1,"name":"stone","isTransparent":false,"isLiquid":false,"isReplaceable":false}`))
	require.NoError(t, err)
	require.Equal(t, int32(1), block.ID)
	require.Equal(t, "stone", block.Name)

	item, err := DecodeItem([]byte(`{"id":5,"name":"sword","maxStack":1}`))
	require.NoError(t, err)
	require.Equal(t, int32(5), item.ID)
	require.Equal(t, int32(1), item.MaxStack)
}
