package assets

import (
	"encoding/json"
	"math"

	"github.com/zytale/zytale-server/internal/protocol"
)

func dbToLinear(db float64) float32 { return float32(math.Pow(10, db/20)) }

// AudioCategory: { id, volume } — volume is linear; the JSON
// source specifies dB.
type AudioCategory struct {
	ID     string
	Volume float32
}

type audioCategoryJSON struct {
	ID       string   `json:"id"`
	VolumeDB *float64 `json:"volumeDb"`
}

func DecodeAudioCategory(data []byte) (AudioCategory, error) {
	var raw audioCategoryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return AudioCategory{}, err
	}
	out := AudioCategory{ID: raw.ID}
	if raw.VolumeDB != nil {
		out.Volume = dbToLinear(*raw.VolumeDB)
	} else {
		out.Volume = 1.0
	}
	return out, nil
}

// ReverbEffect: 13 floats, one bool, optional id. The dB-denominated
// fields convert to linear at decode time. Both the source
// typo `AirAbsorbptionHighFrequencyGain` and the corrected
// `AirAbsorptionHFGain` spelling are accepted.
type ReverbEffect struct {
	ID    string
	HasID bool

	Density           float32
	Diffusion         float32
	Gain              float32
	HighFrequencyGain float32
	GainLowFrequency  float32
	DecayTime         float32
	DecayHFRatio      float32
	DecayLFRatio      float32
	ReflectionGain    float32
	ReflectionDelay   float32
	LateReverbGain    float32
	LateReverbDelay   float32
	AirAbsorptionHFGain float32
	RoomRolloffFactor float32
	Decorrelated      bool
}

type reverbEffectJSON struct {
	ID                *string  `json:"id"`
	Density           float64  `json:"density"`
	Diffusion         float64  `json:"diffusion"`
	GainDB            float64  `json:"gainDb"`
	HighFrequencyGainDB float64 `json:"highFrequencyGainDb"`
	GainLowFrequencyDB float64 `json:"gainLowFrequencyDb"`
	DecayTime         float64  `json:"decayTime"`
	DecayHFRatio      float64  `json:"decayHfRatio"`
	DecayLFRatio      float64  `json:"decayLfRatio"`
	ReflectionGainDB  float64  `json:"reflectionGainDb"`
	ReflectionDelay   float64  `json:"reflectionDelay"`
	LateReverbGainDB  float64  `json:"lateReverbGainDb"`
	LateReverbDelay   float64  `json:"lateReverbDelay"`
	AirAbsorbptionHighFrequencyGainDB *float64 `json:"airAbsorbptionHighFrequencyGainDb"`
	AirAbsorptionHFGainDB             *float64 `json:"airAbsorptionHfGainDb"`
	RoomRolloffFactor float64 `json:"roomRolloffFactor"`
	Decorrelated      bool    `json:"decorrelated"`
}

func DecodeReverbEffect(data []byte) (ReverbEffect, error) {
	var raw reverbEffectJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return ReverbEffect{}, err
	}
	out := ReverbEffect{
		Density:           float32(raw.Density),
		Diffusion:         float32(raw.Diffusion),
		Gain:              dbToLinear(raw.GainDB),
		HighFrequencyGain: dbToLinear(raw.HighFrequencyGainDB),
		GainLowFrequency:  dbToLinear(raw.GainLowFrequencyDB),
		DecayTime:         float32(raw.DecayTime),
		DecayHFRatio:      float32(raw.DecayHFRatio),
		DecayLFRatio:      float32(raw.DecayLFRatio),
		ReflectionGain:    dbToLinear(raw.ReflectionGainDB),
		ReflectionDelay:   float32(raw.ReflectionDelay),
		LateReverbGain:    dbToLinear(raw.LateReverbGainDB),
		LateReverbDelay:   float32(raw.LateReverbDelay),
		RoomRolloffFactor: float32(raw.RoomRolloffFactor),
		Decorrelated:      raw.Decorrelated,
	}
	switch {
	case raw.AirAbsorbptionHighFrequencyGainDB != nil:
		out.AirAbsorptionHFGain = dbToLinear(*raw.AirAbsorbptionHighFrequencyGainDB)
	case raw.AirAbsorptionHFGainDB != nil:
		out.AirAbsorptionHFGain = dbToLinear(*raw.AirAbsorptionHFGainDB)
	default:
		out.AirAbsorptionHFGain = 1.0
	}
	if raw.ID != nil {
		out.ID, out.HasID = *raw.ID, true
	}
	return out, nil
}

// EqualizerEffect: 10 floats, optional id.
type EqualizerEffect struct {
	ID    string
	HasID bool

	LowGain, LowCutoff             float32
	Mid1Gain, Mid1Center, Mid1Width float32
	Mid2Gain, Mid2Center, Mid2Width float32
	HighGain, HighCutoff           float32
}

type equalizerEffectJSON struct {
	ID         *string `json:"id"`
	LowGain    float64 `json:"lowGain"`
	LowCutoff  float64 `json:"lowCutoff"`
	Mid1Gain   float64 `json:"mid1Gain"`
	Mid1Center float64 `json:"mid1Center"`
	Mid1Width  float64 `json:"mid1Width"`
	Mid2Gain   float64 `json:"mid2Gain"`
	Mid2Center float64 `json:"mid2Center"`
	Mid2Width  float64 `json:"mid2Width"`
	HighGain   float64 `json:"highGain"`
	HighCutoff float64 `json:"highCutoff"`
}

func DecodeEqualizerEffect(data []byte) (EqualizerEffect, error) {
	var raw equalizerEffectJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return EqualizerEffect{}, err
	}
	out := EqualizerEffect{
		LowGain: float32(raw.LowGain), LowCutoff: float32(raw.LowCutoff),
		Mid1Gain: float32(raw.Mid1Gain), Mid1Center: float32(raw.Mid1Center), Mid1Width: float32(raw.Mid1Width),
		Mid2Gain: float32(raw.Mid2Gain), Mid2Center: float32(raw.Mid2Center), Mid2Width: float32(raw.Mid2Width),
		HighGain: float32(raw.HighGain), HighCutoff: float32(raw.HighCutoff),
	}
	if raw.ID != nil {
		out.ID, out.HasID = *raw.ID, true
	}
	return out, nil
}

// tagPatternJSON mirrors the recursive on-disk shape of protocol.TagPattern.
type tagPatternJSON struct {
	Type     byte             `json:"type"`
	TagIndex int32            `json:"tagIndex"`
	Operands []tagPatternJSON `json:"operands"`
	Negated  *tagPatternJSON  `json:"negated"`
}

func (t tagPatternJSON) toWire() protocol.TagPattern {
	out := protocol.TagPattern{Type: t.Type, TagIndex: t.TagIndex}
	if t.Operands != nil {
		out.HasOperands = true
		out.Operands = make([]protocol.TagPattern, len(t.Operands))
		for i, o := range t.Operands {
			out.Operands[i] = o.toWire()
		}
	}
	if t.Negated != nil {
		out.HasNegated = true
		neg := t.Negated.toWire()
		out.Negated = &neg
	}
	return out
}

// DecodeTagPattern decodes one on-disk TagPattern JSON record into its
// wire representation.
func DecodeTagPattern(data []byte) (protocol.TagPattern, error) {
	var raw tagPatternJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return protocol.TagPattern{}, err
	}
	return raw.toWire(), nil
}

// Edge is an Trail's optional color+width record.
type Edge struct {
	R, G, B, A byte
	Width      float32
}

// Trail: ~15 scalars plus two optional Edge records plus optional id
// and texture string.
type Trail struct {
	ID      string
	HasID   bool
	Texture string
	HasTex  bool

	Length, Width, FadeInTime, FadeOutTime float32
	MinVertexDistance                      float32
	TextureBlend                           float32
	Brightness                             float32
	Softness                               float32
	Stretch                                bool
	FaceCamera                             bool
	Additive                               bool
	LifeTime                               float32
	Segments                               int32
	TilingSpeed                            float32

	InnerEdge    *Edge
	HasInner     bool
	OuterEdge    *Edge
	HasOuter     bool
}

type edgeJSON struct {
	R     byte    `json:"r"`
	G     byte    `json:"g"`
	B     byte    `json:"b"`
	A     byte    `json:"a"`
	Width float64 `json:"width"`
}

type trailJSON struct {
	ID                 *string   `json:"id"`
	Texture             *string   `json:"texture"`
	Length               float64  `json:"length"`
	Width                float64  `json:"width"`
	FadeInTime           float64  `json:"fadeInTime"`
	FadeOutTime          float64  `json:"fadeOutTime"`
	MinVertexDistance    float64  `json:"minVertexDistance"`
	TextureBlend         float64  `json:"textureBlend"`
	Brightness           float64  `json:"brightness"`
	Softness             float64  `json:"softness"`
	Stretch              bool     `json:"stretch"`
	FaceCamera           bool     `json:"faceCamera"`
	Additive             bool     `json:"additive"`
	LifeTime             float64  `json:"lifeTime"`
	Segments             int32    `json:"segments"`
	TilingSpeed          float64  `json:"tilingSpeed"`
	InnerEdge            *edgeJSON `json:"innerEdge"`
	OuterEdge            *edgeJSON `json:"outerEdge"`
}

func DecodeTrail(data []byte) (Trail, error) {
	var raw trailJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Trail{}, err
	}
	out := Trail{
		Length: float32(raw.Length), Width: float32(raw.Width),
		FadeInTime: float32(raw.FadeInTime), FadeOutTime: float32(raw.FadeOutTime),
		MinVertexDistance: float32(raw.MinVertexDistance), TextureBlend: float32(raw.TextureBlend),
		Brightness: float32(raw.Brightness), Softness: float32(raw.Softness),
		Stretch: raw.Stretch, FaceCamera: raw.FaceCamera, Additive: raw.Additive,
		LifeTime: float32(raw.LifeTime), Segments: raw.Segments, TilingSpeed: float32(raw.TilingSpeed),
	}
	if raw.ID != nil {
		out.ID, out.HasID = *raw.ID, true
	}
	if raw.Texture != nil {
		out.Texture, out.HasTex = *raw.Texture, true
	}
	if raw.InnerEdge != nil {
		out.InnerEdge = &Edge{R: raw.InnerEdge.R, G: raw.InnerEdge.G, B: raw.InnerEdge.B, A: raw.InnerEdge.A, Width: float32(raw.InnerEdge.Width)}
		out.HasInner = true
	}
	if raw.OuterEdge != nil {
		out.OuterEdge = &Edge{R: raw.OuterEdge.R, G: raw.OuterEdge.G, B: raw.OuterEdge.B, A: raw.OuterEdge.A, Width: float32(raw.OuterEdge.Width)}
		out.HasOuter = true
	}
	return out, nil
}

// Environment: id plus optional RGB water tint. This core uses
// the water tint as the world.TintSource default-override hook.
type Environment struct {
	ID string

	WaterTintR, WaterTintG, WaterTintB byte
	HasWaterTint                      bool
}

type environmentJSON struct {
	ID        string `json:"id"`
	WaterTint *struct {
		R, G, B byte
	} `json:"waterTint"`
}

func DecodeEnvironment(data []byte) (Environment, error) {
	var raw environmentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Environment{}, err
	}
	out := Environment{ID: raw.ID}
	if raw.WaterTint != nil {
		out.WaterTintR, out.WaterTintG, out.WaterTintB = raw.WaterTint.R, raw.WaterTint.G, raw.WaterTint.B
		out.HasWaterTint = true
	}
	return out, nil
}

// BlockType is the minimal per-block metadata needed by the world and
// the BlockTypes UpdateXxx family.
type BlockType struct {
	ID            int32
	Name          string
	IsTransparent bool
	IsLiquid      bool
	IsReplaceable bool
}

type blockTypeJSON struct {
	ID            int32  `json:"id"`
	Name          string `json:"name"`
	IsTransparent bool   `json:"isTransparent"`
	IsLiquid      bool   `json:"isLiquid"`
	IsReplaceable bool   `json:"isReplaceable"`
}

func DecodeBlockType(data []byte) (BlockType, error) {
	var raw blockTypeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return BlockType{}, err
	}
	return BlockType(raw), nil
}

// Item is the minimal per-item metadata for the Items family.
type Item struct {
	ID        int32
	Name      string
	MaxStack  int32
}

type itemJSON struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	MaxStack int32  `json:"maxStack"`
}

func DecodeItem(data []byte) (Item, error) {
	var raw itemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Item{}, err
	}
	return Item(raw), nil
}
