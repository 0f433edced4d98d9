package assets

import (
	"github.com/zytale/zytale-server/internal/protocol"
	"github.com/zytale/zytale-server/internal/wire"
)

// Each EncodeXxx function produces one dictionary entry's asset body —
// the bytes that follow the entry's key (int32 index or VarString) in
// an UpdateXxx payload.

func EncodeAudioCategory(a AudioCategory) []byte {
	w := protocol.NewFixedWriter(0)
	var v [4]byte
	wire.PutFloat32(v[:], a.Volume)
	w.PutFixed(v[:]...)
	return w.Bytes()
}

const reverbBitID = 0

func EncodeReverbEffect(r ReverbEffect) []byte {
	w := protocol.NewFixedWriter(0)
	w.SetBit(reverbBitID, r.HasID)
	var f [4]byte
	for _, val := range []float32{
		r.Density, r.Diffusion, r.Gain, r.HighFrequencyGain, r.GainLowFrequency,
		r.DecayTime, r.DecayHFRatio, r.DecayLFRatio, r.ReflectionGain, r.ReflectionDelay,
		r.LateReverbGain, r.LateReverbDelay, r.AirAbsorptionHFGain, r.RoomRolloffFactor,
	} {
		wire.PutFloat32(f[:], val)
		w.PutFixed(f[:]...)
	}
	if r.Decorrelated {
		w.PutFixed(1)
	} else {
		w.PutFixed(0)
	}
	out := w.Bytes()
	if r.HasID {
		out = append(out, wire.AppendVarString(nil, r.ID)...)
	}
	return out
}

const equalizerBitID = 0

func EncodeEqualizerEffect(e EqualizerEffect) []byte {
	w := protocol.NewFixedWriter(0)
	w.SetBit(equalizerBitID, e.HasID)
	var f [4]byte
	for _, val := range []float32{
		e.LowGain, e.LowCutoff, e.Mid1Gain, e.Mid1Center, e.Mid1Width,
		e.Mid2Gain, e.Mid2Center, e.Mid2Width, e.HighGain, e.HighCutoff,
	} {
		wire.PutFloat32(f[:], val)
		w.PutFixed(f[:]...)
	}
	out := w.Bytes()
	if e.HasID {
		out = append(out, wire.AppendVarString(nil, e.ID)...)
	}
	return out
}

func EncodeTagPatternEntry(t protocol.TagPattern) []byte {
	return protocol.EncodeTagPattern(nil, &t, 0)
}

const (
	trailBitInner   = 0
	trailBitOuter   = 1
	trailBitID      = 2
	trailBitTexture = 3
)

func EncodeTrail(t Trail) []byte {
	w := protocol.NewFixedWriter(4)
	var f [4]byte
	for _, val := range []float32{
		t.Length, t.Width, t.FadeInTime, t.FadeOutTime, t.MinVertexDistance,
		t.TextureBlend, t.Brightness, t.Softness, t.LifeTime, t.TilingSpeed,
	} {
		wire.PutFloat32(f[:], val)
		w.PutFixed(f[:]...)
	}
	flags := byte(0)
	if t.Stretch {
		flags |= 1
	}
	if t.FaceCamera {
		flags |= 2
	}
	if t.Additive {
		flags |= 4
	}
	w.PutFixed(flags)
	var seg [4]byte
	wire.PutInt32(seg[:], t.Segments)
	w.PutFixed(seg[:]...)

	if t.HasInner {
		w.WriteVariable(0, trailBitInner, encodeEdgeWithWidth(t.InnerEdge))
	} else {
		w.SkipVariable(0, trailBitInner)
	}
	if t.HasOuter {
		w.WriteVariable(1, trailBitOuter, encodeEdgeWithWidth(t.OuterEdge))
	} else {
		w.SkipVariable(1, trailBitOuter)
	}
	if t.HasID {
		w.WriteVariable(2, trailBitID, wire.AppendVarString(nil, t.ID))
	} else {
		w.SkipVariable(2, trailBitID)
	}
	if t.HasTex {
		w.WriteVariable(3, trailBitTexture, wire.AppendVarString(nil, t.Texture))
	} else {
		w.SkipVariable(3, trailBitTexture)
	}
	return w.Bytes()
}

func encodeEdgeWithWidth(e *Edge) []byte {
	var width [4]byte
	wire.PutFloat32(width[:], e.Width)
	return append([]byte{e.R, e.G, e.B, e.A}, width[:]...)
}

const environmentBitTint = 0

func EncodeEnvironment(e Environment) []byte {
	w := protocol.NewFixedWriter(0)
	w.SetBit(environmentBitTint, e.HasWaterTint)
	w.PutFixed(e.WaterTintR, e.WaterTintG, e.WaterTintB)
	return w.Bytes()
}

func EncodeBlockType(b BlockType) []byte {
	return wire.AppendVarString(nil, b.Name)
}

func EncodeItem(i Item) []byte {
	buf := wire.AppendVarString(nil, i.Name)
	var maxStack [4]byte
	wire.PutInt32(maxStack[:], i.MaxStack)
	return append(buf, maxStack[:]...)
}
