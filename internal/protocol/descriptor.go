package protocol

import "fmt"

// Descriptor is one row of the compile-time packet table: the single
// source of truth for wire compatibility, in place of hand-written
// per-packet bookkeeping scattered through the codebase.
type Descriptor struct {
	ID         uint32
	Name       string
	MinSize    int
	MaxSize    int
	Compressed bool

	// Codec is nil for packets this core only needs to recognize and
	// forward (the gameplay/movement packets named out of scope by
	// this server). When nil, Registry.Decode returns the payload
	// unchanged; no byte of it is parsed.
	Codec Codec
}

// Codec encodes/decodes one packet's variable-shaped body. Decode
// receives the frame payload (without the id/length prefix, already
// stripped by the framing layer).
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(body []byte) (any, error)
}

// Registry is the live packet table, keyed by numeric id.
type Registry struct {
	byID   map[uint32]*Descriptor
	byName map[string]*Descriptor
}

// NewRegistry builds the full descriptor table. Handshake, asset, and
// world packets have concrete codecs; every other id in the ~230-entry
// range gets a passthrough descriptor so the table itself is
// exhaustive even though most of its entries carry no gameplay logic
// (entity simulation, combat, inventory, etc. remain out of this
// server's scope).
func NewRegistry() *Registry {
	r := &Registry{byID: make(map[uint32]*Descriptor), byName: make(map[string]*Descriptor)}
	for _, d := range coreDescriptors() {
		r.register(d)
	}
	registerPassthroughs(r)
	return r
}

func (r *Registry) register(d Descriptor) {
	cp := d
	r.byID[d.ID] = &cp
	r.byName[d.Name] = &cp
}

// RegisterPassthrough adds an id that this core recognizes only by
// number (no modeled shape) — used to round out the table across the
// full id space without inventing gameplay semantics for packets out
// of scope.
func (r *Registry) RegisterPassthrough(id uint32, name string, minSize, maxSize int) {
	r.register(Descriptor{ID: id, Name: name, MinSize: minSize, MaxSize: maxSize})
}

func (r *Registry) ByID(id uint32) (*Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

func (r *Registry) ByName(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Encode looks up id's descriptor and encodes v with its codec.
func (r *Registry) Encode(id uint32, v any) ([]byte, error) {
	d, ok := r.ByID(id)
	if !ok || d.Codec == nil {
		return nil, fmt.Errorf("protocol: no codec registered for packet id %d", id)
	}
	return d.Codec.Encode(v)
}

// Decode looks up id's descriptor and decodes body with its codec. If
// the descriptor has no codec (a passthrough entry), it returns the
// raw body unchanged.
func (r *Registry) Decode(id uint32, body []byte) (any, error) {
	d, ok := r.ByID(id)
	if !ok {
		return nil, fmt.Errorf("protocol: unknown packet id %d", id)
	}
	if d.Codec == nil {
		return body, nil
	}
	return d.Codec.Decode(body)
}
