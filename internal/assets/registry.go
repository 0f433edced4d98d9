package assets

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zytale/zytale-server/internal/protoerr"
	"github.com/zytale/zytale-server/internal/protocol/assetfamily"
)

// Registry holds every asset family's IndexedAssetMap and knows how to
// emit each family's UpdateXxx payload.
type Registry struct {
	AudioCategories  *IndexedAssetMap[AudioCategory]
	ReverbEffects    *IndexedAssetMap[ReverbEffect]
	EqualizerEffects *IndexedAssetMap[EqualizerEffect]
	TagPatterns      *IndexedAssetMap[tagPatternEntry]
	Trails           *IndexedAssetMap[Trail]
	Environments     *IndexedAssetMap[Environment]
	BlockTypes       *IndexedAssetMap[BlockType]
	Items            *IndexedAssetMap[Item]
}

type tagPatternEntry struct {
	body []byte
}

func NewRegistry() *Registry {
	return &Registry{
		AudioCategories:  NewIndexedAssetMap[AudioCategory](),
		ReverbEffects:    NewIndexedAssetMap[ReverbEffect](),
		EqualizerEffects: NewIndexedAssetMap[EqualizerEffect](),
		TagPatterns:      NewIndexedAssetMap[tagPatternEntry](),
		Trails:           NewIndexedAssetMap[Trail](),
		Environments:     NewIndexedAssetMap[Environment](),
		BlockTypes:       NewIndexedAssetMap[BlockType](),
		Items:            NewIndexedAssetMap[Item](),
	}
}

// familyDir is the ZIP directory prefix each modeled family's JSON
// files live under.
var familyDir = map[string]string{
	"AudioCategories":  "Server/Audio/AudioCategories/",
	"ReverbEffects":    "Server/Audio/ReverbEffects/",
	"EqualizerEffects": "Server/Audio/EqualizerEffects/",
	"TagPatterns":      "Server/TagPatterns/",
	"Trails":           "Server/Trails/",
	"Environments":     "Server/Environments/",
	"BlockTypes":       "Server/BlockTypes/",
	"Items":            "Server/Items/",
}

func assetID(entryPath string) string {
	base := path.Base(entryPath)
	return strings.TrimSuffix(base, ".json")
}

// LoadAll walks the archive's per-family directories concurrently
// (golang.org/x/sync/errgroup) decoding every .json entry. A malformed
// entry is logged and skipped; it never aborts the family load.
func (r *Registry) LoadAll(ctx context.Context, archive *Archive) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error { return loadFamily(archive, familyDir["AudioCategories"], DecodeAudioCategory, r.AudioCategories) })
	g.Go(func() error { return loadFamily(archive, familyDir["ReverbEffects"], DecodeReverbEffect, r.ReverbEffects) })
	g.Go(func() error { return loadFamily(archive, familyDir["EqualizerEffects"], DecodeEqualizerEffect, r.EqualizerEffects) })
	g.Go(func() error {
		return loadFamily(archive, familyDir["TagPatterns"], func(data []byte) (tagPatternEntry, error) {
			pat, err := DecodeTagPattern(data)
			if err != nil {
				return tagPatternEntry{}, err
			}
			return tagPatternEntry{body: EncodeTagPatternEntry(pat)}, nil
		}, r.TagPatterns)
	})
	g.Go(func() error { return loadFamily(archive, familyDir["Trails"], DecodeTrail, r.Trails) })
	g.Go(func() error { return loadFamily(archive, familyDir["Environments"], DecodeEnvironment, r.Environments) })
	g.Go(func() error { return loadFamily(archive, familyDir["BlockTypes"], DecodeBlockType, r.BlockTypes) })
	g.Go(func() error { return loadFamily(archive, familyDir["Items"], DecodeItem, r.Items) })

	return g.Wait()
}

func loadFamily[V any](archive *Archive, dir string, decode func([]byte) (V, error), into *IndexedAssetMap[V]) error {
	for _, p := range archive.Paths(dir) {
		if !strings.HasSuffix(p, ".json") {
			continue
		}
		data, err := archive.ReadFull(p)
		if err != nil {
			log.Printf("assets: read %s: %v (skipped)", p, protoerr.Wrap(protoerr.Resource, err))
			continue
		}
		v, err := decode(data)
		if err != nil {
			log.Printf("assets: decode %s: %v (skipped)", p, protoerr.Wrap(protoerr.Content, err))
			continue
		}
		into.Put(assetID(p), v)
	}
	return nil
}

// BuildUpdatePayloads returns one UpdateXxx payload per row of
// assetfamily.Table, in Init mode — exhaustively, including
// well-formed empty dictionaries for families this registry has no
// loader for yet.
func (r *Registry) BuildUpdatePayloads() map[uint32][]byte {
	out := make(map[uint32][]byte, len(assetfamily.Table))
	for _, f := range assetfamily.Table {
		var entries []assetfamily.Entry
		var maxID int32
		switch f.Name {
		case "AudioCategories":
			for _, e := range r.AudioCategories.All() {
				entries = append(entries, assetfamily.Entry{IntKey: e.Index, Body: EncodeAudioCategory(e.Value)})
			}
			maxID = r.AudioCategories.MaxID()
		case "ReverbEffects":
			for _, e := range r.ReverbEffects.All() {
				entries = append(entries, assetfamily.Entry{IntKey: e.Index, Body: EncodeReverbEffect(e.Value)})
			}
			maxID = r.ReverbEffects.MaxID()
		case "EqualizerEffects":
			for _, e := range r.EqualizerEffects.All() {
				entries = append(entries, assetfamily.Entry{IntKey: e.Index, Body: EncodeEqualizerEffect(e.Value)})
			}
			maxID = r.EqualizerEffects.MaxID()
		case "TagPatterns":
			for _, e := range r.TagPatterns.All() {
				entries = append(entries, assetfamily.Entry{StringKey: e.Key, Body: e.Value.body})
			}
		case "Trails":
			for _, e := range r.Trails.All() {
				entries = append(entries, assetfamily.Entry{StringKey: e.Key, Body: EncodeTrail(e.Value)})
			}
		case "Environments":
			for _, e := range r.Environments.All() {
				entries = append(entries, assetfamily.Entry{IntKey: e.Index, Body: EncodeEnvironment(e.Value)})
			}
			maxID = r.Environments.MaxID()
		case "BlockTypes":
			// ZYTALE_MINIMAL_BLOCKS=1
			// restricts this Update to the air entry (block id 0) only,
			// for quick manual smoke tests against a client without a
			// full block table loaded.
			minimal := os.Getenv("ZYTALE_MINIMAL_BLOCKS") == "1"
			for _, e := range r.BlockTypes.All() {
				if minimal && e.Value.ID != 0 {
					continue
				}
				entries = append(entries, assetfamily.Entry{IntKey: e.Index, Body: EncodeBlockType(e.Value)})
			}
			maxID = r.BlockTypes.MaxID()
		case "Items":
			for _, e := range r.Items.All() {
				entries = append(entries, assetfamily.Entry{IntKey: e.Index, Body: EncodeItem(e.Value)})
			}
			maxID = r.Items.MaxID()
		default:
			// Not yet backed by a loader: emit a well-formed empty
			// dictionary for this family.
		}
		out[f.ID] = f.BuildPayload(assetfamily.UpdateInit, maxID, entries)
	}
	return out
}

// Validate reports an error if any family in the table has no
// corresponding payload — a defensive check against a future table
// edit that outpaces BuildUpdatePayloads' switch.
func (r *Registry) Validate() error {
	payloads := r.BuildUpdatePayloads()
	for _, f := range assetfamily.Table {
		if _, ok := payloads[f.ID]; !ok {
			return fmt.Errorf("assets: no payload built for family %s (id %d)", f.Name, f.ID)
		}
	}
	return nil
}
