package assetfamily

import "github.com/zytale/zytale-server/internal/protocol"

// boolField is a convenience constructor for an ExtraFixedField whose
// value is fixed at table-definition time (this core always emits the
// same value for these flags).
func boolField(name string, v bool) ExtraFixedField { return ExtraFixedField{Name: name, Bool: v} }

// Table is the full declarative UpdateXxx family list — the packet
// body generator is data, not code. Each row's ID is
// assigned sequentially from protocol.UpdateFamilyIDBase. Families with
// a fully modeled JSON asset schema in internal/assets are marked in
// the comment; the remainder emit well-formed empty dictionaries until
// a schema is added: families without a loader still emit a
// well-formed empty dictionary of the correct shape.
var Table = buildTable()

func buildTable() []Family {
	rows := []Family{
		// Modeled in internal/assets. AudioCategories' int-keyed,
		// no-extra-fields shape is pinned by the empty-baseline test
		// vector; Trails' string
		// -keyed shape is pinned by the same test (`01 00 00`, 3 bytes).
		{Name: "AudioCategories", KeyKind: KeyInt, HasMaxID: true},
		{Name: "ReverbEffects", KeyKind: KeyInt, HasMaxID: true},
		{Name: "EqualizerEffects", KeyKind: KeyInt, HasMaxID: true},
		{Name: "TagPatterns", KeyKind: KeyString, HasMaxID: false},
		{Name: "Trails", KeyKind: KeyString, HasMaxID: false},
		{Name: "Environments", KeyKind: KeyInt, HasMaxID: true, ExtraFixed: []ExtraFixedField{boolField("isIndoor", false)}},
		{Name: "BlockTypes", KeyKind: KeyInt, HasMaxID: true, ExtraFixed: []ExtraFixedField{
			boolField("rebuildMapGeometry", false),
			boolField("isTransparent", false),
			boolField("isLiquid", false),
			boolField("isReplaceable", false),
		}},
		// Items carries a two-word offset prologue ahead of its
		// dictionary; with no entries the payload is the bare 14-byte
		// fixed block (null-bits, mode, maxId, two offsets).
		{Name: "Items", KeyKind: KeyInt, HasMaxID: true, OffsetPrologue: 2},

		// Declared for wire completeness; not yet backed by a JSON
		// schema in internal/assets, so the registry always emits these
		// empty.
		{Name: "Biomes", KeyKind: KeyString},
		{Name: "Structures", KeyKind: KeyString},
		{Name: "Recipes", KeyKind: KeyString},
		{Name: "LootTables", KeyKind: KeyString},
		{Name: "EntityTypes", KeyKind: KeyInt, HasMaxID: true},
		{Name: "ParticleEffects", KeyKind: KeyString},
		{Name: "Animations", KeyKind: KeyString},
		{Name: "Models", KeyKind: KeyString},
		{Name: "Textures", KeyKind: KeyString},
		{Name: "Shaders", KeyKind: KeyString},
		{Name: "Materials", KeyKind: KeyString},
		{Name: "Skeletons", KeyKind: KeyString},
		{Name: "SoundEvents", KeyKind: KeyString},
		{Name: "MusicTracks", KeyKind: KeyString},
		{Name: "StatusEffects", KeyKind: KeyInt, HasMaxID: true},
		{Name: "Enchantments", KeyKind: KeyInt, HasMaxID: true},
		{Name: "CraftingStations", KeyKind: KeyString},
		{Name: "Tools", KeyKind: KeyInt, HasMaxID: true},
		{Name: "Armor", KeyKind: KeyInt, HasMaxID: true},
		{Name: "Weapons", KeyKind: KeyInt, HasMaxID: true},
		{Name: "Projectiles", KeyKind: KeyInt, HasMaxID: true},
		{Name: "Foods", KeyKind: KeyInt, HasMaxID: true},
		{Name: "Potions", KeyKind: KeyInt, HasMaxID: true},
		{Name: "Fluids", KeyKind: KeyInt, HasMaxID: true},
		{Name: "PlantGrowthStages", KeyKind: KeyString},
		{Name: "WeatherPatterns", KeyKind: KeyString},
		{Name: "TimeOfDayPresets", KeyKind: KeyString},
		{Name: "Achievements", KeyKind: KeyString},
		{Name: "Quests", KeyKind: KeyString},
		{Name: "Dialogues", KeyKind: KeyString},
		{Name: "NPCTypes", KeyKind: KeyInt, HasMaxID: true},
		{Name: "MountTypes", KeyKind: KeyInt, HasMaxID: true},
		{Name: "VehicleTypes", KeyKind: KeyInt, HasMaxID: true},
		{Name: "SkillTrees", KeyKind: KeyString},
		{Name: "Perks", KeyKind: KeyString},
		{Name: "FactionDefinitions", KeyKind: KeyString},
		{Name: "TradeGoods", KeyKind: KeyInt, HasMaxID: true},
		{Name: "Currencies", KeyKind: KeyString},
		{Name: "Banners", KeyKind: KeyString},
		{Name: "Decals", KeyKind: KeyString},
		{Name: "Fonts", KeyKind: KeyString},
		{Name: "UIThemes", KeyKind: KeyString},
		{Name: "Cutscenes", KeyKind: KeyString},
		{Name: "Cinematics", KeyKind: KeyString},
		{Name: "AmbientSoundscapes", KeyKind: KeyString},
		{Name: "FootstepSounds", KeyKind: KeyString},
		{Name: "ImpactSounds", KeyKind: KeyString},
		{Name: "VoiceLines", KeyKind: KeyString},
		{Name: "Localizations", KeyKind: KeyString},
		{Name: "ColorPalettes", KeyKind: KeyString},
		{Name: "DecorationSets", KeyKind: KeyString},
		{Name: "BuildingTemplates", KeyKind: KeyString},
		{Name: "CraftingTiers", KeyKind: KeyString},
		{Name: "ResourceNodes", KeyKind: KeyInt, HasMaxID: true},
		{Name: "SpawnTables", KeyKind: KeyString},
		{Name: "Collectibles", KeyKind: KeyString},
		{Name: "ClimateZones", KeyKind: KeyString},
	}
	for i := range rows {
		rows[i].ID = protocol.UpdateFamilyIDBase + uint32(i)
	}
	return rows
}

// ByName looks up a family row by its directory/packet name.
func ByName(name string) (Family, bool) {
	for _, f := range Table {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}
