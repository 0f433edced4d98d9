package protocol

import "fmt"

// gameplayPassthroughs names the gameplay packet surface this server
// recognizes but forwards without semantics: entity simulation,
// inventory, combat, chat, and the rest of the client's input stream.
// Each entry is a descriptor with no codec, so Registry.Decode hands
// the raw body back and the connection's phase gate logs and moves on.
var gameplayPassthroughs = []struct {
	id   uint32
	name string
}{
	{63, "ClientTeleport"},
	{64, "ClientJump"},
	{65, "ClientCrouch"},
	{66, "ClientSprint"},
	{67, "ClientSwim"},
	{68, "ClientFly"},
	{70, "PlayerAction"},
	{71, "PlayerAnimation"},
	{72, "PlayerEmote"},
	{73, "PlayerRespawn"},
	{80, "BlockPlace"},
	{81, "BlockBreak"},
	{82, "BlockInteract"},
	{83, "BlockPick"},
	{90, "InventoryOpen"},
	{91, "InventoryClose"},
	{92, "InventoryMove"},
	{93, "InventoryDrop"},
	{94, "InventorySwap"},
	{95, "HotbarSelect"},
	{96, "ItemUse"},
	{97, "ItemConsume"},
	{98, "CraftRequest"},
	{100, "ChatMessage"},
	{101, "ChatCommand"},
	{102, "ChatWhisper"},
	{110, "EntityInteract"},
	{111, "EntityAttack"},
	{112, "EntityMount"},
	{113, "EntityDismount"},
	{120, "ContainerOpen"},
	{121, "ContainerClose"},
	{122, "ContainerSlotUpdate"},
	{140, "SetTimeOfDay"},
	{141, "SetWeather"},
	{142, "PlaySound"},
	{143, "StopSound"},
	{144, "PlayParticle"},
	{150, "CameraShake"},
	{151, "CameraMode"},
	{160, "HealthUpdate"},
	{161, "HungerUpdate"},
	{162, "StaminaUpdate"},
	{163, "ExperienceUpdate"},
	{170, "EffectApply"},
	{171, "EffectRemove"},
	{180, "MapMarkerAdd"},
	{181, "MapMarkerRemove"},
	{190, "PortalEnter"},
	{191, "PortalExit"},
	{200, "ObjectiveUpdate"},
	{201, "ObjectiveComplete"},
	{210, "PartyInvite"},
	{211, "PartyLeave"},
	{220, "Pong"},
	{221, "KeepAlive"},
	{222, "ServerStats"},
}

// registerPassthroughs rounds the descriptor table out to the full
// ~230-entry id space: first the named gameplay surface above, then
// reserved rows for every remaining id from 2 to 229, so a frame with
// any id below 230 resolves to a descriptor instead of an unknown-id
// protocol error. Ids 230 to 399, below the UpdateXxx block, stay
// unregistered.
func registerPassthroughs(r *Registry) {
	for _, p := range gameplayPassthroughs {
		r.RegisterPassthrough(p.id, p.name, 1, 1<<16)
	}
	for id := uint32(2); id < 230; id++ {
		if _, ok := r.byID[id]; !ok {
			r.RegisterPassthrough(id, fmt.Sprintf("Reserved%d", id), 0, 1<<16)
		}
	}
}
