package protocol

// Packet identifiers. The wire protocol fixes ids for the
// handshake/world packets (0, 1, 11-14, 16, 20-22, 131-134, 223); the
// remaining control packets driving the join sequence and gameplay
// forwarding get a stable block assigned here rather than scattered
// through the code.
const (
	IDConnect       uint32 = 0
	IDDisconnect    uint32 = 1
	IDAuthGrant     uint32 = 11
	IDAuthToken     uint32 = 12
	IDServerAuthTok uint32 = 13
	IDConnectAccept uint32 = 14
	IDPasswordAccep uint32 = 16
	IDWorldSettings uint32 = 20
	IDWorldLoadProg uint32 = 21
	IDWorldLoadFin  uint32 = 22
	IDServerInfo    uint32 = 223

	IDSetChunk            uint32 = 131
	IDSetChunkHeightmap   uint32 = 132
	IDSetChunkTintmap     uint32 = 133
	IDSetChunkEnvironment uint32 = 134

	// Join-sequence and gameplay-forwarding packets: ids assigned by
	// this implementation.
	IDSetClientId  uint32 = 30
	IDViewRadius   uint32 = 31
	IDJoinWorld    uint32 = 32
	IDSetGameMode  uint32 = 33
	IDSetEntitySdd uint32 = 34
	IDEntityUpdate uint32 = 40
	IDPlayerOption uint32 = 50
	IDRequestAsset uint32 = 51
	IDClientMove   uint32 = 60
	IDPing         uint32 = 61
	IDClientReady  uint32 = 62

	// UpdateFamilyIDBase is the first id in the contiguous block this
	// implementation reserves for the ~60 UpdateXxx asset-family
	// packets; the assetfamily table allocates IDs sequentially from
	// this base (see internal/protocol/assetfamily).
	UpdateFamilyIDBase uint32 = 400
)
