package protocol

// coreDescriptors lists every packet this implementation gives a
// concrete shape to. Every other id in the ~230-entry id space that a
// real client may send is handled by the passthrough path (see
// passthrough.go). Min sizes are the exact smallest legal encoding of
// each shape; max sizes are generous ceilings for the variable fields.
func coreDescriptors() []Descriptor {
	return []Descriptor{
		{ID: IDConnect, Name: "Connect", MinSize: 47, MaxSize: 2048, Codec: connectCodec{}},
		{ID: IDConnectAccept, Name: "ConnectAccept", MinSize: 1, MaxSize: 512, Codec: connectAcceptCodec{}},
		{ID: IDAuthGrant, Name: "AuthGrant", MinSize: 9, MaxSize: 4096, Codec: twoVarStringCodec{name: "auth_grant"}},
		{ID: IDServerAuthTok, Name: "ServerAuthToken", MinSize: 9, MaxSize: 4096, Codec: twoVarStringCodec{name: "server_auth_token"}},
		{ID: IDAuthToken, Name: "AuthToken", MinSize: 9, MaxSize: 4096, Codec: twoVarStringCodec{name: "auth_token"}},
		{ID: IDPasswordAccep, Name: "PasswordAccepted", MinSize: 1, MaxSize: 1, Codec: passwordAcceptedCodec{}},
		{ID: IDDisconnect, Name: "Disconnect", MinSize: 2, MaxSize: 1024, Codec: disconnectCodec{}},
		{ID: IDWorldSettings, Name: "WorldSettings", MinSize: 5, MaxSize: 1 << 20, Codec: worldSettingsCodec{}},
		{ID: IDServerInfo, Name: "ServerInfo", MinSize: 15, MaxSize: 4096, Codec: serverInfoCodec{}},
		{ID: IDWorldLoadProg, Name: "WorldLoadProgress", MinSize: 9, MaxSize: 9, Codec: worldLoadProgressCodec{}},
		{ID: IDWorldLoadFin, Name: "WorldLoadFinished", MinSize: 1, MaxSize: 1, Codec: worldLoadFinishedCodec{}},

		{ID: IDSetClientId, Name: "SetClientId", MinSize: 5, MaxSize: 5, Codec: setClientIdCodec{}},
		{ID: IDViewRadius, Name: "ViewRadius", MinSize: 5, MaxSize: 5, Codec: viewRadiusCodec{}},
		{ID: IDJoinWorld, Name: "JoinWorld", MinSize: 17, MaxSize: 17, Codec: joinWorldCodec{}},
		{ID: IDSetGameMode, Name: "SetGameMode", MinSize: 2, MaxSize: 2, Codec: setGameModeCodec{}},
		{ID: IDSetEntitySdd, Name: "SetEntitySeed", MinSize: 5, MaxSize: 5, Codec: setEntitySeedCodec{}},
		{ID: IDEntityUpdate, Name: "EntityUpdates", MinSize: 2, MaxSize: 1 << 20, Codec: entityUpdatesCodec{}},
		{ID: IDPlayerOption, Name: "PlayerOptions", MinSize: 1, MaxSize: 4096, Codec: playerOptionsCodec{}},
		{ID: IDRequestAsset, Name: "RequestAssets", MinSize: 1, MaxSize: 4096, Codec: requestAssetsCodec{}},
		{ID: IDClientMove, Name: "ClientMovement", MinSize: 21, MaxSize: 21, Codec: clientMovementCodec{}},
		{ID: IDPing, Name: "Ping", MinSize: 9, MaxSize: 9, Codec: pingCodec{}},
		{ID: IDClientReady, Name: "ClientReady", MinSize: 1, MaxSize: 1, Codec: clientReadyCodec{}},

		{ID: IDSetChunk, Name: "SetChunk", MinSize: 25, MaxSize: 1 << 20, Codec: setChunkCodec{}},
		{ID: IDSetChunkHeightmap, Name: "SetChunkHeightmap", MinSize: 9, MaxSize: 2057, Codec: columnBlobCodec{name: "set_chunk_heightmap", blobSize: 2048}},
		{ID: IDSetChunkTintmap, Name: "SetChunkTintmap", MinSize: 9, MaxSize: 4105, Codec: columnBlobCodec{name: "set_chunk_tintmap", blobSize: 4096}},
		{ID: IDSetChunkEnvironment, Name: "SetChunkEnvironments", MinSize: 9, MaxSize: 1033, Codec: columnBlobCodec{name: "set_chunk_environments", blobSize: 1024}},
	}
}
