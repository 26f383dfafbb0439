// Package command implements the PulseAudio native protocol's command
// catalog: the closed set of request, reply, and notification payloads that
// travel inside control frames (see internal/frame), and their tagstruct
// encodings (see internal/tagstruct).
package command

// Tag identifies the kind of a control message: either a client request, a
// generic Reply/Error envelope, or an unsolicited server notification. The
// numeric values match the reference protocol's PA_COMMAND_* enum exactly —
// they travel on the wire as a plain u32 (see command.go's envelope codec).
type Tag uint32

const (
	TagError   Tag = 0
	TagTimeout Tag = 1 // pseudo-command, never sent on the wire
	TagReply   Tag = 2

	TagCreatePlaybackStream Tag = 3
	TagDeletePlaybackStream Tag = 4
	TagCreateRecordStream   Tag = 5
	TagDeleteRecordStream   Tag = 6
	TagExit                 Tag = 7
	TagAuth                 Tag = 8
	TagSetClientName        Tag = 9
	TagLookupSink           Tag = 10
	TagLookupSource         Tag = 11
	TagDrainPlaybackStream  Tag = 12
	TagStat                 Tag = 13
	TagGetPlaybackLatency   Tag = 14
	TagCreateUploadStream   Tag = 15
	TagDeleteUploadStream   Tag = 16
	TagFinishUploadStream   Tag = 17
	TagPlaySample           Tag = 18
	TagRemoveSample         Tag = 19

	TagGetServerInfo          Tag = 20
	TagGetSinkInfo            Tag = 21
	TagGetSinkInfoList        Tag = 22
	TagGetSourceInfo          Tag = 23
	TagGetSourceInfoList      Tag = 24
	TagGetModuleInfo          Tag = 25
	TagGetModuleInfoList      Tag = 26
	TagGetClientInfo          Tag = 27
	TagGetClientInfoList      Tag = 28
	TagGetSinkInputInfo       Tag = 29
	TagGetSinkInputInfoList   Tag = 30
	TagGetSourceOutputInfo    Tag = 31
	TagGetSourceOutputInfoList Tag = 32
	TagGetSampleInfo          Tag = 33
	TagGetSampleInfoList      Tag = 34
	TagSubscribe              Tag = 35

	TagSetSinkVolume      Tag = 36
	TagSetSinkInputVolume Tag = 37
	TagSetSourceVolume    Tag = 38

	TagSetSinkMute   Tag = 39
	TagSetSourceMute Tag = 40

	TagCorkPlaybackStream    Tag = 41
	TagFlushPlaybackStream   Tag = 42
	TagTriggerPlaybackStream Tag = 43

	TagSetDefaultSink   Tag = 44
	TagSetDefaultSource Tag = 45

	TagSetPlaybackStreamName Tag = 46
	TagSetRecordStreamName   Tag = 47

	TagKillClient       Tag = 48
	TagKillSinkInput    Tag = 49
	TagKillSourceOutput Tag = 50

	TagLoadModule   Tag = 51
	TagUnloadModule Tag = 52

	// Obsolete autoload commands, kept only so the catalog stays a total
	// mapping from wire value to name.
	TagAddAutoloadObsolete       Tag = 53
	TagRemoveAutoloadObsolete    Tag = 54
	TagGetAutoloadInfoObsolete   Tag = 55
	TagGetAutoloadInfoListObsolete Tag = 56

	TagGetRecordLatency     Tag = 57
	TagCorkRecordStream     Tag = 58
	TagFlushRecordStream    Tag = 59
	TagPrebufPlaybackStream Tag = 60

	// SERVER->CLIENT
	TagRequest             Tag = 61
	TagOverflow            Tag = 62
	TagUnderflow           Tag = 63
	TagPlaybackStreamKilled Tag = 64
	TagRecordStreamKilled  Tag = 65
	TagSubscribeEvent      Tag = 66

	TagMoveSinkInput    Tag = 67
	TagMoveSourceOutput Tag = 68

	TagSetSinkInputMute Tag = 69

	TagSuspendSink   Tag = 70
	TagSuspendSource Tag = 71

	TagSetPlaybackStreamBufferAttr Tag = 72
	TagSetRecordStreamBufferAttr  Tag = 73

	TagUpdatePlaybackStreamSampleRate Tag = 74
	TagUpdateRecordStreamSampleRate   Tag = 75

	// SERVER->CLIENT
	TagPlaybackStreamSuspended Tag = 76
	TagRecordStreamSuspended   Tag = 77
	TagPlaybackStreamMoved     Tag = 78
	TagRecordStreamMoved       Tag = 79

	TagUpdateRecordStreamProplist   Tag = 80
	TagUpdatePlaybackStreamProplist Tag = 81
	TagUpdateClientProplist         Tag = 82
	TagRemoveRecordStreamProplist   Tag = 83
	TagRemovePlaybackStreamProplist Tag = 84
	TagRemoveClientProplist         Tag = 85

	// SERVER->CLIENT
	TagStarted Tag = 86

	TagExtension Tag = 87

	TagGetCardInfo     Tag = 88
	TagGetCardInfoList Tag = 89
	TagSetCardProfile  Tag = 90

	TagClientEvent        Tag = 91
	TagPlaybackStreamEvent Tag = 92
	TagRecordStreamEvent  Tag = 93

	// SERVER->CLIENT
	TagPlaybackBufferAttrChanged Tag = 94
	TagRecordBufferAttrChanged   Tag = 95

	TagSetSinkPort   Tag = 96
	TagSetSourcePort Tag = 97

	TagSetSourceOutputVolume Tag = 98
	TagSetSourceOutputMute   Tag = 99

	TagSetPortLatencyOffset Tag = 100

	// BOTH DIRECTIONS
	TagEnableSrbchannel  Tag = 101
	TagDisableSrbchannel Tag = 102

	// BOTH DIRECTIONS
	TagRegisterMemfdShmid Tag = 103
)

// maxKnownTag bounds the closed set above; it exists only for valid().
const maxKnownTag = TagRegisterMemfdShmid

func (t Tag) valid() bool { return t <= maxKnownTag }

var tagNames = map[Tag]string{
	TagError: "Error", TagTimeout: "Timeout", TagReply: "Reply",
	TagCreatePlaybackStream: "CreatePlaybackStream", TagDeletePlaybackStream: "DeletePlaybackStream",
	TagCreateRecordStream: "CreateRecordStream", TagDeleteRecordStream: "DeleteRecordStream",
	TagExit: "Exit", TagAuth: "Auth", TagSetClientName: "SetClientName",
	TagLookupSink: "LookupSink", TagLookupSource: "LookupSource",
	TagDrainPlaybackStream: "DrainPlaybackStream", TagStat: "Stat",
	TagGetPlaybackLatency: "GetPlaybackLatency", TagCreateUploadStream: "CreateUploadStream",
	TagDeleteUploadStream: "DeleteUploadStream", TagFinishUploadStream: "FinishUploadStream",
	TagPlaySample: "PlaySample", TagRemoveSample: "RemoveSample",
	TagGetServerInfo: "GetServerInfo", TagGetSinkInfo: "GetSinkInfo",
	TagGetSinkInfoList: "GetSinkInfoList", TagGetSourceInfo: "GetSourceInfo",
	TagGetSourceInfoList: "GetSourceInfoList", TagGetModuleInfo: "GetModuleInfo",
	TagGetModuleInfoList: "GetModuleInfoList", TagGetClientInfo: "GetClientInfo",
	TagGetClientInfoList: "GetClientInfoList", TagGetSinkInputInfo: "GetSinkInputInfo",
	TagGetSinkInputInfoList: "GetSinkInputInfoList", TagGetSourceOutputInfo: "GetSourceOutputInfo",
	TagGetSourceOutputInfoList: "GetSourceOutputInfoList", TagGetSampleInfo: "GetSampleInfo",
	TagGetSampleInfoList: "GetSampleInfoList", TagSubscribe: "Subscribe",
	TagSetSinkVolume: "SetSinkVolume", TagSetSinkInputVolume: "SetSinkInputVolume",
	TagSetSourceVolume: "SetSourceVolume", TagSetSinkMute: "SetSinkMute",
	TagSetSourceMute: "SetSourceMute", TagCorkPlaybackStream: "CorkPlaybackStream",
	TagFlushPlaybackStream: "FlushPlaybackStream", TagTriggerPlaybackStream: "TriggerPlaybackStream",
	TagSetDefaultSink: "SetDefaultSink", TagSetDefaultSource: "SetDefaultSource",
	TagSetPlaybackStreamName: "SetPlaybackStreamName", TagSetRecordStreamName: "SetRecordStreamName",
	TagKillClient: "KillClient", TagKillSinkInput: "KillSinkInput",
	TagKillSourceOutput: "KillSourceOutput", TagLoadModule: "LoadModule",
	TagUnloadModule: "UnloadModule",
	TagAddAutoloadObsolete: "AddAutoloadObsolete", TagRemoveAutoloadObsolete: "RemoveAutoloadObsolete",
	TagGetAutoloadInfoObsolete: "GetAutoloadInfoObsolete", TagGetAutoloadInfoListObsolete: "GetAutoloadInfoListObsolete",
	TagGetRecordLatency: "GetRecordLatency", TagCorkRecordStream: "CorkRecordStream",
	TagFlushRecordStream: "FlushRecordStream", TagPrebufPlaybackStream: "PrebufPlaybackStream",
	TagRequest: "Request", TagOverflow: "Overflow", TagUnderflow: "Underflow",
	TagPlaybackStreamKilled: "PlaybackStreamKilled", TagRecordStreamKilled: "RecordStreamKilled",
	TagSubscribeEvent: "SubscribeEvent", TagMoveSinkInput: "MoveSinkInput",
	TagMoveSourceOutput: "MoveSourceOutput", TagSetSinkInputMute: "SetSinkInputMute",
	TagSuspendSink: "SuspendSink", TagSuspendSource: "SuspendSource",
	TagSetPlaybackStreamBufferAttr: "SetPlaybackStreamBufferAttr", TagSetRecordStreamBufferAttr: "SetRecordStreamBufferAttr",
	TagUpdatePlaybackStreamSampleRate: "UpdatePlaybackStreamSampleRate", TagUpdateRecordStreamSampleRate: "UpdateRecordStreamSampleRate",
	TagPlaybackStreamSuspended: "PlaybackStreamSuspended", TagRecordStreamSuspended: "RecordStreamSuspended",
	TagPlaybackStreamMoved: "PlaybackStreamMoved", TagRecordStreamMoved: "RecordStreamMoved",
	TagUpdateRecordStreamProplist: "UpdateRecordStreamProplist", TagUpdatePlaybackStreamProplist: "UpdatePlaybackStreamProplist",
	TagUpdateClientProplist: "UpdateClientProplist", TagRemoveRecordStreamProplist: "RemoveRecordStreamProplist",
	TagRemovePlaybackStreamProplist: "RemovePlaybackStreamProplist", TagRemoveClientProplist: "RemoveClientProplist",
	TagStarted: "Started", TagExtension: "Extension",
	TagGetCardInfo: "GetCardInfo", TagGetCardInfoList: "GetCardInfoList", TagSetCardProfile: "SetCardProfile",
	TagClientEvent: "ClientEvent", TagPlaybackStreamEvent: "PlaybackStreamEvent", TagRecordStreamEvent: "RecordStreamEvent",
	TagPlaybackBufferAttrChanged: "PlaybackBufferAttrChanged", TagRecordBufferAttrChanged: "RecordBufferAttrChanged",
	TagSetSinkPort: "SetSinkPort", TagSetSourcePort: "SetSourcePort",
	TagSetSourceOutputVolume: "SetSourceOutputVolume", TagSetSourceOutputMute: "SetSourceOutputMute",
	TagSetPortLatencyOffset: "SetPortLatencyOffset",
	TagEnableSrbchannel: "EnableSrbchannel", TagDisableSrbchannel: "DisableSrbchannel",
	TagRegisterMemfdShmid: "RegisterMemfdShmid",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Unknown"
}
