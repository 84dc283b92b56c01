package modlog

import "go-modlog/internal/changes"

// Field policies per entity type. Keys are the snapshot struct field names.
// Suppressed fields are internal caches or churn that would drown the log;
// unsupported fields change for real but have no human-renderable value
// (bitmasks, colour ints, asset hashes).

var channelPolicy = changes.Policy{
	Suppressed: []string{
		"PermissionOverwrites",
		"LastMessageID",
		"LastPinTimestamp",
		"MessageCount",
		"MemberCount",
		"Messages",
		"Recipients",
	},
	Unsupported: []string{"Flags"},
}

var rolePolicy = changes.Policy{
	Unsupported: []string{"Permissions", "Color", "Icon", "UnicodeEmoji"},
}

var guildPolicy = changes.Policy{
	Suppressed: []string{
		"Members",
		"Channels",
		"Threads",
		"Presences",
		"VoiceStates",
		"Roles",
		"Emojis",
		"Stickers",
		"StageInstances",
		"MemberCount",
		"JoinedAt",
		"Large",
		"Unavailable",
		"ApproximateMemberCount",
		"ApproximatePresenceCount",
		"Permissions",
	},
	Unsupported: []string{
		"Icon",
		"Splash",
		"DiscoverySplash",
		"Banner",
		"Features",
		"SystemChannelFlags",
	},
}

// memberPolicy peels the embedded User wrapper so its fields report under
// their own names. RolesOf is bound per ModLog instance, since resolving
// role names needs the live resolver.
var memberPolicy = changes.Policy{
	StripPrefix: []string{"User"},
	Suppressed:  []string{"GuildID", "JoinedAt", "Permissions", "PublicFlags"},
	Unsupported: []string{
		"Avatar",
		"Banner",
		"AccentColor",
		"Flags",
		"PremiumSince",
		"CommunicationDisabledUntil",
	},
	RoleKey: "Roles",
}
