package constants

import "time"

const (
	CHANNEL_SIZE        = 100 // hub/broker channel buffer
	SESSION_SEND_BUFFER = 64  // per-session outbound buffer

	MESSAGE_PREVIEW_LEN = 50 // notification preview, runes

	PRESENCE_TTL = 24 * time.Hour // stale presence entries default to offline

	DEFAULT_PAGE_LIMIT = 10
	MAX_PAGE_LIMIT     = 100
)
