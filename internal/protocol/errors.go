package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"
	ErrProtoVersion    = "E_PROTO_VERSION"

	// Planning.
	ErrBadRequest = "E_BAD_REQUEST"
	ErrBadRegion  = "E_BAD_REGION"
	ErrBusy       = "E_BUSY"
	ErrNoPath     = "E_NO_PATH"
	ErrCancelled  = "E_CANCELLED"
	ErrInternal   = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrProtoVersion:    {},
	ErrBadRequest:      {},
	ErrBadRegion:       {},
	ErrBusy:            {},
	ErrNoPath:          {},
	ErrCancelled:       {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
