package command

// PulseError is the error code carried by an Error reply envelope (see
// reply.go). The numeric values match the reference protocol exactly.
type PulseError uint32

const (
	ErrAccessDenied         PulseError = 1
	ErrCommand               PulseError = 2
	ErrInvalid               PulseError = 3
	ErrExist                 PulseError = 4
	ErrNoEntity              PulseError = 5
	ErrConnectionRefused     PulseError = 6
	ErrProtocol              PulseError = 7
	ErrTimeout               PulseError = 8
	ErrAuthKey               PulseError = 9
	ErrInternal              PulseError = 10
	ErrConnectionTerminated  PulseError = 11
	ErrKilled                PulseError = 12
	ErrInvalidServer         PulseError = 13
	ErrModInitFailed         PulseError = 14
	ErrBadState              PulseError = 15
	ErrNoData                PulseError = 16
	ErrVersion               PulseError = 17
	ErrTooLarge              PulseError = 18
	ErrNotSupported          PulseError = 19
	ErrUnknown               PulseError = 20
	ErrNoExtension           PulseError = 21
	ErrObsolete              PulseError = 22
	ErrNotImplemented        PulseError = 23
	ErrForked                PulseError = 24
	ErrIo                    PulseError = 25
	ErrBusy                  PulseError = 26
)

var pulseErrorNames = map[PulseError]string{
	ErrAccessDenied:        "access failure",
	ErrCommand:              "unknown command",
	ErrInvalid:              "invalid argument",
	ErrExist:                "entity exists",
	ErrNoEntity:             "no such entity",
	ErrConnectionRefused:    "connection refused",
	ErrProtocol:             "protocol error",
	ErrTimeout:              "timeout",
	ErrAuthKey:              "no authentication key",
	ErrInternal:             "internal error",
	ErrConnectionTerminated: "connection terminated",
	ErrKilled:               "entity killed",
	ErrInvalidServer:        "invalid server",
	ErrModInitFailed:        "module initialization failed",
	ErrBadState:             "bad state",
	ErrNoData:               "no data",
	ErrVersion:              "incompatible protocol version",
	ErrTooLarge:             "data too large",
	ErrNotSupported:         "operation not supported",
	ErrUnknown:              "error code unknown to this client",
	ErrNoExtension:          "extension does not exist",
	ErrObsolete:             "obsolete functionality",
	ErrNotImplemented:       "missing implementation",
	ErrForked:               "caller forked without exec",
	ErrIo:                   "io error",
	ErrBusy:                 "device or resource busy",
}

func (e PulseError) String() string {
	if name, ok := pulseErrorNames[e]; ok {
		return name
	}
	return "unknown error code"
}
