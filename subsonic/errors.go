package subsonic

import "strconv"

// ErrorCode is a Subsonic protocol error code.
type ErrorCode int

const (
	CodeGeneric            ErrorCode = 0
	CodeMissingParam       ErrorCode = 10
	CodeIncompatibleClient ErrorCode = 20
	CodeIncompatibleServer ErrorCode = 30
	CodeInvalidCredentials ErrorCode = 40
	CodeTokenNotSupported  ErrorCode = 41
	CodeNotAuthorized      ErrorCode = 50
	CodeDataNotFound       ErrorCode = 70
)

// String returns the code as it appears on the wire.
func (c ErrorCode) String() string {
	return strconv.Itoa(int(c))
}

func (c ErrorCode) defaultMessage() string {
	switch c {
	case CodeMissingParam:
		return "Required parameter is missing."
	case CodeIncompatibleClient:
		return "Incompatible Subsonic REST protocol version. Client must upgrade."
	case CodeIncompatibleServer:
		return "Incompatible Subsonic REST protocol version. Server must upgrade."
	case CodeInvalidCredentials:
		return "Wrong username or password."
	case CodeTokenNotSupported:
		return "Token authentication not supported for this user."
	case CodeNotAuthorized:
		return "User is not authorized for the given operation."
	case CodeDataNotFound:
		return "The requested data was not found."
	default:
		return "A generic error."
	}
}
