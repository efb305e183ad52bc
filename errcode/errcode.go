package errcode

// Code is a stable, console-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	InvalidParams Code = "invalid_params"

	// Provisioning
	VerifyFailed Code = "verify_failed"
	StorageIO    Code = "storage_io"

	// Platform
	UnknownBus Code = "unknown_bus"
	UnknownPin Code = "unknown_pin"

	Error Code = "error" // generic fallback
)

// E wraps a Code when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, errcode.VerifyFailed) match a wrapped *E.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Wrap returns an *E for op carrying cause. A nil cause yields nil.
func Wrap(c Code, op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &E{C: c, Op: op, Msg: cause.Error(), Err: cause}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// MapDriverErr maps low-level driver errors (I2C NAK, bus timeout) to a Code.
// Storage drivers report nothing finer than "the transfer failed".
func MapDriverErr(err error) Code {
	if err == nil {
		return OK
	}
	if c := Of(err); c != Error {
		return c
	}
	return StorageIO
}
