package core

// Parity selects the UART parity mode
type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

// StopBits selects the number of stop bits per frame
type StopBits uint8

const (
	StopBitsOne StopBits = 1
	StopBitsTwo StopBits = 2
)

// UARTParams is passed to a UART's Init. The word length is always 8 bits.
// Values are applied to the hardware and not kept.
type UARTParams struct {
	BaudRate uint32
	StopBits StopBits
	Parity   Parity
}

// ErrorCode is the status delivered with a UART completion callback.
type ErrorCode uint8

const (
	CommandComplete ErrorCode = iota
	ParityError
	FramingError
	OverrunError
	RepeatCallError
	ResetError
)

func (e ErrorCode) String() string {
	switch e {
	case CommandComplete:
		return "command complete"
	case ParityError:
		return "parity error"
	case FramingError:
		return "framing error"
	case OverrunError:
		return "overrun error"
	case RepeatCallError:
		return "repeat call error"
	case ResetError:
		return "reset error"
	default:
		return "unknown error " + Itoa(int(e))
	}
}

// UARTClient receives transmit completion notifications. The buffer passed
// to Transmit is handed back unchanged.
type UARTClient interface {
	TransmitComplete(buf []byte, status ErrorCode)
}

// UARTClientFunc adapts a function to UARTClient.
type UARTClientFunc func(buf []byte, status ErrorCode)

// TransmitComplete implements UARTClient.
func (f UARTClientFunc) TransmitComplete(buf []byte, status ErrorCode) {
	f(buf, status)
}
