// Package protocol defines the framed binary messages exchanged between the
// connect four server and its clients.
//
// Every frame starts with a big-endian int32 kind followed by a fixed-layout
// payload. Integers are int32, strings are a uint16 byte length followed by
// UTF-8 bytes. The only unframed value is the player id handshake the server
// writes once, as the first bytes of a connection.
package protocol

import "math"

// Kind discriminates the frames on the stream.
type Kind int32

const (
	KindRejected Kind = -1
	KindChat     Kind = 0
	KindMove     Kind = 1
	KindPeerLeft Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindChat:
		return "chat"
	case KindMove:
		return "move"
	case KindPeerLeft:
		return "peer_left"
	default:
		return "unknown"
	}
}

// Result is the outcome of an applied move.
type Result int32

const (
	Continue Result = 0
	Win      Result = 1
	Draw     Result = 2
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// Reason explains why a move was rejected.
type Reason int32

const (
	ReasonNotYourTurn      Reason = 1
	ReasonGameAlreadyOver  Reason = 2
	ReasonColumnFull       Reason = 3
	ReasonColumnOutOfRange Reason = 4
)

func (r Reason) String() string {
	switch r {
	case ReasonNotYourTurn:
		return "not your turn"
	case ReasonGameAlreadyOver:
		return "game already over"
	case ReasonColumnFull:
		return "column is full"
	case ReasonColumnOutOfRange:
		return "column out of range"
	default:
		return "unknown reason"
	}
}

// MaxChatBytes is the largest chat text the length prefix can carry.
const MaxChatBytes = math.MaxUint16

// Message is any frame that can travel on the stream.
type Message interface {
	Kind() Kind
}

// Chat is a chat line sent by a client. The author is the sending session.
type Chat struct {
	Text string
}

// ChatBroadcast is a chat line relayed by the server to every player.
type ChatBroadcast struct {
	Sender int32
	Text   string
}

// MoveRequest asks the server to drop a disc in Column.
type MoveRequest struct {
	Column int32
}

// MoveOutcome is the authoritative result of an applied move, sent to both
// players as a single frame.
type MoveOutcome struct {
	Column int32
	Row    int32
	Mover  int32
	Result Result
}

// MoveRejected is sent only to the player whose move was refused.
type MoveRejected struct {
	Reason Reason
}

// PeerLeft tells the remaining player that the other one disconnected.
type PeerLeft struct {
	Player int32
}

func (Chat) Kind() Kind          { return KindChat }
func (ChatBroadcast) Kind() Kind { return KindChat }
func (MoveRequest) Kind() Kind   { return KindMove }
func (MoveOutcome) Kind() Kind   { return KindMove }
func (MoveRejected) Kind() Kind  { return KindRejected }
func (PeerLeft) Kind() Kind      { return KindPeerLeft }
