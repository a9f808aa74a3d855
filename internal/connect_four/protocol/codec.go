package protocol

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	ErrUnknownKind    = errors.New("unknown message kind")
	ErrTextTooLong    = errors.New("text exceeds maximum length")
	ErrInvalidText    = errors.New("text is not valid utf-8")
	ErrUnknownMessage = errors.New("unsupported message type")
)

// Encoder writes frames to a stream. Each frame is handed to the underlying
// writer in a single Write call. An Encoder is not safe for concurrent use.
type Encoder struct {
	w   io.Writer
	buf []byte
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, buf: make([]byte, 0, 64)}
}

// WritePlayerID writes the unframed handshake value.
func (e *Encoder) WritePlayerID(id int32) error {
	e.buf = binary.BigEndian.AppendUint32(e.buf[:0], uint32(id))
	_, err := e.w.Write(e.buf)
	return err
}

// Encode writes one framed message.
func (e *Encoder) Encode(m Message) error {
	b := binary.BigEndian.AppendUint32(e.buf[:0], uint32(m.Kind()))
	var err error
	switch m := m.(type) {
	case Chat:
		b, err = appendString(b, m.Text)
	case ChatBroadcast:
		b = appendInt32(b, m.Sender)
		b, err = appendString(b, m.Text)
	case MoveRequest:
		b = appendInt32(b, m.Column)
	case MoveOutcome:
		b = appendInt32(b, m.Column)
		b = appendInt32(b, m.Row)
		b = appendInt32(b, m.Mover)
		b = appendInt32(b, int32(m.Result))
	case MoveRejected:
		b = appendInt32(b, int32(m.Reason))
	case PeerLeft:
		b = appendInt32(b, m.Player)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownMessage, m)
	}
	if err != nil {
		return err
	}
	e.buf = b
	_, err = e.w.Write(b)
	return err
}

func appendInt32(b []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(b, uint32(v))
}

func appendString(b []byte, s string) ([]byte, error) {
	if len(s) > MaxChatBytes {
		return b, ErrTextTooLong
	}
	if !utf8.ValidString(s) {
		return b, ErrInvalidText
	}
	b = binary.BigEndian.AppendUint16(b, uint16(len(s)))
	return append(b, s...), nil
}

// Decoder reads frames from a stream.
type Decoder struct {
	r *bufio.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// ReadPlayerID reads the handshake value written by WritePlayerID.
func (d *Decoder) ReadPlayerID() (int32, error) {
	return d.readInt32()
}

// DecodeRequest reads one client-to-server frame.
func (d *Decoder) DecodeRequest() (Message, error) {
	kind, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	switch Kind(kind) {
	case KindChat:
		text, err := d.readString()
		if err != nil {
			return nil, err
		}
		return Chat{Text: text}, nil
	case KindMove:
		column, err := d.readField()
		if err != nil {
			return nil, err
		}
		return MoveRequest{Column: column}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
}

// DecodeEvent reads one server-to-client frame.
func (d *Decoder) DecodeEvent() (Message, error) {
	kind, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	switch Kind(kind) {
	case KindChat:
		sender, err := d.readField()
		if err != nil {
			return nil, err
		}
		text, err := d.readString()
		if err != nil {
			return nil, err
		}
		return ChatBroadcast{Sender: sender, Text: text}, nil
	case KindMove:
		var fields [4]int32
		for i := range fields {
			if fields[i], err = d.readField(); err != nil {
				return nil, err
			}
		}
		return MoveOutcome{Column: fields[0], Row: fields[1], Mover: fields[2], Result: Result(fields[3])}, nil
	case KindRejected:
		reason, err := d.readField()
		if err != nil {
			return nil, err
		}
		return MoveRejected{Reason: Reason(reason)}, nil
	case KindPeerLeft:
		player, err := d.readField()
		if err != nil {
			return nil, err
		}
		return PeerLeft{Player: player}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
}

func (d *Decoder) readInt32() (int32, error) {
	var b [4]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

func (d *Decoder) readField() (int32, error) {
	v, err := d.readInt32()
	return v, unexpected(err)
}

// readString reads a length-prefixed string. A stream that ends inside a
// frame is reported as io.ErrUnexpectedEOF.
func (d *Decoder) readString() (string, error) {
	var l [2]byte
	if _, err := io.ReadFull(d.r, l[:]); err != nil {
		return "", unexpected(err)
	}
	b := make([]byte, binary.BigEndian.Uint16(l[:]))
	if _, err := io.ReadFull(d.r, b); err != nil {
		return "", unexpected(err)
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidText
	}
	return string(b), nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
