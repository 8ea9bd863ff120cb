package minidb

import (
	"fmt"
)

const (
	UsernameSize = 32
	EmailSize    = 255

	idSize         = 4
	lengthByteSize = 1

	idOffset       = 0
	usernameOffset = idOffset + idSize
	emailOffset    = usernameOffset + lengthByteSize + UsernameSize

	// RowSize is the fixed width of an encoded row, every row takes
	// exactly this many bytes regardless of its text field lengths
	RowSize = idSize + lengthByteSize + UsernameSize + lengthByteSize + EmailSize
)

type Row struct {
	ID       uint32
	Username string
	Email    string
}

func NewRow(id uint32, username, email string) Row {
	return Row{
		ID:       id,
		Username: username,
		Email:    email,
	}
}

// Validate makes sure text fields fit into their fixed width columns.
// Over-length values are rejected, never truncated.
func (r Row) Validate() error {
	if len(r.Username) > UsernameSize {
		return fmt.Errorf("%w: username is %d bytes, maximum is %d", ErrStringTooLong, len(r.Username), UsernameSize)
	}
	if len(r.Email) > EmailSize {
		return fmt.Errorf("%w: email is %d bytes, maximum is %d", ErrStringTooLong, len(r.Email), EmailSize)
	}
	return nil
}

func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.Username, r.Email)
}

// Marshal encodes the row into a RowSize long buffer:
//
//	| id (4) | username len (1) | username (32) | email len (1) | email (255) |
func (r Row) Marshal() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	buf := make([]byte, RowSize)
	marshalUint32(buf, r.ID, idOffset)
	marshalText(buf, r.Username, usernameOffset)
	marshalText(buf, r.Email, emailOffset)

	return buf, nil
}

func UnmarshalRow(buf []byte, aRow *Row) error {
	if len(buf) < RowSize {
		return fmt.Errorf("%w: row buffer is %d bytes, expected %d", ErrCorruptRow, len(buf), RowSize)
	}

	username, err := unmarshalText(buf, usernameOffset, UsernameSize)
	if err != nil {
		return fmt.Errorf("username: %w", err)
	}
	email, err := unmarshalText(buf, emailOffset, EmailSize)
	if err != nil {
		return fmt.Errorf("email: %w", err)
	}

	aRow.ID = unmarshalUint32(buf, idOffset)
	aRow.Username = username
	aRow.Email = email

	return nil
}

// marshalText writes a length byte followed by the text, the remainder
// of the column stays zeroed
func marshalText(buf []byte, s string, i uint64) {
	buf[i] = byte(len(s))
	copy(buf[i+lengthByteSize:], s)
}

func unmarshalText(buf []byte, i uint64, maxSize int) (string, error) {
	length := int(buf[i])
	if length > maxSize {
		return "", fmt.Errorf("%w: text length %d exceeds column size %d", ErrCorruptRow, length, maxSize)
	}
	start := i + lengthByteSize
	return string(buf[start : start+uint64(length)]), nil
}

func marshalUint32(buf []byte, n uint32, i uint64) []byte {
	buf[i+0] = byte(n >> 0)
	buf[i+1] = byte(n >> 8)
	buf[i+2] = byte(n >> 16)
	buf[i+3] = byte(n >> 24)
	return buf
}

func unmarshalUint32(buf []byte, i uint64) uint32 {
	return 0 |
		(uint32(buf[i+0]) << 0) |
		(uint32(buf[i+1]) << 8) |
		(uint32(buf[i+2]) << 16) |
		(uint32(buf[i+3]) << 24)
}
