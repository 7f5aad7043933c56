package sway

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	magic      = "i3-ipc"
	headerSize = len(magic) + 8

	// maxPayload bounds a single frame. Large trees are a few hundred KiB.
	maxPayload = 64 << 20
)

var (
	ErrBadMagic        = errors.New("sway: invalid ipc magic")
	ErrPayloadTooLarge = errors.New("sway: payload exceeds frame limit")
)

// WriteMessage frames payload with the ipc header and writes it to w in a
// single call.
func WriteMessage(w io.Writer, msgType uint32, payload []byte) error {
	if len(payload) > maxPayload {
		return ErrPayloadTooLarge
	}
	buf := make([]byte, headerSize+len(payload))
	copy(buf, magic)
	binary.NativeEndian.PutUint32(buf[len(magic):], uint32(len(payload)))
	binary.NativeEndian.PutUint32(buf[len(magic)+4:], msgType)
	copy(buf[headerSize:], payload)
	_, err := w.Write(buf)
	return err
}

// ReadMessage reads one framed message from r.
func ReadMessage(r io.Reader) (Message, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Message{}, err
	}
	if !bytes.Equal(header[:len(magic)], []byte(magic)) {
		return Message{}, ErrBadMagic
	}
	size := binary.NativeEndian.Uint32(header[len(magic):])
	msgType := binary.NativeEndian.Uint32(header[len(magic)+4:])
	if size > maxPayload {
		return Message{}, ErrPayloadTooLarge
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Message{}, fmt.Errorf("read %d byte payload: %w", size, err)
	}
	return Message{Type: msgType, Payload: payload}, nil
}
