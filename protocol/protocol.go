// Package protocol implements the line-based wire format for movierentals.
//
// Every request and every response is exactly two text lines:
//
//	operation\n
//	payload\n
//
// There is no length prefix and no escaping. The receiver reads the first
// line as the operation (or the status token on a response) and the second as
// the payload. Neither field may contain a line terminator; the payload
// serialization in package codec never produces one.
package protocol

import (
	"bufio"
	"io"
	"strings"

	"github.com/juju/errors"

	"movierentals/message"
)

// ErrFraming is returned when a message cannot be read or written as two lines.
const ErrFraming = errors.ConstError("malformed message")

// MaxLineSize bounds a single line. A peer that streams more than this
// without a terminator is treated as a framing failure.
const MaxLineSize = 1 << 20

// Validate reports whether m can be framed: neither field may contain a line
// terminator, otherwise the peer would read the wrong two lines.
func Validate(m *message.Message) error {
	if strings.ContainsAny(m.Operation, "\r\n") {
		return errors.Annotatef(ErrFraming, "line terminator in operation %q", m.Operation)
	}
	if strings.ContainsAny(m.Payload, "\r\n") {
		return errors.Annotatef(ErrFraming, "line terminator in payload of %q", m.Operation)
	}
	return nil
}

// Encode writes m to w as two terminated lines in a single Write call.
// An empty payload is written as an empty line.
func Encode(w io.Writer, m *message.Message) error {
	if err := Validate(m); err != nil {
		return err
	}
	buf := make([]byte, 0, len(m.Operation)+len(m.Payload)+2)
	buf = append(buf, m.Operation...)
	buf = append(buf, '\n')
	buf = append(buf, m.Payload...)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}

// Decode reads exactly two lines from r. The first is the operation, the
// second is the payload. Both "\n" and "\r\n" terminate a line, and a last
// line that ends at EOF without a terminator is accepted.
//
// Decode fails with ErrFraming when the stream closes before both lines are
// available. Other read errors are returned as they are.
//
// Decode reads through a bufio.Reader, so bytes past the second line may be
// consumed from r; callers use one connection per message.
func Decode(r io.Reader) (*message.Message, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	operation, err := readLine(br)
	if err != nil {
		return nil, errors.Annotate(err, "reading operation")
	}
	payload, err := readLine(br)
	if err != nil {
		return nil, errors.Annotatef(err, "reading payload of %q", operation)
	}
	return &message.Message{Operation: operation, Payload: payload}, nil
}

func readLine(br *bufio.Reader) (string, error) {
	var line []byte
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			if len(line) > 0 {
				break
			}
			return "", errors.Annotate(ErrFraming, "unexpected end of stream")
		}
		if err != nil {
			return "", err
		}
		line = append(line, chunk...)
		if len(line) > MaxLineSize {
			return "", errors.Annotatef(ErrFraming, "line exceeds %d bytes", MaxLineSize)
		}
		if !isPrefix {
			break
		}
	}
	return string(line), nil
}
