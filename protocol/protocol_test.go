package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/juju/errors"

	"movierentals/message"
)

func TestEncodeDecode(t *testing.T) {
	cases := []*message.Message{
		{Operation: "getMovieById", Payload: "42"},
		{Operation: "addMovie", Payload: "Matrix,1999,ACTION,R,3.50,true"},
		{Operation: "getAllMovies", Payload: ""},
		{Operation: message.StatusOK, Payload: "1,A,2000,DRAMA,PG,1.00,true;2,B,2001,COMEDY,G,2.00,false;"},
		{Operation: message.StatusError, Payload: "Movie not found."},
		{Operation: "filterMoviesByKeyword", Payload: "null"},
	}

	for _, m := range cases {
		var buf bytes.Buffer
		if err := Encode(&buf, m); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if want := m.Operation + "\n" + m.Payload + "\n"; buf.String() != want {
			t.Fatalf("expect wire bytes %q, got %q", want, buf.String())
		}

		decoded, err := Decode(&buf)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if *decoded != *m {
			t.Errorf("round trip mismatch: got %v, want %v", decoded, m)
		}
	}
}

func TestDecodeCRLF(t *testing.T) {
	decoded, err := Decode(strings.NewReader("getMovieById\r\n7\r\n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Operation != "getMovieById" || decoded.Payload != "7" {
		t.Fatalf("expect (getMovieById, 7), got %v", decoded)
	}
}

func TestDecodeLastLineWithoutTerminator(t *testing.T) {
	decoded, err := Decode(strings.NewReader("200 OK\nhello"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Payload != "hello" {
		t.Fatalf("expect payload hello, got %q", decoded.Payload)
	}
}

func TestDecodeTruncated(t *testing.T) {
	for _, input := range []string{"", "getAllMovies\n", "getAllMovies"} {
		_, err := Decode(strings.NewReader(input))
		if !errors.Is(err, ErrFraming) {
			t.Fatalf("expect ErrFraming for %q, got %v", input, err)
		}
	}
}

func TestDecodeLineTooLong(t *testing.T) {
	input := strings.Repeat("x", MaxLineSize+10) + "\n\n"
	_, err := Decode(strings.NewReader(input))
	if !errors.Is(err, ErrFraming) {
		t.Fatalf("expect ErrFraming for oversized line, got %v", err)
	}
}

func TestEncodeRejectsTerminators(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, &message.Message{Operation: "addMovie", Payload: "a\nb"})
	if !errors.Is(err, ErrFraming) {
		t.Fatalf("expect ErrFraming, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expect nothing written, got %q", buf.String())
	}
}

func TestDecodeLargePayload(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 20000; i++ {
		sb.WriteString("1,Title,2000,DRAMA,PG,1.00,true;")
	}
	m := &message.Message{Operation: message.StatusOK, Payload: sb.String()}

	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Payload != m.Payload {
		t.Errorf("large payload mismatch: got %d bytes, want %d", len(decoded.Payload), len(m.Payload))
	}
}
