package message

import (
	"testing"

	"github.com/juju/errors"
)

func TestResultOf(t *testing.T) {
	cases := []struct {
		resp    *Message
		ok      bool
		value   string
		wantErr bool
	}{
		{NewOK("1,Matrix"), true, "1,Matrix", false},
		{NewError("Movie not found."), false, "Movie not found.", false},
		{&Message{Operation: "200", Payload: ""}, true, "", false},
		{&Message{Operation: "400 Bad", Payload: "x"}, false, "x", false},
		{&Message{Operation: "getMovieById", Payload: "42"}, false, "", true},
		{nil, false, "", true},
	}

	for _, tc := range cases {
		res, err := ResultOf(tc.resp)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownStatus) {
				t.Fatalf("expect ErrUnknownStatus for %v, got %v", tc.resp, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", tc.resp, err)
		}
		if res.IsOk() != tc.ok || res.Value() != tc.value {
			t.Fatalf("expect (%v, %q), got (%v, %q)", tc.ok, tc.value, res.IsOk(), res.Value())
		}
	}
}

func TestResultMessage(t *testing.T) {
	if m := Ok("x").Message(); m.Operation != StatusOK || m.Payload != "x" {
		t.Fatalf("expect ok message, got %v", m)
	}
	if m := Err("boom").Message(); m.Operation != StatusError || m.Payload != "boom" {
		t.Fatalf("expect error message, got %v", m)
	}
}
