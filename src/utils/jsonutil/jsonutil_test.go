package jsonutil

import (
	"encoding/json"
	"testing"
)

func TestDecode(t *testing.T) {
	type params struct {
		Command string `json:"command"`
	}

	out, err := Decode[params](json.RawMessage(`{"command":"oreore.helloWorld"}`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if out.Command != "oreore.helloWorld" {
		t.Fatalf("unexpected decode result: %#v", out)
	}

	for _, raw := range []string{"", "null"} {
		if _, err := Decode[params](json.RawMessage(raw)); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}

	if _, err := Decode[params](json.RawMessage(`{"command":1}`)); err == nil {
		t.Fatalf("expected type error")
	}
}
