package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "clipscout/internal/platform/errors"
	"clipscout/internal/platform/net/http/bind"
)

type payload struct {
	Name  string `json:"name" validate:"required,min=2"`
	Count int    `json:"count" validate:"omitempty,min=0"`
}

func req(method, body string) *http.Request {
	return httptest.NewRequest(method, "/x", strings.NewReader(body))
}

func TestParseJSONHappyPath(t *testing.T) {
	got, err := bind.ParseJSON[payload](req(http.MethodPost, `{"name":"ok","count":3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "ok" || got.Count != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSONEmptyBody(t *testing.T) {
	// POST requires a body
	if _, err := bind.ParseJSON[payload](req(http.MethodPost, "")); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("POST empty body gave %v", err)
	}
	// safe methods tolerate it
	got, err := bind.ParseJSON[payload](req(http.MethodGet, ""))
	if err != nil || got != (payload{}) {
		t.Fatalf("GET empty body gave (%+v, %v)", got, err)
	}
}

func TestParseJSONMalformed(t *testing.T) {
	if _, err := bind.ParseJSON[payload](req(http.MethodPost, `{"name":`)); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("malformed JSON gave %v", err)
	}
}

func TestParseJSONUnknownField(t *testing.T) {
	if _, err := bind.ParseJSON[payload](req(http.MethodPost, `{"name":"ok","nope":1}`)); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("unknown field gave %v", err)
	}
}

func TestParseJSONTrailingData(t *testing.T) {
	if _, err := bind.ParseJSON[payload](req(http.MethodPost, `{"name":"ok"}{"name":"again"}`)); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("trailing data gave %v", err)
	}
}

func TestParseJSONValidation(t *testing.T) {
	_, err := bind.ParseJSON[payload](req(http.MethodPost, `{"name":"a"}`))
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("short name gave %v", err)
	}
	// the offending field is reported with its json name
	e, ok := perr.As(err)
	if !ok || e.Field() != "name" {
		t.Fatalf("field = %+v", e)
	}
}

func TestParseJSONMaxBytes(t *testing.T) {
	long := `{"name":"` + strings.Repeat("x", 64) + `"}`
	_, err := bind.ParseJSON[payload](req(http.MethodPost, long), bind.JSONOptions{MaxBytes: 16, DisallowUnknown: true})
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("oversize body gave %v", err)
	}
}
