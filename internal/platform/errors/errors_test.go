package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	// New / Newf
	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	// Wrap / Wrapf / Unwrap
	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeDB, "db failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if CodeOf(e3) != ErrorCodeDB {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}
	e4 := Wrapf(src, ErrorCodeConflict, "nope %s", "here")
	if want := "nope here: root"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}

	// As
	if got, ok := As(e4); !ok || got.Code() != ErrorCodeConflict {
		t.Fatalf("As(e4) = (%+v, %v)", got, ok)
	}
	if _, ok := As(src); ok {
		t.Fatal("As should reject foreign errors")
	}

	// Root digs through wrapping layers
	e5 := Wrap(e3, ErrorCodeUnknown, "outer")
	if Root(e5).Error() != "root" {
		t.Fatalf("Root = %q", Root(e5).Error())
	}
}

func TestWithFieldAndOp(t *testing.T) {
	base := New(ErrorCodeValidation, "bad field")

	withF := WithField(base, "name")
	fe, ok := As(withF)
	if !ok || fe.Field() != "name" {
		t.Fatalf("WithField gave %+v", fe)
	}
	// copy-on-write leaves the original untouched
	be, _ := As(base)
	if be.Field() != "" {
		t.Fatalf("WithField mutated the original: %q", be.Field())
	}

	withOp := WithOp(base, "analysis.run")
	oe, _ := As(withOp)
	if oe.Op() != "analysis.run" {
		t.Fatalf("WithOp gave %q", oe.Op())
	}

	// foreign errors pass through unchanged
	plain := stderrs.New("plain")
	if WithField(plain, "x") != plain {
		t.Fatal("WithField should not touch foreign errors")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v", w)
	}

	w := WireFrom(WithField(New(ErrorCodeValidation, "too short"), "title"))
	if w.Code != ErrorCodeValidation || w.Message != "too short" || w.Field != "title" {
		t.Fatalf("WireFrom = %+v", w)
	}

	fw := WireFrom(stderrs.New("mystery"))
	if fw.Code != ErrorCodeUnknown || fw.Message != "mystery" {
		t.Fatalf("foreign WireFrom = %+v", fw)
	}
}

func TestWrapIf(t *testing.T) {
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatal("WrapIf(nil) should be nil")
	}
	if CodeOf(WrapIf(stderrs.New("boom"), ErrorCodeDB, "x")) != ErrorCodeDB {
		t.Fatal("WrapIf should wrap non-nil errors")
	}
}

func TestHTTPBundlesStatusAndWire(t *testing.T) {
	status, w := HTTP(nil)
	if status != http.StatusOK || w != (Wire{}) {
		t.Fatalf("HTTP(nil) = (%d, %+v)", status, w)
	}
	status, w = HTTP(NotFoundf("report %s", "abc"))
	if status != http.StatusNotFound || w.Code != ErrorCodeNotFound {
		t.Fatalf("HTTP(not found) = (%d, %+v)", status, w)
	}
}
