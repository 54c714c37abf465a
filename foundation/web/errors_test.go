package web

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
)

func TestNewRequestError(t *testing.T) {
	err := NewRequestError(errors.New("record not found"), http.StatusNotFound)

	webErr := GetRequestError(err)
	if webErr == nil {
		t.Fatalf("expected a request error")
	}
	if webErr.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", webErr.Status, http.StatusNotFound)
	}
	if webErr.Err.Error() != "record not found" {
		t.Fatalf("message = %q", webErr.Err.Error())
	}
}

func TestGetRequestErrorWrapped(t *testing.T) {
	inner := NewRequestError(errors.New("conflict"), http.StatusConflict)
	wrapped := errors.Wrap(inner, "deciding leave")

	webErr := GetRequestError(wrapped)
	if webErr == nil {
		t.Fatalf("expected to unwrap the request error")
	}
	if webErr.Status != http.StatusConflict {
		t.Fatalf("status = %d, want %d", webErr.Status, http.StatusConflict)
	}
}

func TestGetRequestErrorPlain(t *testing.T) {
	if webErr := GetRequestError(errors.New("boom")); webErr != nil {
		t.Fatalf("plain errors must not convert, got %+v", webErr)
	}
}

func TestIsRequestError(t *testing.T) {
	if !IsRequestError(NewRequestError(errors.New("nope"), http.StatusBadRequest)) {
		t.Fatalf("expected IsRequestError to be true")
	}
	if IsRequestError(errors.New("nope")) {
		t.Fatalf("expected IsRequestError to be false for plain errors")
	}
}
