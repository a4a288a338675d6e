package exceptions

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("column"), http.StatusNotFound},
		{"conflict", Conflict("title %q taken", "Ship it"), http.StatusConflict},
		{"invalid input", InvalidInput("newPosition must be >= 0"), http.StatusBadRequest},
		{"domain invariant", DomainInvariant("no stage for column"), http.StatusUnprocessableEntity},
		{"unauthorized", Unauthorized("missing token"), http.StatusUnauthorized},
		{"wrapped twice", fmt.Errorf("reorder: %w", NotFound("task")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConstructorsKeepSentinel(t *testing.T) {
	err := NotFound("workspace")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected %v to wrap ErrNotFound", err)
	}
	if err.Error() != "workspace not found: resource not found" {
		t.Errorf("unexpected message %q", err.Error())
	}

	if errors.Is(Conflict("dup"), ErrNotFound) {
		t.Error("conflict must not match ErrNotFound")
	}
}
