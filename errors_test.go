package instagram

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyFetchStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected Kind
	}{
		{200, KindNone},
		{204, KindNone},
		{429, KindRateLimited},
		{404, KindNetworkError},
		{500, KindNetworkError},
		{302, KindNetworkError},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			if got := classifyFetchStatus(tt.status); got != tt.expected {
				t.Fatalf("classifyFetchStatus(%d) = %s, want %s", tt.status, got, tt.expected)
			}
		})
	}
}

func TestClassifyResolveStatus(t *testing.T) {
	if got := classifyResolveStatus(404); got != KindNotFound {
		t.Fatalf("404 = %s, want not found", got)
	}
	for _, status := range []int{200, 429, 500} {
		if got := classifyResolveStatus(status); got != KindNone {
			t.Fatalf("%d = %s, want none (body decides)", status, got)
		}
	}
}

func TestKindFatal(t *testing.T) {
	fatal := []Kind{KindInvalidUsername, KindNotFound, KindRateLimitedOrInvalidResponse, KindUnexpectedResponseShape, KindRateLimited, KindNetworkError}
	for _, k := range fatal {
		if !k.Fatal() {
			t.Fatalf("%s should be fatal", k)
		}
	}
	if KindLookupFailed.Fatal() {
		t.Fatal("lookup failure must not be fatal")
	}
}

func TestFailureUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("wrapped: %w", newFailure(StepResolve, KindNetworkError, "", cause))

	if !IsKind(err, KindNetworkError) {
		t.Fatalf("KindOf = %s", KindOf(err))
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if KindOf(errors.New("plain")) != KindNone {
		t.Fatal("plain error should have no kind")
	}
	if IsKind(nil, KindNone) {
		t.Fatal("nil error has no kind")
	}
}
