package ratelimit

import "testing"

func TestLimiterBurstThenDeny(t *testing.T) {
	l := New(3, 0) // no refill
	for i := 0; i < 3; i++ {
		if !l.Allow("client") {
			t.Fatalf("request %d within capacity should pass", i)
		}
	}
	if l.Allow("client") {
		t.Fatalf("request over capacity should be denied")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := New(1, 0)
	if !l.Allow("a") {
		t.Fatalf("first request for a should pass")
	}
	if l.Allow("a") {
		t.Fatalf("second request for a should be denied")
	}
	if !l.Allow("b") {
		t.Fatalf("b has its own bucket and should pass")
	}
}
