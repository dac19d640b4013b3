package middleware

import "testing"

func TestTokenBucketExhaustion(t *testing.T) {
	l := NewTokenBucket(3, 1)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("request over capacity should be rejected")
	}

	// Other clients keep their own budget.
	if !l.Allow("10.0.0.2") {
		t.Fatal("a different client must not share the exhausted bucket")
	}
}
