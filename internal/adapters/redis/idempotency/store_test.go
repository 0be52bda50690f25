package idempotency

import (
	"strings"
	"testing"

	idempotencyport "github.com/coopdesk/memberdesk/internal/ports/out/idempotency"
)

func TestRedisKey_DistinguishesFingerprintParts(t *testing.T) {
	t.Parallel()

	base := idempotencyport.Fingerprint{Key: "k", Method: "POST", Route: "/members", BodyHash: "abc"}
	other := base
	other.BodyHash = "abd"
	shifted := idempotencyport.Fingerprint{Key: "kPOST", Method: "", Route: "/members", BodyHash: "abc"}

	a, b, c := redisKey(base), redisKey(other), redisKey(shifted)
	if a == b || a == c {
		t.Fatalf("expected distinct keys, got %q %q %q", a, b, c)
	}
	if !strings.HasPrefix(a, keyPrefix) {
		t.Fatalf("key %q missing prefix %q", a, keyPrefix)
	}
	if redisKey(base) != a {
		t.Fatalf("redisKey not deterministic")
	}
}
