package security

import "testing"

func TestActionTokenCodec_GenerateDigestRoundTrip(t *testing.T) {
	c := NewActionTokenCodec()

	plaintext, digest, err := c.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if plaintext == "" || digest == "" {
		t.Fatal("expected non-empty token and digest")
	}
	if plaintext == digest {
		t.Fatal("digest must not equal the plaintext")
	}
	if len(plaintext) != 40 { // 20 random bytes, hex encoded
		t.Fatalf("plaintext length = %d", len(plaintext))
	}
	if len(digest) != 64 { // sha256, hex encoded
		t.Fatalf("digest length = %d", len(digest))
	}

	if c.Digest(plaintext) != digest {
		t.Fatal("re-digesting the plaintext should reproduce the stored digest")
	}
}

func TestActionTokenCodec_TokensAreUnique(t *testing.T) {
	c := NewActionTokenCodec()

	p1, _, err := c.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	p2, _, err := c.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if p1 == p2 {
		t.Fatal("two generated tokens should differ")
	}
}

func TestActionTokenCodec_Matches(t *testing.T) {
	c := NewActionTokenCodec()

	plaintext, digest, err := c.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !c.Matches(plaintext, digest) {
		t.Fatal("matching plaintext rejected")
	}
	if c.Matches("0000", digest) {
		t.Fatal("wrong plaintext accepted")
	}
}
