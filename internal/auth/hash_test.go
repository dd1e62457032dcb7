package auth

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "s3cret" {
		t.Fatalf("digest must not equal the plaintext")
	}

	if !VerifyPassword("s3cret", digest) {
		t.Fatalf("correct password should verify")
	}
	if VerifyPassword("wrong", digest) {
		t.Fatalf("wrong password should not verify")
	}
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	first, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same secret should differ (random salt)")
	}
}

func TestHashToken(t *testing.T) {
	// Long input: refresh tokens exceed bcrypt's 72-byte limit, HashToken
	// must not care.
	token := "header.payload-that-is-quite-long-and-exceeds-seventy-two-bytes-easily-indeed.signature"

	digest := HashToken(token)
	if digest == token || digest == "" {
		t.Fatalf("unexpected digest %q", digest)
	}
	if HashToken(token) != digest {
		t.Fatalf("token hash must be deterministic")
	}

	if !VerifyToken(token, digest) {
		t.Fatalf("matching token should verify")
	}
	if VerifyToken(token+"x", digest) {
		t.Fatalf("tampered token should not verify")
	}
}
