package utils

import "testing"

func TestCaptchaStoreVerifyConsumes(t *testing.T) {
	utilsTestSetup(t)
	store := NewRedisCaptchaStore(0)

	if err := store.Set("cap-test-1", "48271"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !store.Verify("cap-test-1", "48271", true) {
		t.Fatal("verify with correct answer failed")
	}
	// Consumed on success; a replay must fail.
	if store.Verify("cap-test-1", "48271", true) {
		t.Fatal("verify succeeded twice for the same captcha")
	}
}

func TestCaptchaStoreRejectsWrongAnswer(t *testing.T) {
	utilsTestSetup(t)
	store := NewRedisCaptchaStore(0)

	if err := store.Set("cap-test-2", "13579"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if store.Verify("cap-test-2", "00000", true) {
		t.Fatal("verify accepted a wrong answer")
	}
}

func TestGenerateCaptchaReturnsImage(t *testing.T) {
	utilsTestSetup(t)
	id, b64, err := GenerateCaptcha()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if id == "" || b64 == "" {
		t.Fatalf("generate returned id=%q image length=%d", id, len(b64))
	}
	if VerifyCaptcha(id, "") {
		t.Fatal("empty answer must never verify")
	}
}
