package utils

import "testing"

func TestGetEnv(t *testing.T) {
	if got := GetEnv("TENANCY_TEST_MISSING", "fallback", nil); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	t.Setenv("TENANCY_TEST_SET", "value")
	if got := GetEnv("TENANCY_TEST_SET", "fallback", nil); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	if got := GetEnvAsInt("TENANCY_TEST_MISSING_INT", 42, nil); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}

	t.Setenv("TENANCY_TEST_INT", "7")
	if got := GetEnvAsInt("TENANCY_TEST_INT", 42, nil); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}

	t.Setenv("TENANCY_TEST_INT", "not-a-number")
	if got := GetEnvAsInt("TENANCY_TEST_INT", 42, nil); got != 42 {
		t.Fatalf("expected fallback 42 on parse failure, got %d", got)
	}
}
