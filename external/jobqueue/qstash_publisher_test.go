package jobqueue

import (
	"strings"
	"testing"
	"time"
)

func TestNormalizeDelay(t *testing.T) {
	t.Parallel()

	if got := normalizeDelay(0); got != "0s" {
		t.Fatalf("expected 0s, got %q", got)
	}
	if got := normalizeDelay(-time.Second); got != "0s" {
		t.Fatalf("expected 0s for negative delay, got %q", got)
	}
	if got := normalizeDelay(90 * time.Second); got != "90s" {
		t.Fatalf("expected 90s, got %q", got)
	}
	if got := normalizeDelay(1500 * time.Millisecond); got != "2s" {
		t.Fatalf("expected rounded 2s, got %q", got)
	}
}

func TestValidateHTTPBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := validateHTTPBaseURL(""); err == nil {
		t.Fatalf("expected error for empty value")
	}
	if _, err := validateHTTPBaseURL("ftp://qstash.upstash.io"); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
	if _, err := validateHTTPBaseURL("https://"); err == nil {
		t.Fatalf("expected error for empty host")
	}

	got, err := validateHTTPBaseURL("https://qstash.upstash.io/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://qstash.upstash.io" {
		t.Fatalf("expected trailing slash trimmed, got %q", got)
	}
}

func TestBuildQStashCurlPreview_RedactsSecrets(t *testing.T) {
	t.Parallel()

	preview := buildQStashCurlPreview(
		"https://qstash.upstash.io/v2/publish/https://api.riftlabs.example.com/v1/internal/jobs/refresh-stats",
		StatsRefreshJobPath,
		"30s",
		2,
		"refresh-2026-08",
		`{}`,
		true,
	)

	if !strings.HasPrefix(preview, "curl -X POST") {
		t.Fatalf("unexpected preview prefix: %s", preview)
	}
	if !strings.Contains(preview, "Authorization: Bearer ***") {
		t.Fatalf("expected redacted auth header: %s", preview)
	}
	if !strings.Contains(preview, "Upstash-Forward-X-Internal-Job-Token: ***") {
		t.Fatalf("expected redacted forward token header: %s", preview)
	}
	if !strings.Contains(preview, "Upstash-Retries: 2") {
		t.Fatalf("expected retries header: %s", preview)
	}
	if !strings.Contains(preview, "Upstash-Delay: 30s") {
		t.Fatalf("expected delay header: %s", preview)
	}
	if !strings.Contains(preview, "Upstash-Deduplication-Id: refresh-2026-08") {
		t.Fatalf("expected deduplication header: %s", preview)
	}
}

func TestBuildQStashCurlPreview_OmitsOptionalHeaders(t *testing.T) {
	t.Parallel()

	preview := buildQStashCurlPreview("https://qstash.upstash.io/v2/publish/x", "/x", "0s", 0, "", `{}`, false)
	if strings.Contains(preview, "Upstash-Retries") {
		t.Fatalf("unexpected retries header: %s", preview)
	}
	if strings.Contains(preview, "Upstash-Delay") {
		t.Fatalf("unexpected delay header: %s", preview)
	}
	if strings.Contains(preview, "Upstash-Deduplication-Id") {
		t.Fatalf("unexpected deduplication header: %s", preview)
	}
	if strings.Contains(preview, "Upstash-Forward-X-Internal-Job-Token") {
		t.Fatalf("unexpected forward token header: %s", preview)
	}
}

func TestShellQuote(t *testing.T) {
	t.Parallel()

	if got := shellQuote("plain"); got != "'plain'" {
		t.Fatalf("unexpected quote: %s", got)
	}
	if got := shellQuote("it's"); got != `'it'"'"'s'` {
		t.Fatalf("unexpected escaped quote: %s", got)
	}
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	if got := truncateForLog("short", 10); got != "short" {
		t.Fatalf("unexpected truncation: %s", got)
	}
	got := truncateForLog(strings.Repeat("a", 20), 10)
	if got != strings.Repeat("a", 10)+"...(truncated)" {
		t.Fatalf("unexpected truncated value: %s", got)
	}
}
