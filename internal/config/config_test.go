package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Raymond9734/loan-callback-service/internal/models"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.API.Port)
	}
	if cfg.Calling.CountryCode != "+91" || cfg.Calling.Timezone != "Asia/Kolkata" {
		t.Errorf("calling defaults = %+v", cfg.Calling)
	}
	if cfg.Calling.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Calling.Timeout)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" || cfg.Gemini.Transport != TransportREST {
		t.Errorf("gemini defaults = %+v", cfg.Gemini)
	}
	if cfg.Cache.TTL != 24*time.Hour || cfg.Cache.RedisURL != "" {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
}

func TestLoad_EnvSlots(t *testing.T) {
	t.Setenv("CALL_AGENT_ID", "agent-gold")
	t.Setenv("CALL_AGENT_ID_WINBACK", "agent-winback")
	t.Setenv("CALL_FROM_NUMBER", "+918000000000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[string]models.CampaignRoute{
		"gold_loan": {CampaignType: "gold_loan", AgentID: "agent-gold"},
		"winback":   {CampaignType: "winback", AgentID: "agent-winback"},
	}
	if diff := cmp.Diff(want, cfg.Calling.Campaigns); diff != "" {
		t.Errorf("Campaigns mismatch (-want +got):\n%s", diff)
	}
	if cfg.Calling.FromNumber != "+918000000000" {
		t.Errorf("FromNumber = %q", cfg.Calling.FromNumber)
	}
}

func TestLoad_CampaignsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigns.yaml")
	content := `campaigns:
  winback:
    agent_id: agent-winback-file
    from_number: "+917000000000"
  Personal_Loan:
    agent_id: agent-personal
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CALL_AGENT_ID", "agent-gold")
	t.Setenv("CALL_AGENT_ID_WINBACK", "agent-winback-env")
	t.Setenv("CAMPAIGNS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[string]models.CampaignRoute{
		"gold_loan":     {CampaignType: "gold_loan", AgentID: "agent-gold"},
		"winback":       {CampaignType: "winback", AgentID: "agent-winback-file", FromNumber: "+917000000000"},
		"personal_loan": {CampaignType: "personal_loan", AgentID: "agent-personal"},
	}
	if diff := cmp.Diff(want, cfg.Calling.Campaigns); diff != "" {
		t.Errorf("Campaigns mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port", key: "API_PORT", value: "eighty"},
		{name: "timeout", key: "OUTBOUND_TIMEOUT", value: "soon"},
		{name: "cache ttl", key: "TRANSLITERATION_CACHE_TTL", value: "forever"},
		{name: "transport", key: "GEMINI_TRANSPORT", value: "grpc"},
		{name: "rate limit", key: "RATE_LIMIT_PER_MINUTE", value: "many"},
		{name: "missing campaigns file", key: "CAMPAIGNS_FILE", value: "/nonexistent/campaigns.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_MalformedCampaignsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigns.yaml")
	if err := os.WriteFile(path, []byte("campaigns: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CAMPAIGNS_FILE", path)

	if _, err := Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestGenerateContentURL(t *testing.T) {
	g := GeminiConfig{Model: "gemini-2.5-flash"}
	if got := g.GenerateContentURL(); got != "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Errorf("GenerateContentURL() = %q", got)
	}

	g.APIURL = "http://localhost:9000/generate"
	if got := g.GenerateContentURL(); got != "http://localhost:9000/generate" {
		t.Errorf("GenerateContentURL() override = %q", got)
	}
}
