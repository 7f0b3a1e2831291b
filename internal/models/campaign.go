package models

import "strings"

// Campaign type constants
const (
	CampaignGoldLoan = "gold_loan"
	CampaignWinback  = "winback"
)

// CampaignRoute holds the calling-agent settings selected for a campaign type
type CampaignRoute struct {
	CampaignType string
	AgentID      string
	FromNumber   string
}

// NormalizeCampaignType lower-cases the tag and applies the default campaign.
// Unknown tags are kept as given; routing decides what they resolve to.
func NormalizeCampaignType(campaignType string) string {
	ct := strings.ToLower(strings.TrimSpace(campaignType))
	if ct == "" {
		return CampaignGoldLoan
	}
	return ct
}

// IsWinback reports whether the campaign type selects the winback flow
func IsWinback(campaignType string) bool {
	return NormalizeCampaignType(campaignType) == CampaignWinback
}
