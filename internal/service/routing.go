package service

import (
	"strings"

	"github.com/Raymond9734/loan-callback-service/internal/models"
)

// CampaignRouter selects the calling agent for a campaign type
type CampaignRouter interface {
	Resolve(campaignType string) models.CampaignRoute
}

type campaignRouter struct {
	routes            map[string]models.CampaignRoute
	defaultFromNumber string
}

// NewCampaignRouter creates a router over the configured routes.
// Routes without a from number use defaultFromNumber.
func NewCampaignRouter(routes map[string]models.CampaignRoute, defaultFromNumber string) CampaignRouter {
	normalized := make(map[string]models.CampaignRoute, len(routes))
	for campaignType, route := range routes {
		normalized[models.NormalizeCampaignType(campaignType)] = route
	}
	return &campaignRouter{
		routes:            normalized,
		defaultFromNumber: defaultFromNumber,
	}
}

// Resolve returns the route for campaignType. Unknown types use the
// gold_loan route; winback never does, so an unset winback slot stays empty.
func (r *campaignRouter) Resolve(campaignType string) models.CampaignRoute {
	ct := models.NormalizeCampaignType(campaignType)

	route, ok := r.routes[ct]
	if !ok && ct != models.CampaignWinback {
		ct = models.CampaignGoldLoan
		route = r.routes[ct]
	}

	route.CampaignType = ct
	route.AgentID = strings.TrimSpace(route.AgentID)
	route.FromNumber = strings.TrimSpace(route.FromNumber)
	if route.FromNumber == "" {
		route.FromNumber = r.defaultFromNumber
	}

	return route
}
