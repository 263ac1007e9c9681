package eligibility

import (
	"strings"
	"time"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

// Category filters campaigns by type.
type Category string

const (
	CategoryVaccinations Category = "VACCINATIONS"
	CategoryScreening    Category = "SCREENING"
	CategoryAll          Category = "ALL"
)

// ParseCategory normalises and validates a category string. Empty input
// defaults to ALL.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToUpper(strings.TrimSpace(s))) {
	case "", CategoryAll:
		return CategoryAll, nil
	case CategoryVaccinations:
		return CategoryVaccinations, nil
	case CategoryScreening:
		return CategoryScreening, nil
	}
	return "", ErrUnknownCategory
}

func (c Category) includes(t domain.CampaignType) bool {
	switch c {
	case CategoryVaccinations:
		return t == domain.CampaignTypeVaccination
	case CategoryScreening:
		return t == domain.CampaignTypeScreening
	default:
		return true
	}
}

// ConditionCampaigns pairs a condition name with every live campaign that
// targets it, in the order the campaigns were supplied.
type ConditionCampaigns struct {
	ConditionName string
	Campaigns     []*domain.CampaignConfig
}

// GroupCampaigns selects the live campaigns matching the category and
// condition filter and groups them by their target condition. An empty
// conditions list means every condition. Condition order follows the first
// appearance of each condition in the input.
func GroupCampaigns(configs []domain.CampaignConfig, category Category, conditions []string, today time.Time) []ConditionCampaigns {
	wanted := make(map[string]bool, len(conditions))
	for _, c := range conditions {
		wanted[strings.ToUpper(strings.TrimSpace(c))] = true
	}

	var groups []ConditionCampaigns
	index := make(map[string]int)
	for i := range configs {
		cfg := &configs[i]
		if !cfg.Live(today) || !category.includes(cfg.Type) {
			continue
		}
		name := strings.ToUpper(cfg.Target)
		if len(wanted) > 0 && !wanted[name] {
			continue
		}
		at, ok := index[name]
		if !ok {
			at = len(groups)
			index[name] = at
			groups = append(groups, ConditionCampaigns{ConditionName: name})
		}
		groups[at].Campaigns = append(groups[at].Campaigns, cfg)
	}
	return groups
}
