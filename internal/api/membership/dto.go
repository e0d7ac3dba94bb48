package membership

import "investment-app/internal/domain/membership"

type TierDTO struct {
	Key              membership.TierKey `json:"key"`
	Rank             int                `json:"rank"`
	Name             string             `json:"name"`
	Emoji            string             `json:"emoji"`
	Benefits         string             `json:"benefits"`
	MinAmount        float64            `json:"min_amount"`
	MaxAmount        *float64           `json:"max_amount"`
	MaxPerInvestment float64            `json:"max_per_investment"`
	Plans            []membership.Plan  `json:"plans"`
}

func BuildTierDTOs(engine *membership.Engine) []TierDTO {
	tiers := engine.Catalog().Tiers()
	out := make([]TierDTO, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, TierDTO{
			Key:              t.Key,
			Rank:             t.Rank,
			Name:             t.Name,
			Emoji:            t.Emoji,
			Benefits:         t.Benefits,
			MinAmount:        t.MinAmount,
			MaxAmount:        t.MaxAmount,
			MaxPerInvestment: t.MaxPerInvestment,
			Plans:            engine.PlansFor(t.Key),
		})
	}
	return out
}
