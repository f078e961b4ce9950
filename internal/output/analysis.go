package output

import (
	"sort"

	"github.com/rpgo/glidepath/internal/domain"
)

// RankStrategies returns the strategies ordered by final net wealth, highest first.
// Ties keep configuration order so output stays deterministic.
func RankStrategies(results *domain.StrategyComparison) []domain.StrategySummary {
	ranked := append([]domain.StrategySummary(nil), results.Strategies...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalNetWealth.GreaterThan(ranked[j].FinalNetWealth)
	})
	return ranked
}

// BreakEvenFor returns the break-even entry for the named strategy.
func BreakEvenFor(results *domain.StrategyComparison, name string) (domain.WealthBreakEven, bool) {
	for _, be := range results.BreakEvens {
		if be.StrategyName == name {
			return be, true
		}
	}
	return domain.WealthBreakEven{}, false
}

// recommended returns the summary named by the recommendation, falling back to the top ranked.
func recommended(results *domain.StrategyComparison) (domain.StrategySummary, bool) {
	for _, s := range results.Strategies {
		if s.Name == results.Recommendation.StrategyName {
			return s, true
		}
	}
	ranked := RankStrategies(results)
	if len(ranked) == 0 {
		return domain.StrategySummary{}, false
	}
	return ranked[0], true
}
