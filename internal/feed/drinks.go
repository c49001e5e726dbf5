package feed

import (
	"sort"

	"github.com/paujie/brocode/internal/model"
)

// RankDrinks returns a read-only ranking of drinks by vote count,
// descending. Ties keep the input's order (the suggestion order from the
// service layer), not any ordering by id or name. The input is not
// mutated.
func RankDrinks(drinks []*model.Drink) []*model.Drink {
	ranked := make([]*model.Drink, len(drinks))
	for i, d := range drinks {
		ranked[i] = d.Clone()
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Votes > ranked[j].Votes
	})
	return ranked
}
