package merger

import (
	"github.com/viant/typeclone/model"
)

// selectSpecialization picks the specialization applicable to the supplied
// parameterization using a most-specific pattern match; nil means the primary
// declaration set applies. Ties resolve in declaration order.
func selectSpecialization(base *model.TypeBase, args []string) *model.Specialization {
	var best *model.Specialization
	bestSpecificity := -1
	for _, specialization := range base.Specializations {
		if !specialization.Matches(args) {
			continue
		}
		if specificity := specialization.Specificity(); specificity > bestSpecificity {
			best = specialization
			bestSpecificity = specificity
		}
	}
	return best
}
