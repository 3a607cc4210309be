package emitter

import (
	"github.com/viant/typeclone/model"
)

// Emitter renders a merged declaration set
type Emitter interface {
	Emit(set *model.MergedSet) ([]byte, error)
}
