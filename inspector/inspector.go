package inspector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/typeclone/inspector/cpp"
	"github.com/viant/typeclone/model"
)

// Inspector provides an interface for extracting type bases from source code
type Inspector interface {
	// InspectSource parses source code from a byte slice and extracts type bases
	InspectSource(src []byte) ([]*model.TypeBase, error)

	// InspectFile parses a source file and extracts type bases
	InspectFile(filename string) ([]*model.TypeBase, error)
}

// Factory creates appropriate inspectors based on file extension
type Factory struct {
	config *model.Config
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *model.Config) *Factory {
	if config == nil {
		config = model.DefaultConfig()
	}
	return &Factory{
		config: config,
	}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".h", ".hh", ".hpp", ".hxx", ".cc", ".cpp", ".cxx":
		return cpp.NewInspector(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(filename string) ([]*model.TypeBase, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(filename)
}
