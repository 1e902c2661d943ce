package tables

import (
	"github.com/nexuscrm/datatable/pkg/constants"
	"github.com/nexuscrm/datatable/pkg/errors"
)

// Registry maps table short names to their descriptors. It is read-only
// after construction and safe for concurrent use.
type Registry struct {
	byName map[string]*TableDescriptor
	order  []string
}

// NewRegistry creates a registry over the given descriptors. A later
// descriptor with the same short name replaces an earlier one.
func NewRegistry(descriptors ...*TableDescriptor) *Registry {
	r := &Registry{byName: make(map[string]*TableDescriptor, len(descriptors))}
	for _, d := range descriptors {
		if _, exists := r.byName[d.ShortName]; !exists {
			r.order = append(r.order, d.ShortName)
		}
		r.byName[d.ShortName] = d
	}
	return r
}

// DefaultRegistry returns the tables served by the data table UI
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewTableDescriptor(constants.TableRandom, constants.BackendTableRandom,
			Column{Name: "random_num", Type: constants.ColumnTypeInt},
			Column{Name: "random_float", Type: constants.ColumnTypeFloat},
			Column{Name: "md5", Type: constants.ColumnTypeText},
		),
		NewTableDescriptor(constants.TableData, constants.BackendTableData,
			Column{Name: "my_date", Type: constants.ColumnTypeText},
			Column{Name: "my_data", Type: constants.ColumnTypeText},
		),
	)
}

// Lookup returns the descriptor for a short name
func (r *Registry) Lookup(shortName string) (*TableDescriptor, error) {
	d, ok := r.byName[shortName]
	if !ok {
		return nil, errors.NewInvalidTableError(shortName)
	}
	return d, nil
}

// All returns the descriptors in registration order
func (r *Registry) All() []*TableDescriptor {
	out := make([]*TableDescriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
