package cat

import (
	"fmt"
	"slices"
	"strconv"
)

type contractKind uint8

const (
	contractVariable contractKind = iota
	contractExact
)

// ParamContract is the rule a command's parameter payload length must follow.
// The zero value is Variable.
type ParamContract struct {
	kind contractKind
	n    int
}

// Variable accepts a payload of any length, including zero.
var Variable = ParamContract{kind: contractVariable}

// Exact requires a payload of exactly n bytes.
func Exact(n int) ParamContract {
	return ParamContract{kind: contractExact, n: n}
}

// IsVariable reports whether the contract accepts any length.
func (c ParamContract) IsVariable() bool { return c.kind == contractVariable }

// Len returns the required length of an Exact contract.
func (c ParamContract) Len() (int, bool) {
	if c.kind != contractExact {
		return 0, false
	}
	return c.n, true
}

func (c ParamContract) String() string {
	if c.kind == contractExact {
		return "exact(" + strconv.Itoa(c.n) + ")"
	}
	return "variable"
}

// Descriptor is the immutable metadata of one supported mnemonic.
type Descriptor struct {
	Mnemonic    string
	ID          CommandID
	Contract    ParamContract
	Description string
}

// Registry is a read-only command table. It holds one sorted slice of
// descriptors and two indexes over it: binary search by mnemonic and a dense
// slice by CommandID. A Registry is never mutated after construction, so any
// number of channels may share one without locking.
type Registry struct {
	descriptors []Descriptor
	keys        []uint16
	byID        []int16
}

var defaultRegistry = MustNewRegistry(yaesuCommands)

// DefaultRegistry returns the process-wide Yaesu CAT command table.
func DefaultRegistry() *Registry { return defaultRegistry }

// NewRegistry builds a Registry from descriptors that must already be sorted
// by mnemonic. The table is copied; later changes to the argument have no
// effect on the Registry.
func NewRegistry(descriptors []Descriptor) (*Registry, error) {
	r := &Registry{
		descriptors: slices.Clone(descriptors),
		keys:        make([]uint16, len(descriptors)),
	}

	maxID := -1
	for i, d := range r.descriptors {
		key, ok := mnemonicKey(d.Mnemonic)
		if !ok {
			return nil, fmt.Errorf("descriptor %d: %w: %q", i, ErrInvalidMnemonic, d.Mnemonic)
		}
		if i > 0 {
			prev := r.keys[i-1]
			if key == prev {
				return nil, fmt.Errorf("descriptor %d: %w: %q", i, ErrDuplicateMnemonic, d.Mnemonic)
			}
			if key < prev {
				return nil, fmt.Errorf("descriptor %d: %w: %q after %q", i, ErrUnsortedRegistry, d.Mnemonic, r.descriptors[i-1].Mnemonic)
			}
		}
		r.keys[i] = key
		maxID = max(maxID, int(d.ID))
	}

	r.byID = make([]int16, maxID+1)
	for i := range r.byID {
		r.byID[i] = -1
	}
	for i, d := range r.descriptors {
		if r.byID[d.ID] >= 0 {
			return nil, fmt.Errorf("descriptor %d: %w: %d", i, ErrDuplicateID, d.ID)
		}
		r.byID[d.ID] = int16(i)
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on a malformed table. It is
// meant for package-level tables built at process start.
func MustNewRegistry(descriptors []Descriptor) *Registry {
	r, err := NewRegistry(descriptors)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup resolves a two-byte mnemonic. Every input maps to exactly one
// descriptor or to not found; lowercase and non-letter input is never found.
func (r *Registry) Lookup(mnemonic []byte) (Descriptor, bool) {
	if len(mnemonic) != 2 {
		return Descriptor{}, false
	}
	return r.lookupKey(mnemonic[0], mnemonic[1])
}

// LookupString is Lookup for callers holding a string.
func (r *Registry) LookupString(mnemonic string) (Descriptor, bool) {
	if len(mnemonic) != 2 {
		return Descriptor{}, false
	}
	return r.lookupKey(mnemonic[0], mnemonic[1])
}

func (r *Registry) lookupKey(a, b byte) (Descriptor, bool) {
	if !isUpper(a) || !isUpper(b) {
		return Descriptor{}, false
	}
	i, found := slices.BinarySearch(r.keys, uint16(a)<<8|uint16(b))
	if !found {
		return Descriptor{}, false
	}
	return r.descriptors[i], true
}

// ByID returns the descriptor with the given identity.
func (r *Registry) ByID(id CommandID) (Descriptor, bool) {
	if int(id) >= len(r.byID) || r.byID[id] < 0 {
		return Descriptor{}, false
	}
	return r.descriptors[r.byID[id]], true
}

// Len returns the number of descriptors.
func (r *Registry) Len() int { return len(r.descriptors) }

// Descriptors returns a copy of the table in mnemonic order.
func (r *Registry) Descriptors() []Descriptor { return slices.Clone(r.descriptors) }

// Name returns the mnemonic registered for id, or "CommandID(n)" when r has
// no such identity.
func (r *Registry) Name(id CommandID) string {
	if d, ok := r.ByID(id); ok {
		return d.Mnemonic
	}
	return "CommandID(" + strconv.Itoa(int(id)) + ")"
}

// String returns the mnemonic of id in DefaultRegistry. Identities from a
// custom table should be named with that table's Registry.Name.
func (id CommandID) String() string { return defaultRegistry.Name(id) }

func mnemonicKey(m string) (uint16, bool) {
	if len(m) != 2 || !isUpper(m[0]) || !isUpper(m[1]) {
		return 0, false
	}
	return uint16(m[0])<<8 | uint16(m[1]), true
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
