package optvar

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type keyKind int

const (
	keyByIndex keyKind = iota
	keyByName
	keyByNames
)

// Key selects one element of a List, either positionally, by name, or as
// a composite of several names.
type Key struct {
	kind  keyKind
	index int
	names []string
}

// ByIndex selects the i-th real element in declaration order.
func ByIndex(i int) Key {
	return Key{kind: keyByIndex, index: i}
}

// ByName selects the element with the given name. The name "all" selects
// a transient unsliced view over every real element.
func ByName(name string) Key {
	return Key{kind: keyByName, names: []string{name}}
}

// ByNames selects a transient composite over the named real elements, in
// list-declaration order. Names that match nothing are skipped.
func ByNames(names ...string) Key {
	owned := make([]string, len(names))
	copy(owned, names)
	return Key{kind: keyByNames, names: owned}
}

func (k Key) String() string {
	switch k.kind {
	case keyByIndex:
		return fmt.Sprintf("#%d", k.index)
	case keyByName:
		return k.names[0]
	case keyByNames:
		return "[" + strings.Join(k.names, ", ") + "]"
	default:
		return "invalid key"
	}
}

// NotFoundError reports a Key that matched no element of a List.
type NotFoundError struct {
	// Key is the printable form of the failed lookup.
	Key string
	// List is the label of the list that was searched.
	List string
}

func (e *NotFoundError) Error() string {
	if e.List == "" {
		return fmt.Sprintf("%s is not in the list", e.Key)
	}
	return fmt.Sprintf("%s is not in the %s list", e.Key, e.List)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
