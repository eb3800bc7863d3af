package inspect

import "strings"

// Flavor is the closed set of CSG list shapes. Classification happens once
// per inspected value from the normalized type name; everything downstream
// switches on the flavor instead of re-examining names.
type Flavor uint8

const (
	SListHead Flavor = iota
	SListProxy
	STailQHead
	STailQProxy
	TailQHead
	TailQProxy
)

var flavorNames = [...]string{
	SListHead:   "slist_head",
	SListProxy:  "slist_proxy",
	STailQHead:  "stailq_head",
	STailQProxy: "stailq_proxy",
	TailQHead:   "tailq_head",
	TailQProxy:  "tailq_proxy",
}

func (f Flavor) String() string { return flavorNames[f] }

// IsProxy reports whether the value is a non-owning handle that must be
// dereferenced once to reach the real head.
func (f Flavor) IsProxy() bool {
	return f == SListProxy || f == STailQProxy || f == TailQProxy
}

// IsTailQ reports whether traversal terminates at the head's own embedded
// sentinel entry rather than at a null reference.
func (f Flavor) IsTailQ() bool {
	return f == TailQHead || f == TailQProxy
}

// LinkageName returns the entry linkage the flavor traverses: "slist",
// "stailq" or "tailq".
func (f Flavor) LinkageName() string {
	name := flavorNames[f]
	return name[:strings.IndexByte(name, '_')]
}

// ClassifyFlavor maps a normalized, namespace-stripped type name to its
// flavor. Unknown names report ok == false; that is "no decoder", not an
// error.
func ClassifyFlavor(baseName string) (Flavor, bool) {
	for f, name := range flavorNames {
		if name == baseName {
			return Flavor(f), true
		}
	}
	return 0, false
}
