package simtarget

import (
	"fmt"

	csdinspect "github.com/csgtools/csd-inspect"
	"github.com/csgtools/csd-inspect/memview"
)

// ListTypes bundles the descriptors for one list instantiation, named and
// shaped the way debugger metadata reports the CSG templates.
type ListTypes struct {
	Cat       *memview.Catalog
	Element   *memview.TypeDesc
	Entry     *memview.TypeDesc
	RefUnion  *memview.TypeDesc
	Extractor *memview.TypeDesc
	FwdHead   *memview.TypeDesc
	Head      *memview.TypeDesc
	Proxy     *memview.TypeDesc

	// Linkage is "slist", "stailq" or "tailq".
	Linkage string

	// Offset is where the entry struct sits inside the element; the
	// extractor's non-type template argument.
	Offset uint64
}

// BuildListTypes constructs the full descriptor set for one instantiation
// of a CSG list over elem, with the link entry embedded at the given byte
// offset. sized selects an unsigned long size member; otherwise the head
// carries csg::no_size.
func BuildListTypes(c *memview.Catalog, elem *memview.TypeDesc, linkage string, offset uint64, sized bool) *ListTypes {
	ulong := c.Int("unsigned long", 8, false)
	en := elem.Name()

	entryName := fmt.Sprintf("csg::%s_entry<%s>", linkage, en)
	entrySize := 8
	if linkage == "tailq" {
		entrySize = 16
	}
	entry := c.Struct(entryName, entrySize)

	offsetRef := c.Struct(fmt.Sprintf("csg::detail::offset_entry_ref<%s>", entryName), 8,
		memview.F("m_address", ulong, 0))
	refUnion := c.Union(fmt.Sprintf("csg::entry_ref_union<%s, %s>", entryName, en), 8,
		memview.F("offset", offsetRef, 0)).
		WithTemplateArgs(memview.TypeArg(entry), memview.TypeArg(elem))

	if linkage == "tailq" {
		entry.WithFields(
			memview.F("next", refUnion, 0),
			memview.F("prev", refUnion, 8),
		)
	} else {
		entry.WithFields(memview.F("next", refUnion, 0))
	}

	extractor := c.Struct(
		fmt.Sprintf("csg::offset_extractor<%s, %s, %d>", entryName, en, offset), 1).
		WithTemplateArgs(
			memview.TypeArg(entry),
			memview.TypeArg(elem),
			memview.ConstArg(fmt.Sprintf("%d", offset), ulong),
		)

	szType := ulong
	szName := "unsigned long"
	if !sized {
		szType = c.Struct("csg::no_size", 1)
		szName = "csg::no_size"
	}

	fwdName := fmt.Sprintf("csg::%s_fwd_head<%s>", linkage, en)
	var fwdHead *memview.TypeDesc
	switch linkage {
	case "tailq":
		fwdHead = c.Struct(fwdName, 24,
			memview.F("m_endEntry", entry, 0),
			memview.F("m_sz", szType, 16),
		)
	case "stailq":
		fwdHead = c.Struct(fwdName, 24,
			memview.F("m_headEntry", entry, 0),
			memview.F("m_tailEntry", entry, 8),
			memview.F("m_sz", szType, 16),
		)
	default:
		fwdHead = c.Struct(fwdName, 16,
			memview.F("m_headEntry", entry, 0),
			memview.F("m_sz", szType, 8),
		)
	}
	fwdSize := uint64(fwdHead.Size())

	base := c.Struct(
		fmt.Sprintf("csg::detail::%s_base<%s, %s>", linkage, en, fwdName), 1).
		WithTemplateArgs(memview.TypeArg(elem))

	head := c.Struct(
		fmt.Sprintf("csg::%s_head<%s, %s>", linkage, en, szName),
		int(fwdSize)+8,
		memview.Base(base, 0),
		memview.F("m_head", fwdHead, 0),
		memview.F("m_entryExtractor", extractor, fwdSize),
	)

	proxy := c.Struct(
		fmt.Sprintf("csg::%s_proxy<%s>", linkage, fwdName),
		c.PointerSize+8,
		memview.Base(base, 0),
		memview.F("m_head", c.Reference(fwdHead), 0),
		memview.F("m_entryExtractor", extractor, uint64(c.PointerSize)),
	)

	return &ListTypes{
		Cat:       c,
		Element:   elem,
		Entry:     entry,
		RefUnion:  refUnion,
		Extractor: extractor,
		FwdHead:   fwdHead,
		Head:      head,
		Proxy:     proxy,
		Linkage:   linkage,
		Offset:    offset,
	}
}

// AccessorNames returns the qualified names of the two codec accessors for
// this instantiation, exactly as a target binary's symbol table carries
// them: the offset argument written with its ABI literal suffix.
func (lt *ListTypes) AccessorNames() (getEntry, getValue string) {
	exText := fmt.Sprintf("csg::offset_extractor<%s, %s, %dul>",
		lt.Entry.Name(), lt.Element.Name(), lt.Offset)
	className := fmt.Sprintf("csg::detail::entry_ref_codec<%s, %s, %s>",
		lt.Entry.Name(), lt.Element.Name(), exText)
	getEntry = fmt.Sprintf("%s::get_entry(%s &, %s)", className, exText, lt.RefUnion.Name())
	getValue = fmt.Sprintf("%s::get_value(%s)", className, lt.RefUnion.Name())
	return
}

// RegisterCodec installs Go implementations of the instantiation's two
// accessors into the symbol map. The semantics mirror the compiled codec:
// a tagged word addresses the element directly and reaches the entry
// through the extractor offset; an untagged word addresses the entry and
// reaches the element back through it.
func RegisterCodec(m *SymbolMap, space memview.Space, lt *ListTypes) {
	geName, gvName := lt.AccessorNames()
	entryPtr := lt.Cat.Pointer(lt.Entry)
	elemPtr := lt.Cat.Pointer(lt.Element)

	m.Define(geName, Func(func(args ...csdinspect.Value) (csdinspect.Value, error) {
		word, err := rawRefWord(args[len(args)-1])
		if err != nil {
			return nil, err
		}
		entryAddr := word
		if word&1 == 1 {
			entryAddr = word - 1 + lt.Offset
		}
		return memview.Synth(space, entryPtr, entryAddr), nil
	}))

	m.Define(gvName, Func(func(args ...csdinspect.Value) (csdinspect.Value, error) {
		word, err := rawRefWord(args[len(args)-1])
		if err != nil {
			return nil, err
		}
		elemAddr := word - lt.Offset
		if word&1 == 1 {
			elemAddr = word - 1
		}
		return memview.Synth(space, elemPtr, elemAddr), nil
	}))
}

func rawRefWord(ref csdinspect.Value) (uint64, error) {
	off, err := ref.Field("offset")
	if err != nil {
		return 0, err
	}
	m, err := off.Field("m_address")
	if err != nil {
		return 0, err
	}
	return m.Uint()
}
