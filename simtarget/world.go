package simtarget

import (
	"sort"

	csdinspect "github.com/csgtools/csd-inspect"
	"github.com/csgtools/csd-inspect/memview"
)

// World is the canned demo target: an Item element type linked into three
// lists at once, a populated memory image, and a symbol table carrying the
// codec accessors for every instantiation.
type World struct {
	Cat    *memview.Catalog
	Image  *Image
	Syms   *SymbolMap
	Item   *memview.TypeDesc
	SList  *ListTypes
	STailQ *ListTypes
	TailQ  *ListTypes

	roots map[string]csdinspect.Value
	names []string
}

// Demo layout addresses. The image is mapped at 0x10000.
const (
	worldBase = 0x10000
	worldSize = 0x1000

	addrSListHead  = 0x10000 // slist_head "numbers": [10, 20, 30], sized
	addrSListProxy = 0x10020 // slist_proxy "numbers_view" -> 0x10000
	addrTailQProxy = 0x10030 // tailq_proxy "queue_view" -> 0x10040
	addrTailQHead  = 0x10040 // tailq_head "queue": [10, 20], no size member
	addrSTailQHead = 0x10070 // stailq_head "empty": [], sized
	addrRefTagged  = 0x10090 // entry_ref_union "ref_tagged" -> Item 1, tagged
	addrRefEntry   = 0x10098 // entry_ref_union "ref_entry" -> Item 1's slink

	addrItem1 = 0x10100
	addrItem2 = 0x10160
	addrItem3 = 0x101c0
)

// Item member offsets: value at 0, then one link entry per list.
const (
	offValue = 0
	offSLink = 8
	offQLink = 16
	offSTail = 32
)

// NewWorld builds the demo target.
func NewWorld() *World {
	c := &memview.Catalog{PointerSize: 8}
	long := c.Int("long", 8, true)

	item := c.Struct("Item", 48)
	sl := BuildListTypes(c, item, "slist", offSLink, true)
	tq := BuildListTypes(c, item, "tailq", offQLink, false)
	st := BuildListTypes(c, item, "stailq", offSTail, true)
	item.WithFields(
		memview.F("value", long, offValue),
		memview.F("slink", sl.Entry, offSLink),
		memview.F("qlink", tq.Entry, offQLink),
		memview.F("stlink", st.Entry, offSTail),
	)

	im := NewImage(worldBase, worldSize)

	// Items.
	im.PutU64(addrItem1+offValue, 10)
	im.PutU64(addrItem2+offValue, 20)
	im.PutU64(addrItem3+offValue, 30)

	// "numbers": 0x10000 -> i1 -> i2 -> i3 -> null, m_sz = 3.
	im.PutU64(addrSListHead, addrItem1+offSLink)
	im.PutU64(addrSListHead+8, 3)
	im.PutU64(addrItem1+offSLink, addrItem2+offSLink)
	im.PutU64(addrItem2+offSLink, addrItem3+offSLink)
	im.PutU64(addrItem3+offSLink, 0)

	// "numbers_view": reference to the head's forward head.
	im.PutU64(addrSListProxy, addrSListHead)

	// "queue": sentinel at 0x10040 -> i1 -> i2 -> sentinel. The stop
	// value is the sentinel's own address, never zero.
	im.PutU64(addrTailQHead, addrItem1+offQLink)
	im.PutU64(addrTailQHead+8, addrItem2+offQLink)
	im.PutU64(addrItem1+offQLink, addrItem2+offQLink)
	im.PutU64(addrItem1+offQLink+8, addrTailQHead)
	im.PutU64(addrItem2+offQLink, addrTailQHead)
	im.PutU64(addrItem2+offQLink+8, addrItem1+offQLink)

	// "queue_view".
	im.PutU64(addrTailQProxy, addrTailQHead)

	// "empty": first reference already null, m_sz = 0.
	im.PutU64(addrSTailQHead, 0)
	im.PutU64(addrSTailQHead+8, addrSTailQHead)
	im.PutU64(addrSTailQHead+16, 0)

	// Tagged and untagged reference words for the decoder demo.
	im.PutU64(addrRefTagged, addrItem1+1)
	im.PutU64(addrRefEntry, addrItem1+offSLink)

	syms := NewSymbolMap()
	RegisterCodec(syms, im, sl)
	RegisterCodec(syms, im, tq)
	RegisterCodec(syms, im, st)

	w := &World{
		Cat:    c,
		Image:  im,
		Syms:   syms,
		Item:   item,
		SList:  sl,
		STailQ: st,
		TailQ:  tq,
		roots:  make(map[string]csdinspect.Value),
	}
	w.addRoot("numbers", memview.NewValue(im, sl.Head, addrSListHead))
	w.addRoot("numbers_view", memview.NewValue(im, sl.Proxy, addrSListProxy))
	w.addRoot("queue", memview.NewValue(im, tq.Head, addrTailQHead))
	w.addRoot("queue_view", memview.NewValue(im, tq.Proxy, addrTailQProxy))
	w.addRoot("empty", memview.NewValue(im, st.Head, addrSTailQHead))
	w.addRoot("ref_tagged", memview.NewValue(im, sl.RefUnion, addrRefTagged))
	w.addRoot("ref_entry", memview.NewValue(im, sl.RefUnion, addrRefEntry))
	return w
}

func (w *World) addRoot(name string, v csdinspect.Value) {
	w.roots[name] = v
	w.names = append(w.names, name)
	sort.Strings(w.names)
}

// Root returns a named demo variable.
func (w *World) Root(name string) (csdinspect.Value, bool) {
	v, ok := w.roots[name]
	return v, ok
}

// RootNames lists the demo variables in sorted order.
func (w *World) RootNames() []string {
	return append([]string(nil), w.names...)
}
