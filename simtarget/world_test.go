package simtarget

import (
	goerrors "errors"
	"testing"

	"github.com/csgtools/csd-inspect/errors"
)

func TestAccessorNames(t *testing.T) {
	w := NewWorld()
	ge, gv := w.SList.AccessorNames()

	const exText = "csg::offset_extractor<csg::slist_entry<Item>, Item, 8ul>"
	const className = "csg::detail::entry_ref_codec<csg::slist_entry<Item>, Item, " + exText + ">"

	if want := className + "::get_entry(" + exText + " &, csg::entry_ref_union<csg::slist_entry<Item>, Item>)"; ge != want {
		t.Errorf("get_entry name:\n got %q\nwant %q", ge, want)
	}
	if want := className + "::get_value(csg::entry_ref_union<csg::slist_entry<Item>, Item>)"; gv != want {
		t.Errorf("get_value name:\n got %q\nwant %q", gv, want)
	}
}

func TestSymbolMapLookup(t *testing.T) {
	w := NewWorld()
	ge, _ := w.SList.AccessorNames()

	if _, err := w.Syms.LookupFunction(ge); err != nil {
		t.Fatalf("registered accessor not found: %v", err)
	}

	_, err := w.Syms.LookupFunction("csg::not_a_real_symbol()")
	var e *errors.Error
	if !goerrors.As(err, &e) || e.Kind != errors.KindSymbolNotFound {
		t.Errorf("missing symbol error = %v, want symbol_not_found", err)
	}

	w.Syms.DefineData("csg::some_global")
	_, err = w.Syms.LookupFunction("csg::some_global")
	if !goerrors.As(err, &e) || e.Kind != errors.KindNotAFunction {
		t.Errorf("data symbol error = %v, want not_a_function", err)
	}
}

func TestImageBounds(t *testing.T) {
	im := NewImage(0x1000, 32)
	im.PutU64(0x1000, 7)

	if b, err := im.ReadBytes(0x1000, 8); err != nil || b[0] != 7 {
		t.Fatalf("ReadBytes = %v, %v", b, err)
	}
	if _, err := im.ReadBytes(0x0fff, 8); err == nil {
		t.Error("read below base should fail")
	}
	if _, err := im.ReadBytes(0x1018, 16); err == nil {
		t.Error("read past end should fail")
	}

	im.Truncate(8)
	if _, err := im.ReadBytes(0x1008, 8); err == nil {
		t.Error("read past truncation point should fail")
	}

	// Addresses near the top of the 64-bit space must fail cleanly, not
	// wrap around the bounds arithmetic.
	if _, err := im.ReadBytes(0xfffffffffffffffa, 8); err == nil {
		t.Error("read near 2^64 should fail")
	}
	if _, err := im.ReadBytes(0x1000, -1); err == nil {
		t.Error("negative length should fail")
	}
}

func TestWorldRoots(t *testing.T) {
	w := NewWorld()
	want := []string{"empty", "numbers", "numbers_view", "queue", "queue_view", "ref_entry", "ref_tagged"}
	got := w.RootNames()
	if len(got) != len(want) {
		t.Fatalf("RootNames() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("RootNames() = %v, want %v", got, want)
		}
	}
	if _, ok := w.Root("numbers"); !ok {
		t.Error("numbers root missing")
	}
	if _, ok := w.Root("nonexistent"); ok {
		t.Error("unexpected root")
	}
}
