package codec

import (
	goerrors "errors"
	"testing"

	csdinspect "github.com/csgtools/csd-inspect"
	"github.com/csgtools/csd-inspect/errors"
	"github.com/csgtools/csd-inspect/memview"
)

// tableSyms is a canned symbol table: name -> function, plus names that
// exist but are data symbols.
type tableSyms struct {
	funcs map[string]csdinspect.Function
	data  map[string]bool
}

type nopFunc struct{}

func (nopFunc) Call(args ...csdinspect.Value) (csdinspect.Value, error) { return nil, nil }

func (s *tableSyms) LookupFunction(name string) (csdinspect.Function, error) {
	if s.data[name] {
		return nil, errors.NotAFunction(name)
	}
	fn, ok := s.funcs[name]
	if !ok {
		return nil, errors.SymbolNotFound(name)
	}
	return fn, nil
}

func testTypes() (elem, entry, refUnion, offsetEx, customEx *memview.TypeDesc) {
	c := &memview.Catalog{PointerSize: 8}
	ulong := c.Int("unsigned long", 8, false)
	elem = c.Struct("Item", 16)
	entry = c.Struct("csg::slist_entry<Item>", 8)
	refUnion = c.Union("csg::entry_ref_union<csg::slist_entry<Item>, Item>", 8).
		WithTemplateArgs(memview.TypeArg(entry), memview.TypeArg(elem))
	offsetEx = c.Struct("csg::offset_extractor<csg::slist_entry<Item>, Item, 8>", 1).
		WithTemplateArgs(
			memview.TypeArg(entry),
			memview.TypeArg(elem),
			memview.ConstArg("8", ulong),
		)
	customEx = c.Struct("ItemLinkAccessor", 1)
	return
}

func TestExtractorTypeText(t *testing.T) {
	_, _, _, offsetEx, customEx := testTypes()

	t.Run("offset extractor gets ABI suffix", func(t *testing.T) {
		got, err := ExtractorTypeText(offsetEx)
		if err != nil {
			t.Fatalf("ExtractorTypeText: %v", err)
		}
		want := "csg::offset_extractor<csg::slist_entry<Item>, Item, 8ul>"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("other extractors pass through", func(t *testing.T) {
		got, err := ExtractorTypeText(customEx)
		if err != nil {
			t.Fatalf("ExtractorTypeText: %v", err)
		}
		if got != "ItemLinkAccessor" {
			t.Errorf("got %q, want ItemLinkAccessor", got)
		}
	})

	t.Run("typedefs are stripped first", func(t *testing.T) {
		c := &memview.Catalog{PointerSize: 8}
		alias := c.Typedef("Item::link_extractor", offsetEx)
		got, err := ExtractorTypeText(alias)
		if err != nil {
			t.Fatalf("ExtractorTypeText: %v", err)
		}
		if got != "csg::offset_extractor<csg::slist_entry<Item>, Item, 8ul>" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("malformed name text fails", func(t *testing.T) {
		c := &memview.Catalog{PointerSize: 8}
		bad := c.Struct("ItemLinkAccessor<csg::slist_entry<Item>", 1)
		_, err := ExtractorTypeText(bad)
		var e *errors.Error
		if !goerrors.As(err, &e) || e.Kind != errors.KindBadTemplateArg {
			t.Errorf("error = %v, want bad_template_arg", err)
		}
	})

	t.Run("non-constant offset argument fails", func(t *testing.T) {
		c := &memview.Catalog{PointerSize: 8}
		bad := c.Struct("csg::offset_extractor<A, B, C>", 1).
			WithTemplateArgs(
				memview.TypeArg(c.Struct("A", 1)),
				memview.TypeArg(c.Struct("B", 1)),
				memview.TypeArg(c.Struct("C", 1)),
			)
		_, err := ExtractorTypeText(bad)
		var e *errors.Error
		if !goerrors.As(err, &e) || e.Kind != errors.KindBadTemplateArg {
			t.Errorf("error = %v, want bad_template_arg", err)
		}
	})
}

func TestResolve(t *testing.T) {
	elem, entry, refUnion, offsetEx, _ := testTypes()

	const className = "csg::detail::entry_ref_codec<csg::slist_entry<Item>, Item, csg::offset_extractor<csg::slist_entry<Item>, Item, 8ul>>"
	const getEntryName = className + "::get_entry(csg::offset_extractor<csg::slist_entry<Item>, Item, 8ul> &, csg::entry_ref_union<csg::slist_entry<Item>, Item>)"
	const getValueName = className + "::get_value(csg::entry_ref_union<csg::slist_entry<Item>, Item>)"

	t.Run("resolves both accessors by exact text", func(t *testing.T) {
		syms := &tableSyms{funcs: map[string]csdinspect.Function{
			getEntryName: nopFunc{},
			getValueName: nopFunc{},
		}}
		cdc, err := Resolve(syms, elem, entry, offsetEx, refUnion)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cdc.ClassName != className {
			t.Errorf("ClassName = %q, want %q", cdc.ClassName, className)
		}
		if cdc.GetEntry == nil || cdc.GetValue == nil {
			t.Error("accessor handle missing")
		}
	})

	t.Run("missing get_value is fatal", func(t *testing.T) {
		syms := &tableSyms{funcs: map[string]csdinspect.Function{
			getEntryName: nopFunc{},
		}}
		_, err := Resolve(syms, elem, entry, offsetEx, refUnion)
		var e *errors.Error
		if !goerrors.As(err, &e) || e.Kind != errors.KindSymbolNotFound {
			t.Fatalf("error = %v, want symbol_not_found", err)
		}
		if e.Symbol != getValueName {
			t.Errorf("failing symbol = %q, want %q", e.Symbol, getValueName)
		}
	})

	t.Run("data symbol with the right name is not enough", func(t *testing.T) {
		syms := &tableSyms{
			funcs: map[string]csdinspect.Function{getValueName: nopFunc{}},
			data:  map[string]bool{getEntryName: true},
		}
		_, err := Resolve(syms, elem, entry, offsetEx, refUnion)
		var e *errors.Error
		if !goerrors.As(err, &e) || e.Kind != errors.KindNotAFunction {
			t.Errorf("error = %v, want not_a_function", err)
		}
	})

	t.Run("silent null from a provider becomes symbol_not_found", func(t *testing.T) {
		syms := &nullSyms{}
		_, err := Resolve(syms, elem, entry, offsetEx, refUnion)
		var e *errors.Error
		if !goerrors.As(err, &e) || e.Kind != errors.KindSymbolNotFound {
			t.Errorf("error = %v, want symbol_not_found", err)
		}
	})
}

// nullSyms violates the SymbolTable contract by returning nil, nil.
type nullSyms struct{}

func (*nullSyms) LookupFunction(name string) (csdinspect.Function, error) { return nil, nil }
