package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseResolve,
				Kind:     KindSymbolNotFound,
				Symbol:   "csg::detail::entry_ref_codec<E, T, X>::get_entry(X &, R)",
				TypeName: "csg::slist_head<T>",
				Detail:   "required symbol does not exist",
			},
			contains: []string{"[resolve]", "symbol_not_found", "get_entry", "slist_head", "does not exist"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseWalk,
				Kind:  KindMemoryRead,
			},
			contains: []string{"[walk]", "memory_read"},
		},
		{
			name: "error with cause and address",
			err: &Error{
				Phase:   PhaseDecode,
				Kind:    KindMemoryRead,
				Addr:    0xdead,
				HasAddr: true,
				Cause:   errors.New("page not mapped"),
			},
			contains: []string{"[decode]", "memory_read", "0xdead", "caused by", "page not mapped"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := MemoryRead(PhaseWalk, 0x1000, cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not see through to cause")
	}
}

func TestError_Is(t *testing.T) {
	err := SymbolNotFound("csg::detail::entry_ref_codec<E, T, X>::get_value(R)")

	if !errors.Is(err, &Error{Phase: PhaseResolve, Kind: KindSymbolNotFound}) {
		t.Error("Is should match same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseWalk, Kind: KindSymbolNotFound}) {
		t.Error("Is should not match different phase")
	}
	if errors.Is(err, &Error{Phase: PhaseResolve, Kind: KindNotAFunction}) {
		t.Error("Is should not match different kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseResolve, KindBadTemplateArg).
		TypeName("csg::offset_extractor<E, T, 8ul>").
		Symbol("sym").
		Addr(0x20).
		Cause(cause).
		Detail("argument %d is not a constant", 2).
		Build()

	if err.Phase != PhaseResolve {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseResolve)
	}
	if err.Kind != KindBadTemplateArg {
		t.Errorf("Kind = %v, want %v", err.Kind, KindBadTemplateArg)
	}
	if err.TypeName != "csg::offset_extractor<E, T, 8ul>" {
		t.Errorf("TypeName = %v", err.TypeName)
	}
	if err.Symbol != "sym" {
		t.Errorf("Symbol = %v, want 'sym'", err.Symbol)
	}
	if !err.HasAddr || err.Addr != 0x20 {
		t.Errorf("Addr = %v (has=%v), want 0x20", err.Addr, err.HasAddr)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "argument 2 is not a constant" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("SymbolNotFound", func(t *testing.T) {
		err := SymbolNotFound("a::b::c")
		if err.Kind != KindSymbolNotFound || err.Symbol != "a::b::c" {
			t.Errorf("got kind=%v symbol=%v", err.Kind, err.Symbol)
		}
	})

	t.Run("NotAFunction", func(t *testing.T) {
		err := NotAFunction("a::b")
		if err.Kind != KindNotAFunction {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotAFunction)
		}
	})

	t.Run("MemoryRead keeps cause unmodified", func(t *testing.T) {
		cause := errors.New("unmapped")
		err := MemoryRead(PhaseWalk, 0x44, cause)
		if err.Cause != cause {
			t.Error("cause was replaced")
		}
	})

	t.Run("FieldMissing", func(t *testing.T) {
		err := FieldMissing(PhaseWalk, "csg::slist_fwd_head<T>", "m_headEntry")
		if err.Kind != KindFieldMissing {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldMissing)
		}
		if !strings.Contains(err.Error(), "m_headEntry") {
			t.Errorf("message %q lacks field name", err.Error())
		}
	})

	t.Run("BadTemplateArg", func(t *testing.T) {
		err := BadTemplateArg("csg::offset_extractor<A, B, C>", 2, "not a constant")
		if err.Kind != KindBadTemplateArg {
			t.Errorf("Kind = %v, want %v", err.Kind, KindBadTemplateArg)
		}
	})
}
