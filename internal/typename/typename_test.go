package typename

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"csg::slist_head<Item, csg::no_size>", "csg::slist_head"},
		{"csg::tailq_proxy<csg::tailq_fwd_head<Item>>", "csg::tailq_proxy"},
		{"csg::offset_extractor<E, T, 8ul>", "csg::offset_extractor"},
		{"csg::entry_ref_union<E, T>", "csg::entry_ref_union"},
		{"Item", "Item"},
		{"csg::no_size", "csg::no_size"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSplitTemplateArgs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		wantErr  bool
	}{
		{"flat", "csg::entry_ref_union<E, T>", []string{"E", "T"}, false},
		{
			"nested angles",
			"csg::detail::entry_ref_codec<csg::slist_entry<Item>, Item, csg::offset_extractor<csg::slist_entry<Item>, Item, 8ul>>",
			[]string{"csg::slist_entry<Item>", "Item", "csg::offset_extractor<csg::slist_entry<Item>, Item, 8ul>"},
			false,
		},
		{"parens protect commas", "wrap<void (*)(int, long)>", []string{"void (*)(int, long)"}, false},
		{"single", "csg::slist_entry<Item>", []string{"Item"}, false},
		{"not a template", "Item", nil, false},
		{"missing close", "csg::slist_entry<Item", nil, true},
		{"unbalanced inner", "a<b<c>", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := SplitTemplateArgs(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitTemplateArgs(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(args) != len(tt.expected) {
				t.Fatalf("SplitTemplateArgs(%q) = %v, want %v", tt.input, args, tt.expected)
			}
			for i := range args {
				if args[i] != tt.expected[i] {
					t.Fatalf("SplitTemplateArgs(%q) = %v, want %v", tt.input, args, tt.expected)
				}
			}
		})
	}
}

func TestFormatNTTP(t *testing.T) {
	tests := []struct {
		value    string
		typeName string
		expected string
	}{
		{"8", "long", "8l"},
		{"8", "long long", "8ll"},
		{"8", "unsigned int", "8u"},
		{"8", "unsigned long", "8ul"},
		{"8", "unsigned long long", "8ull"},
		{"16", "unsigned long", "16ul"},
		{"0", "unsigned long", "0ul"},
		// Unlisted types take no suffix; plain int mangles as a bare
		// literal.
		{"8", "int", "8"},
		{"8", "short", "8"},
		{"8", "std::size_t", "8"},
		{"8", "", "8"},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			result := FormatNTTP(tt.value, tt.typeName)
			if result != tt.expected {
				t.Errorf("FormatNTTP(%q, %q) = %q, want %q", tt.value, tt.typeName, result, tt.expected)
			}
		})
	}
}
