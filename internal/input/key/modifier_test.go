package key

import "testing"

func TestFromXterm(t *testing.T) {
	// The CSI parameter is 1 plus a bitmask: 1 shift, 2 alt, 4 ctrl, 8 meta.
	tests := []struct {
		param int
		want  Modifier
	}{
		{-1, ModNone},
		{0, ModNone},
		{1, ModNone},
		{2, ModShift},
		{3, ModAlt},
		{4, ModShift | ModAlt},
		{5, ModCtrl},
		{6, ModCtrl | ModShift},
		{7, ModCtrl | ModAlt},
		{8, ModCtrl | ModAlt | ModShift},
		{9, ModMeta},
		{10, ModMeta | ModShift},
		{13, ModMeta | ModCtrl},
		{16, ModCtrl | ModAlt | ModShift | ModMeta},
	}

	for _, tt := range tests {
		if got := FromXterm(tt.param); got != tt.want {
			t.Errorf("FromXterm(%d) = %q, want %q", tt.param, got, tt.want)
		}
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mods Modifier
		want string
	}{
		{ModNone, ""},
		{ModShift, "Shift"},
		{ModMeta, "Meta"},
		{ModShift | ModCtrl, "Ctrl+Shift"},
		{ModMeta | ModAlt, "Alt+Meta"},
		{FromXterm(16), "Ctrl+Alt+Shift+Meta"},
	}

	for _, tt := range tests {
		if got := tt.mods.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mods, got, tt.want)
		}
	}
}

func TestModifierWith(t *testing.T) {
	m := ModNone.With(ModCtrl).With(ModAlt).With(ModCtrl)
	if m != ModCtrl|ModAlt {
		t.Fatalf("With chain = %q, want Ctrl+Alt", m)
	}
	if !m.HasCtrl() || !m.HasAlt() || m.HasShift() || m.HasMeta() {
		t.Errorf("Has* on %q reports the wrong bits", m)
	}
	if !m.Has(ModCtrl | ModShift) {
		t.Error("Has should report any overlapping bit")
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"ctrl", ModCtrl},
		{"Control", ModCtrl},
		{"C", ModCtrl},
		{"alt", ModAlt},
		{"opt", ModAlt},
		{"Option", ModAlt},
		{"a", ModAlt},
		{"shift", ModShift},
		{"S", ModShift},
		{"meta", ModMeta},
		{"super", ModMeta},
		{" m ", ModMeta},
		{"hyper", ModNone},
		{"", ModNone},
	}

	for _, tt := range tests {
		if got := ModifierFromName(tt.name); got != tt.want {
			t.Errorf("ModifierFromName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
