package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyBackspace, "Backspace"},
		{KeyPageDown, "PageDown"},
		{KeyLeft, "Left"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{KeyRune, "Rune"},
		{Key(99), "Key(99)"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		// Every nameable key resolves from its own String form.
		{"Escape", KeyEscape},
		{"Insert", KeyInsert},
		{"PageUp", KeyPageUp},
		{"Right", KeyRight},
		{"F10", KeyF10},

		// Short forms, including the ones Event.String emits.
		{"esc", KeyEscape},
		{"return", KeyEnter},
		{"cr", KeyEnter},
		{"bs", KeyBackspace},
		{"del", KeyDelete},
		{"ins", KeyInsert},
		{"pgup", KeyPageUp},
		{"pgdn", KeyPageDown},
		{"pagedown", KeyPageDown},

		{"  TAB ", KeyTab},
		{"hOmE", KeyHome},

		// Sentinels are not names a binding can use.
		{"none", KeyNone},
		{"rune", KeyNone},
		{"", KeyNone},
		{"f13", KeyNone},
	}

	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKeyFromNameCoversEveryKey(t *testing.T) {
	for k := KeyEscape; k < KeyRune; k++ {
		if got := KeyFromName(k.String()); got != k {
			t.Errorf("KeyFromName(%q) = %v, want %v", k.String(), got, k)
		}
	}
}
