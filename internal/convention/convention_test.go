package convention

import "testing"

func TestLoadScan(t *testing.T) {
	s, err := Load("scan")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "scan" {
		t.Errorf("expected name %q, got %q", "scan", s.Name)
	}
	if s.HookPrefix != "use" {
		t.Errorf("expected hook_prefix %q, got %q", "use", s.HookPrefix)
	}
	if !s.ComponentExtensions["jsx"] || !s.ComponentExtensions["tsx"] {
		t.Errorf("expected jsx and tsx in component extensions, got %v", s.ComponentExtensions)
	}
	if len(s.DefaultExcludes) == 0 {
		t.Error("expected at least one default exclude pattern")
	}
	if !s.ConstantPattern.MatchString("MAX_RETRIES") {
		t.Error("expected constant pattern to match MAX_RETRIES")
	}
	if s.ConstantPattern.MatchString("maxRetries") {
		t.Error("expected constant pattern to reject camelCase")
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Error("expected an error loading an unknown convention set")
	}
}

func TestMustLoadPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustLoad to panic on an unknown name")
		}
	}()
	MustLoad("does-not-exist")
}

func TestIsHookName(t *testing.T) {
	cases := map[string]bool{
		"useState": true,
		"useFoo":   true,
		"use":      false,
		"user":     false,
		"usecase":  false,
		"UseThing": false,
	}
	for name, want := range cases {
		if got := IsHookName(name); got != want {
			t.Errorf("IsHookName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsPascalCase(t *testing.T) {
	cases := map[string]bool{
		"Widget":      true,
		"MyComponent": true,
		"widget":      false,
		"my_widget":   false,
	}
	for name, want := range cases {
		if got := IsPascalCase(name); got != want {
			t.Errorf("IsPascalCase(%q) = %v, want %v", name, got, want)
		}
	}
}
