package phase

import (
	"testing"

	"github.com/pipid/ingester/schema"
)

func TestPreferencesPhase(t *testing.T) {
	tests := []struct {
		name     string
		identity map[string]any
		want     []string
	}{
		{
			name:     "absent preferences",
			identity: map[string]any{},
			want:     nil,
		},
		{
			name:     "empty preferences",
			identity: map[string]any{"preferences": map[string]any{}},
			want:     nil,
		},
		{
			name:     "non-object preferences",
			identity: map[string]any{"preferences": []any{"dark"}},
			want:     []string{"Preferences must be an object"},
		},
		{
			name: "valid categories",
			identity: map[string]any{"preferences": map[string]any{
				"ui":      map[string]any{"theme": "dark"},
				"privacy": map[string]any{"dataSharing": "none"},
			}},
			want: nil,
		},
		{
			name: "violations follow category registration order",
			identity: map[string]any{"preferences": map[string]any{
				"risk": map[string]any{"tolerance": "reckless"},
				"ui":   map[string]any{"theme": "neon"},
			}},
			want: []string{
				"Invalid ui.theme value",
				"Invalid risk.tolerance value",
			},
		},
		{
			name: "non-object category",
			identity: map[string]any{"preferences": map[string]any{
				"ui": "dark",
			}},
			want: []string{`Field "preferences.ui" must be an object`},
		},
		{
			name: "unknown category passes through",
			identity: map[string]any{"preferences": map[string]any{
				"astrology": map[string]any{"sign": "pisces"},
			}},
			want: nil,
		},
	}

	p := NewPreferencesPhase(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, issues := runPhase(t, p, tt.identity)
			if len(issues) != len(tt.want) {
				t.Fatalf("Validate() returned %d issues; want %d: %v", len(issues), len(tt.want), issues)
			}
			for i, msg := range tt.want {
				if issues[i].Diagnostics != msg {
					t.Errorf("issue[%d] = %q; want %q", i, issues[i].Diagnostics, msg)
				}
			}
		})
	}
}

func TestPreferencesPhaseCustomRegistry(t *testing.T) {
	r := schema.NewRegistry()
	r.Register(&schema.Category{
		Name:      "gaming",
		EnumOrder: []string{"difficulty"},
		Enums:     map[string][]string{"difficulty": {"easy", "hard"}},
	})

	p := NewPreferencesPhase(r)
	_, issues := runPhase(t, p, map[string]any{"preferences": map[string]any{
		"gaming": map[string]any{"difficulty": "nightmare"},
	}})
	if len(issues) != 1 || issues[0].Diagnostics != "Invalid gaming.difficulty value" {
		t.Errorf("Validate() = %v; want single gaming.difficulty issue", issues)
	}
}

func TestBehaviorsPhase(t *testing.T) {
	tests := []struct {
		name     string
		identity map[string]any
		want     []string
	}{
		{"absent behaviors", map[string]any{}, nil},
		{
			"valid behaviors",
			map[string]any{"behaviors": map[string]any{"workflow": "linear"}},
			nil,
		},
		{
			"non-object behaviors",
			map[string]any{"behaviors": "linear"},
			[]string{"Behaviors must be an object"},
		},
		{
			"invalid value",
			map[string]any{"behaviors": map[string]any{"learningStyle": "osmosis"}},
			[]string{"Invalid behaviors.learningStyle value"},
		},
	}

	p := NewBehaviorsPhase()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, issues := runPhase(t, p, tt.identity)
			if len(issues) != len(tt.want) {
				t.Fatalf("Validate() returned %d issues; want %d: %v", len(issues), len(tt.want), issues)
			}
			for i, msg := range tt.want {
				if issues[i].Diagnostics != msg {
					t.Errorf("issue[%d] = %q; want %q", i, issues[i].Diagnostics, msg)
				}
			}
		})
	}
}
