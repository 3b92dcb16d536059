package normalize

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	pi "github.com/pipid/ingester"
	"github.com/pipid/ingester/schema"
)

func TestApplyFillsDefaults(t *testing.T) {
	out, err := Apply(map[string]any{"version": "0.1.0"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	prefs, ok := out["preferences"].(map[string]any)
	if !ok {
		t.Fatalf("preferences = %T; want object", out["preferences"])
	}
	for _, name := range schema.Default().Names() {
		if _, ok := prefs[name]; !ok {
			t.Errorf("preferences missing defaulted category %q", name)
		}
	}

	ui := prefs["ui"].(map[string]any)
	if ui["theme"] != "auto" {
		t.Errorf("ui.theme = %v; want auto", ui["theme"])
	}
	if ui["colorBlindMode"] != false {
		t.Errorf("ui.colorBlindMode = %v; want false", ui["colorBlindMode"])
	}

	notif := prefs["notifications"].(map[string]any)
	if chans := notif["channels"].([]any); len(chans) != 1 || chans[0] != "in-app" {
		t.Errorf("notifications.channels = %v; want [in-app]", notif["channels"])
	}
}

func TestApplySuppliedValuesWin(t *testing.T) {
	out, err := Apply(map[string]any{
		"preferences": map[string]any{
			"ui": map[string]any{
				"theme":       "neon", // invalid, still kept
				"cursorStyle": "block",
			},
		},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	ui := out["preferences"].(map[string]any)["ui"].(map[string]any)
	if ui["theme"] != "neon" {
		t.Errorf("ui.theme = %v; want supplied value neon", ui["theme"])
	}
	if ui["cursorStyle"] != "block" {
		t.Errorf("ui.cursorStyle = %v; want block", ui["cursorStyle"])
	}
	// Absent siblings still get defaults.
	if ui["density"] != "comfortable" {
		t.Errorf("ui.density = %v; want comfortable", ui["density"])
	}
}

func TestApplyUnknownCategoryPassthrough(t *testing.T) {
	out, err := Apply(map[string]any{
		"preferences": map[string]any{
			"astrology": map[string]any{"sign": "pisces"},
		},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	prefs := out["preferences"].(map[string]any)
	want := map[string]any{"sign": "pisces"}
	if !reflect.DeepEqual(prefs["astrology"], want) {
		t.Errorf("astrology = %v; want %v", prefs["astrology"], want)
	}
}

func TestApplyNonObjectCategoryPassthrough(t *testing.T) {
	out, err := Apply(map[string]any{
		"preferences": map[string]any{"ui": "dark"},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if got := out["preferences"].(map[string]any)["ui"]; got != "dark" {
		t.Errorf("ui = %v; want the supplied string untouched", got)
	}
}

func TestApplyNonObjectPreferencesPassthrough(t *testing.T) {
	out, err := Apply(map[string]any{"preferences": "dark everywhere"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if out["preferences"] != "dark everywhere" {
		t.Errorf("preferences = %v; want the supplied string untouched", out["preferences"])
	}
}

func TestApplyBehaviors(t *testing.T) {
	// Absent behaviors materialize as an empty object with no defaults.
	out, err := Apply(map[string]any{})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	behaviors, ok := out["behaviors"].(map[string]any)
	if !ok || len(behaviors) != 0 {
		t.Errorf("behaviors = %v; want empty object", out["behaviors"])
	}

	// Supplied behaviors are copied verbatim.
	out, err = Apply(map[string]any{
		"behaviors": map[string]any{"workflow": "linear"},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	behaviors = out["behaviors"].(map[string]any)
	if len(behaviors) != 1 || behaviors["workflow"] != "linear" {
		t.Errorf("behaviors = %v; want only the supplied field", behaviors)
	}
}

func TestApplyNonObject(t *testing.T) {
	for _, value := range []any{"hello", []any{1}, float64(3), nil} {
		_, err := Apply(value)
		var normErr *pi.NormalizationError
		if !errors.As(err, &normErr) {
			t.Errorf("Apply(%v) error = %v; want *NormalizationError", value, err)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	doc := map[string]any{
		"version": "0.1.0",
		"preferences": map[string]any{
			"ui": map[string]any{"theme": "dark"},
		},
	}
	raw, _ := json.Marshal(doc)
	before := string(raw)

	if _, err := Apply(doc); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	raw, _ = json.Marshal(doc)
	if string(raw) != before {
		t.Error("Apply mutated its input")
	}
}

func TestApplyIdempotent(t *testing.T) {
	doc := map[string]any{
		"version": "0.1.0",
		"preferences": map[string]any{
			"risk": map[string]any{"maxTransactionAmount": float64(50)},
		},
	}

	once, err := Apply(doc)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	twice, err := Apply(once)
	if err != nil {
		t.Fatalf("Apply(Apply()) error = %v", err)
	}

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalization not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestApplyCustomRegistry(t *testing.T) {
	r := schema.NewRegistry()
	r.Register(&schema.Category{
		Name:     "gaming",
		Defaults: map[string]any{"difficulty": "easy"},
	})

	out, err := New(r).Apply(map[string]any{})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	gaming := out["preferences"].(map[string]any)["gaming"].(map[string]any)
	if gaming["difficulty"] != "easy" {
		t.Errorf("gaming.difficulty = %v; want easy", gaming["difficulty"])
	}
}
