package constraints

import (
	"testing"

	"github.com/TingTung93/AI-Schedule-Manager-sub001/pkg/rules"
)

func TestGetLibraryCoversAllRuleTypes(t *testing.T) {
	library := GetLibrary()

	byName := make(map[string]RuleDefinition, len(library))
	for _, def := range library {
		if _, dup := byName[def.Name]; dup {
			t.Errorf("duplicate definition for %q", def.Name)
		}
		byName[def.Name] = def
	}

	known := rules.KnownTypes()
	if len(library) != len(known) {
		t.Errorf("library has %d definitions, engine knows %d types", len(library), len(known))
	}
	for _, typ := range known {
		if _, ok := byName[string(typ)]; !ok {
			t.Errorf("missing library definition for rule type %q", typ)
		}
	}
}

func TestGetLibraryDefinitionsComplete(t *testing.T) {
	for _, def := range GetLibrary() {
		if def.DisplayName == "" || def.Description == "" || def.Category == "" {
			t.Errorf("definition %q has empty display fields", def.Name)
		}
		if def.Scope != "global" && def.Scope != "employee" {
			t.Errorf("definition %q has unexpected scope %q", def.Name, def.Scope)
		}
		for _, p := range def.Params {
			if p.Name == "" || p.Type == "" {
				t.Errorf("definition %q has an unnamed or untyped param", def.Name)
			}
		}
	}
}

func TestFindDefinition(t *testing.T) {
	def, ok := FindDefinition("rest_period")
	if !ok {
		t.Fatal("rest_period definition should exist")
	}
	if len(def.Params) != 1 || def.Params[0].Name != "min_rest_hours" {
		t.Errorf("unexpected params for rest_period: %+v", def.Params)
	}
	if def.Params[0].Default != "8" {
		t.Errorf("min_rest_hours default = %q, want 8", def.Params[0].Default)
	}

	if _, ok := FindDefinition("no_such_rule"); ok {
		t.Error("unknown name should not resolve")
	}
}
