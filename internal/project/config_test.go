package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadStringAndTableRules(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
rules = [
    "remove_whitespaces",
    { name = "remove_comments", keep = ["^--!"] },
    { name = "shift_lines", shift = 2 },
]
include = ["src/*.lua"]
output = "dist"
`)
	config, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(config.Rules) != 3 {
		t.Fatalf("rules = %d", len(config.Rules))
	}
	if config.Rules[0].Name != "remove_whitespaces" || config.Rules[0].Properties != nil {
		t.Fatalf("rule 0 = %+v", config.Rules[0])
	}
	if config.Rules[1].Name != "remove_comments" {
		t.Fatalf("rule 1 = %+v", config.Rules[1])
	}
	if _, ok := config.Rules[1].Properties["keep"]; !ok {
		t.Fatalf("rule 1 properties = %v", config.Rules[1].Properties)
	}
	if config.Output != "dist" || len(config.Include) != 1 {
		t.Fatalf("config = %+v", config)
	}

	built, err := config.BuildRules()
	if err != nil {
		t.Fatalf("BuildRules: %v", err)
	}
	if len(built) != 3 {
		t.Fatalf("built = %d", len(built))
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad syntax", content: "rules = [\n"},
		{name: "rule entry type", content: "rules = [ 7 ]"},
		{name: "table without name", content: `rules = [ { keep = ["x"] } ]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			if _, err := Load(path); err == nil {
				t.Fatal("Load succeeded")
			}
		})
	}
}

func TestBuildRulesRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{name: "unknown rule", config: Config{Rules: []RuleConfig{{Name: "nope"}}}},
		{name: "unknown property", config: Config{Rules: []RuleConfig{
			{Name: "remove_whitespaces", Properties: map[string]any{"deep": true}},
		}}},
		{name: "missing required property", config: Config{Rules: []RuleConfig{{Name: "shift_lines"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.config.BuildRules(); err == nil {
				t.Fatal("BuildRules succeeded")
			}
		})
	}
}

func TestDefaultRules(t *testing.T) {
	config := Default()
	built, err := config.BuildRules()
	if err != nil {
		t.Fatalf("BuildRules: %v", err)
	}
	want := []string{"remove_comments", "remove_whitespaces", "remove_empty_do"}
	if len(built) != len(want) {
		t.Fatalf("built = %d", len(built))
	}
	for i, rule := range built {
		if rule.Name() != want[i] {
			t.Fatalf("rule %d = %q, want %q", i, rule.Name(), want[i])
		}
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	wrote := writeConfig(t, root, "rules = []")

	found, ok, err := FindConfig(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("config not found")
	}
	if found != wrote {
		t.Fatalf("found %q, want %q", found, wrote)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	config, err := Resolve("", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(config.Rules) != 3 {
		t.Fatalf("rules = %d", len(config.Rules))
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		path    string
		want    bool
	}{
		{name: "default lua", path: "init.lua", want: true},
		{name: "default luau", path: "src/main.luau", want: true},
		{name: "default other", path: "README.md", want: false},
		{name: "pattern hit", include: []string{"src/*.lua"}, path: "src/a.lua", want: true},
		{name: "pattern miss", include: []string{"src/*.lua"}, path: "test/a.lua", want: false},
		{name: "base name fallback", include: []string{"*.lua"}, path: "deep/tree/a.lua", want: true},
		{name: "base name excludes others", include: []string{"*.lua"}, path: "deep/tree/a.luau", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{Include: tt.include}
			if got := config.Matches(tt.path); got != tt.want {
				t.Fatalf("Matches(%q) = %t, want %t", tt.path, got, tt.want)
			}
		})
	}
}
