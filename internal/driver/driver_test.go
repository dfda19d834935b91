package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"luamend/internal/project"
	"luamend/internal/rules"
)

func buildChain(t *testing.T, names ...string) []rules.Rule {
	t.Helper()
	chain := make([]rules.Rule, 0, len(names))
	for _, name := range names {
		rule, err := rules.New(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := rule.Configure(nil); err != nil {
			t.Fatal(err)
		}
		chain = append(chain, rule)
	}
	return chain
}

func TestProcessSource(t *testing.T) {
	src := "local a = 1 -- note\nreturn a\n"
	chain := buildChain(t, "remove_comments", "remove_whitespaces")
	output, err := ProcessSource(src, chain, Options{HoldTokenData: true})
	if err != nil {
		t.Fatal(err)
	}
	if output != "local a=1 return a" {
		t.Fatalf("output = %q", output)
	}
}

func TestProcessSourceWithoutRulesRoundTrips(t *testing.T) {
	src := "#!/usr/bin/env lua\nlocal a = 1; -- keep\nreturn a\n"
	output, err := ProcessSource(src, nil, Options{HoldTokenData: true})
	if err != nil {
		t.Fatal(err)
	}
	if output != src {
		t.Fatalf("output = %q, want input back", output)
	}
}

func TestProcessSourceReportsParseError(t *testing.T) {
	if _, err := ProcessSource("local", nil, Options{}); err == nil {
		t.Fatal("ProcessSource succeeded on invalid source")
	}
}

func TestParseSource(t *testing.T) {
	block, err := ParseSource("local a = 1\nreturn a\n", Options{HoldTokenData: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := block.StatementCount(); got != 1 {
		t.Fatalf("statements = %d", got)
	}
	if block.LastStatement() == nil {
		t.Fatal("missing last statement")
	}

	if _, err := ParseSource("return return", Options{}); err == nil {
		t.Fatal("ParseSource succeeded on invalid source")
	}
}

func TestCacheKey(t *testing.T) {
	config := &project.Config{Rules: []project.RuleConfig{
		{Name: "remove_comments", Properties: map[string]any{"keep": "^--!"}},
	}}
	opts := Options{HoldTokenData: true}

	base := cacheKey("local a = 1", config, opts)
	if again := cacheKey("local a = 1", config, opts); again != base {
		t.Fatal("key is not deterministic")
	}
	if other := cacheKey("local a = 2", config, opts); other == base {
		t.Fatal("key ignores source")
	}
	if other := cacheKey("local a = 1", config, Options{}); other == base {
		t.Fatal("key ignores options")
	}
	renamed := &project.Config{Rules: []project.RuleConfig{
		{Name: "remove_whitespaces", Properties: map[string]any{"keep": "^--!"}},
	}}
	if other := cacheKey("local a = 1", renamed, opts); other == base {
		t.Fatal("key ignores rule name")
	}
	retuned := &project.Config{Rules: []project.RuleConfig{
		{Name: "remove_comments", Properties: map[string]any{"keep": "^--"}},
	}}
	if other := cacheKey("local a = 1", retuned, opts); other == base {
		t.Fatal("key ignores rule properties")
	}

	// Jobs and Output shape the run, not the per-file output.
	if other := cacheKey("local a = 1", config, Options{HoldTokenData: true, Jobs: 8}); other != base {
		t.Fatal("key depends on parallelism")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("luamend")
	if err != nil {
		t.Fatal(err)
	}
	key := cacheKey("local a = 1", project.Default(), Options{})

	if _, ok, err := cache.Get(key); err != nil || ok {
		t.Fatalf("empty cache: ok=%t err=%v", ok, err)
	}
	if err := cache.Put(key, &CachePayload{Schema: cacheSchemaVersion, Output: "local a=1"}); err != nil {
		t.Fatal(err)
	}
	payload, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("after put: ok=%t err=%v", ok, err)
	}
	if payload.Output != "local a=1" {
		t.Fatalf("payload = %+v", payload)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Fatal("entry survived DropAll")
	}
}

func TestDiskCacheSchemaMismatchMisses(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("luamend")
	if err != nil {
		t.Fatal(err)
	}
	key := cacheKey("return 1", project.Default(), Options{})
	if err := cache.Put(key, &CachePayload{Schema: cacheSchemaVersion + 1, Output: "return 1"}); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(key); err != nil || ok {
		t.Fatalf("stale schema: ok=%t err=%v", ok, err)
	}
}

func TestNilDiskCacheIsInert(t *testing.T) {
	var cache *DiskCache
	key := Digest{}
	if err := cache.Put(key, &CachePayload{}); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(key); err != nil || ok {
		t.Fatalf("nil cache: ok=%t err=%v", ok, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"init.lua":          "return 1\n",
		"src/main.luau":     "return 2\n",
		"src/notes.txt":     "not source\n",
		".git/ignored.lua":  "return 3\n",
		"src/util/deep.lua": "return 4\n",
	})

	runner := NewRunner(project.Default(), Options{NoCache: true})
	files, err := runner.ListFiles(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"init.lua",
		filepath.FromSlash("src/main.luau"),
		filepath.FromSlash("src/util/deep.lua"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v", files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files = %v, want %v", files, want)
		}
	}
}

func TestRunSingleFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "main.lua")
	if err := os.WriteFile(path, []byte("local a = 1 -- gone\nreturn a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	config := &project.Config{Rules: []project.RuleConfig{
		{Name: "remove_comments"},
		{Name: "remove_whitespaces"},
	}}
	runner := NewRunner(config, Options{HoldTokenData: true, NoCache: true})
	summary, err := runner.Run(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Succeeded != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "local a=1 return a" {
		t.Fatalf("output = %q", data)
	}
}

func TestRunDirectoryRecordsFailures(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"good.lua": "return 1\n",
		"bad.lua":  "local\n",
	})

	config := &project.Config{}
	runner := NewRunner(config, Options{HoldTokenData: true, NoCache: true, Jobs: 2})
	var seen []string
	var mu sync.Mutex
	runner.OnResult = func(result FileResult) {
		mu.Lock()
		seen = append(seen, result.Path)
		mu.Unlock()
	}

	summary, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Succeeded != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(seen) != 2 {
		t.Fatalf("OnResult calls = %v", seen)
	}
	for _, result := range summary.Results {
		if result.Path == "bad.lua" {
			if result.Err == nil {
				t.Fatal("bad.lua has no error")
			}
			if !strings.Contains(result.Err.Error(), "bad.lua") {
				t.Fatalf("error does not name the file: %v", result.Err)
			}
		}
	}
}

func TestRunDirectoryWritesToOutput(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.lua": "return 1\n",
	})

	runner := NewRunner(&project.Config{}, Options{HoldTokenData: true, NoCache: true, Output: out})
	summary, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	data, err := os.ReadFile(filepath.Join(out, "src", "a.lua"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "return 1\n" {
		t.Fatalf("output = %q", data)
	}
	original, err := os.ReadFile(filepath.Join(root, "src", "a.lua"))
	if err != nil {
		t.Fatal(err)
	}
	if string(original) != "return 1\n" {
		t.Fatal("input file was rewritten despite the output directory")
	}
}

func TestRunDirectoryUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.lua": "return 1\n"})

	runner := NewRunner(&project.Config{}, Options{HoldTokenData: true})
	if runner.cache == nil {
		t.Fatal("cache did not open")
	}

	first, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached != 0 {
		t.Fatalf("first run cached = %d", first.Cached)
	}
	second, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if second.Cached != 1 || second.Succeeded != 1 {
		t.Fatalf("second run = %+v", second)
	}
}
