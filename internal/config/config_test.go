package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "" {
		t.Fatalf("OutputDir = %q, want empty", cfg.OutputDir)
	}
	if cfg.WriteReport || cfg.ValidateOutput {
		t.Fatalf("WriteReport/ValidateOutput should default to false")
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"output_dir": "out", "write_report": true}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "out" {
		t.Fatalf("OutputDir = %q, want %q", cfg.OutputDir, "out")
	}
	if !cfg.WriteReport {
		t.Fatalf("WriteReport = false, want true")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_DisabledCategories(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"disabled_categories": ["acronyms", "nontabular"]}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.DisabledCategories) != 2 {
		t.Fatalf("DisabledCategories length = %d, want 2", len(cfg.DisabledCategories))
	}
	if cfg.DisabledCategories[0] != "acronyms" {
		t.Errorf("DisabledCategories[0] = %q, want %q", cfg.DisabledCategories[0], "acronyms")
	}
	if cfg.DisabledCategories[1] != "nontabular" {
		t.Errorf("DisabledCategories[1] = %q, want %q", cfg.DisabledCategories[1], "nontabular")
	}
}

func TestLoad_DisabledCategoriesEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.DisabledCategories) != 0 {
		t.Fatalf("DisabledCategories = %v, want nil or empty", cfg.DisabledCategories)
	}
}

func TestLoadWithRepo_BothPresent(t *testing.T) {
	globalDir := t.TempDir()
	repoRoot := t.TempDir()

	// Global config
	globalConfig := `{"output_dir": "global-out", "disabled_categories": ["acronyms"]}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// Repo config at repoRoot/.figgrid/config.json
	repoDir := filepath.Join(repoRoot, ".figgrid")
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	repoConfig := `{"output_dir": "repo-out", "disabled_categories": ["nontabular"]}`
	if err := os.WriteFile(filepath.Join(repoDir, "config.json"), []byte(repoConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, repoRoot)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	// Repo overrides scalar
	if cfg.OutputDir != "repo-out" {
		t.Errorf("OutputDir = %q, want %q (repo override)", cfg.OutputDir, "repo-out")
	}

	// Arrays merged
	if len(cfg.DisabledCategories) != 2 {
		t.Errorf("DisabledCategories length = %d, want 2", len(cfg.DisabledCategories))
	}
}

func TestLoadWithRepo_OnlyGlobal(t *testing.T) {
	globalDir := t.TempDir()
	repoDir := t.TempDir() // No config file

	globalConfig := `{"output_dir": "global-out", "disabled_categories": ["acronyms"]}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, repoDir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	if cfg.OutputDir != "global-out" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "global-out")
	}
	if len(cfg.DisabledCategories) != 1 || cfg.DisabledCategories[0] != "acronyms" {
		t.Errorf("DisabledCategories = %v, want [acronyms]", cfg.DisabledCategories)
	}
}

func TestLoadWithRepo_OnlyRepo(t *testing.T) {
	globalDir := t.TempDir() // No config file
	repoRoot := t.TempDir()

	// Repo config at repoRoot/.figgrid/config.json
	repoDir := filepath.Join(repoRoot, ".figgrid")
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	repoConfig := `{"disabled_categories": ["acronyms", "nontabular"]}`
	if err := os.WriteFile(filepath.Join(repoDir, "config.json"), []byte(repoConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, repoRoot)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	if cfg.OutputDir != "" {
		t.Errorf("OutputDir = %q, want empty (default)", cfg.OutputDir)
	}
	if len(cfg.DisabledCategories) != 2 {
		t.Errorf("DisabledCategories length = %d, want 2", len(cfg.DisabledCategories))
	}
}

func TestLoadWithRepo_NeitherPresent(t *testing.T) {
	globalDir := t.TempDir()
	repoDir := t.TempDir()

	cfg, err := LoadWithRepo(globalDir, repoDir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	// All defaults
	if cfg.OutputDir != "" {
		t.Errorf("OutputDir = %q, want empty", cfg.OutputDir)
	}
	if len(cfg.DisabledCategories) != 0 {
		t.Errorf("DisabledCategories = %v, want empty", cfg.DisabledCategories)
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Config{OutputDir: "base-out", DBMaxOpenConns: 5}
	overlay := &Config{OutputDir: "overlay-out"} // DBMaxOpenConns is 0 (zero value)

	result := Merge(base, overlay)

	if result.OutputDir != "overlay-out" {
		t.Errorf("OutputDir = %q, want %q (overlay)", result.OutputDir, "overlay-out")
	}
	if result.DBMaxOpenConns != 5 {
		t.Errorf("DBMaxOpenConns = %d, want 5 (base, overlay is zero)", result.DBMaxOpenConns)
	}
}

func TestMerge_BooleanOr(t *testing.T) {
	base := &Config{ValidateOutput: true}
	overlay := &Config{ValidateOutput: false}

	result := Merge(base, overlay)

	if !result.ValidateOutput {
		t.Error("ValidateOutput should be true (base OR overlay)")
	}
}

func TestMerge_ArrayMergeDedup(t *testing.T) {
	base := &Config{DisabledCategories: []string{"acronyms", "nontabular"}}
	overlay := &Config{DisabledCategories: []string{"nontabular", "offset"}}

	result := Merge(base, overlay)

	if len(result.DisabledCategories) != 3 {
		t.Errorf("DisabledCategories length = %d, want 3 (merged, deduped)", len(result.DisabledCategories))
	}

	has := make(map[string]bool)
	for _, s := range result.DisabledCategories {
		has[s] = true
	}
	for _, want := range []string{"acronyms", "nontabular", "offset"} {
		if !has[want] {
			t.Errorf("DisabledCategories missing %q", want)
		}
	}
}

func TestFindRepoConfig_InCurrentDir(t *testing.T) {
	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, ".figgrid")
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	configPath := filepath.Join(repoDir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	found := FindRepoConfig(tmpDir)
	if found != configPath {
		t.Errorf("FindRepoConfig() = %q, want %q", found, configPath)
	}
}

func TestFindRepoConfig_InParentDir(t *testing.T) {
	// Create: tmpDir/.figgrid/config.json
	//         tmpDir/subdir/deeper/
	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, ".figgrid")
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	configPath := filepath.Join(repoDir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	subdir := filepath.Join(tmpDir, "subdir", "deeper")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	// Start from subdir, should find config in parent
	found := FindRepoConfig(subdir)
	if found != configPath {
		t.Errorf("FindRepoConfig() = %q, want %q", found, configPath)
	}
}

func TestFindRepoConfig_NotFound(t *testing.T) {
	tmpDir := t.TempDir()
	// No .figgrid directory

	found := FindRepoConfig(tmpDir)
	if found != "" {
		t.Errorf("FindRepoConfig() = %q, want empty string", found)
	}
}

func TestLoadWithRepo_WalksUpward(t *testing.T) {
	// Create: tmpDir/.figgrid/config.json with disabled_categories
	//         tmpDir/subdir/
	tmpDir := t.TempDir()
	globalDir := t.TempDir() // Separate global dir

	repoDir := filepath.Join(tmpDir, ".figgrid")
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	repoConfig := `{"disabled_categories": ["acronyms"]}`
	if err := os.WriteFile(filepath.Join(repoDir, "config.json"), []byte(repoConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	subdir := filepath.Join(tmpDir, "subdir")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	// Load from subdir, should find repo config in parent
	cfg, err := LoadWithRepo(globalDir, subdir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	if len(cfg.DisabledCategories) != 1 || cfg.DisabledCategories[0] != "acronyms" {
		t.Errorf("DisabledCategories = %v, want [acronyms]", cfg.DisabledCategories)
	}
}
