package agents

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const configDirName = ".codeforge"

// ConfigDir returns the workspace-local configuration directory.
func ConfigDir(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, configDirName)
}

// DefaultConfigPath returns .codeforge/config.yaml within the workspace.
func DefaultConfigPath(workspace string) string {
	return filepath.Join(ConfigDir(workspace), "config.yaml")
}

// GlobalConfig matches .codeforge/config.yaml inside the workspace. It is
// constructed explicitly and passed by reference into whatever needs it;
// nothing reads ambient process state after load time.
type GlobalConfig struct {
	Version      string                    `yaml:"version"`
	API          APIConfig                 `yaml:"api"`
	Models       ModelConfig               `yaml:"models"`
	Temperatures TemperatureConfig         `yaml:"temperatures"`
	Timeouts     TimeoutConfig             `yaml:"timeouts"`
	Languages    map[string]LanguageConfig `yaml:"languages"`
	Files        FileNaming                `yaml:"files"`
	Features     FeatureFlags              `yaml:"features"`
	Logging      LoggingConfig             `yaml:"logging"`
	Prompts      map[string]string         `yaml:"prompts"`
}

// APIConfig locates the chat completion endpoint. The key itself is resolved
// from KeyEnv by the CLI edge and injected here, never read elsewhere.
type APIConfig struct {
	Endpoint string `yaml:"endpoint"`
	KeyEnv   string `yaml:"key_env"`
	Key      string `yaml:"-"`
}

// ModelConfig names the models used for different task shapes.
type ModelConfig struct {
	Default   string `yaml:"default"`
	Fast      string `yaml:"fast"`
	Reasoning string `yaml:"reasoning"`
}

// TemperatureConfig holds per-task-shape sampling temperatures.
type TemperatureConfig struct {
	Creative float64 `yaml:"creative"`
	Precise  float64 `yaml:"precise"`
	Analysis float64 `yaml:"analysis"`
}

// TimeoutConfig bounds completion calls.
type TimeoutConfig struct {
	API   time.Duration `yaml:"api"`
	Quick time.Duration `yaml:"quick"`
}

// LanguageConfig describes per-language tooling conventions.
type LanguageConfig struct {
	Extension     string `yaml:"extension"`
	TestFramework string `yaml:"test_framework"`
	RunCommand    string `yaml:"run_command"`
	TestCommand   string `yaml:"test_command"`
}

// FileNaming holds output file prefixes.
type FileNaming struct {
	CodePrefix      string `yaml:"code_prefix"`
	TestPrefix      string `yaml:"test_prefix"`
	OptimizedPrefix string `yaml:"optimized_prefix"`
	DebuggedPrefix  string `yaml:"debugged_prefix"`
}

// FeatureFlags toggles optional pipeline stages.
type FeatureFlags struct {
	BugDetection       bool `yaml:"bug_detection"`
	Optimization       bool `yaml:"optimization"`
	ComplexityAnalysis bool `yaml:"complexity_analysis"`
	CodeReview         bool `yaml:"code_review"`
}

// LoggingConfig describes log output.
type LoggingConfig struct {
	File  string `yaml:"file"`
	LLM   bool   `yaml:"llm_debug"`
	Agent bool   `yaml:"agent_debug"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *GlobalConfig {
	return &GlobalConfig{
		Version: "1.0.0",
		API: APIConfig{
			KeyEnv: "OPENAI_API_KEY",
		},
		Models: ModelConfig{
			Default:   "gpt-4",
			Fast:      "gpt-4o",
			Reasoning: "o1-preview",
		},
		Temperatures: TemperatureConfig{
			Creative: 0.7,
			Precise:  0.3,
			Analysis: 0.5,
		},
		Timeouts: TimeoutConfig{
			API:   120 * time.Second,
			Quick: 60 * time.Second,
		},
		Languages: map[string]LanguageConfig{
			"Python": {
				Extension:     "py",
				TestFramework: "pytest",
				RunCommand:    "python {file}",
				TestCommand:   "pytest {file} -v",
			},
			"Java": {
				Extension:     "java",
				TestFramework: "JUnit",
				RunCommand:    "javac {file} && java {classname}",
				TestCommand:   "javac {file} && java org.junit.runner.JUnitCore {classname}",
			},
			"JavaScript": {
				Extension:     "js",
				TestFramework: "Jest",
				RunCommand:    "node {file}",
				TestCommand:   "npm test",
			},
			"TypeScript": {
				Extension:     "ts",
				TestFramework: "Jest",
				RunCommand:    "ts-node {file}",
				TestCommand:   "npm test",
			},
			"C++": {
				Extension:     "cpp",
				TestFramework: "Google Test",
				RunCommand:    "g++ {file} -o output && ./output",
				TestCommand:   "g++ {file} -lgtest -lgtest_main -pthread -o test && ./test",
			},
			"Go": {
				Extension:     "go",
				TestFramework: "testing",
				RunCommand:    "go run {file}",
				TestCommand:   "go test -v",
			},
			"Rust": {
				Extension:     "rs",
				TestFramework: "built-in",
				RunCommand:    "rustc {file} && ./output",
				TestCommand:   "cargo test",
			},
			"C#": {
				Extension:     "cs",
				TestFramework: "NUnit",
				RunCommand:    "dotnet run",
				TestCommand:   "dotnet test",
			},
		},
		Files: FileNaming{
			CodePrefix:      "generated_code",
			TestPrefix:      "test_generated_code",
			OptimizedPrefix: "optimized_code",
			DebuggedPrefix:  "debugged_code",
		},
		Features: FeatureFlags{
			BugDetection:       true,
			Optimization:       true,
			ComplexityAnalysis: true,
			CodeReview:         true,
		},
		Logging: LoggingConfig{
			File: "codeforge.ndjson",
		},
	}
}

// LoadGlobalConfig loads the config or returns defaults when missing. Values
// absent from the file fall back to their defaults.
func LoadGlobalConfig(path string) (*GlobalConfig, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveGlobalConfig writes the config to disk.
func SaveGlobalConfig(path string, cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("config missing")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports whether the config can reach a model.
func (c *GlobalConfig) Validate() error {
	if c.API.Key == "" && c.API.Endpoint == "" {
		return errors.New("no API key set and no alternative endpoint configured")
	}
	return nil
}

// Language looks up the tooling conventions for a language name.
func (c *GlobalConfig) Language(name string) (LanguageConfig, bool) {
	lang, ok := c.Languages[name]
	return lang, ok
}

// Prompt returns the effective system prompt for a role, honoring overrides
// from the config file.
func (c *GlobalConfig) Prompt(role string) string {
	if c != nil {
		if override, ok := c.Prompts[role]; ok && override != "" {
			return override
		}
	}
	return PromptFor(role)
}

// AgentFor assembles the agent record for a role: prompt plus the model and
// temperature the role calls for. Debugging and optimization run on the
// reasoning model at the precise temperature; generation runs creative;
// everything else runs at the analysis temperature on the default model.
func (c *GlobalConfig) AgentFor(role string) Agent {
	agent := Agent{
		Name:         role,
		SystemPrompt: c.Prompt(role),
		Model:        c.Models.Default,
		Temperature:  c.Temperatures.Analysis,
	}
	switch role {
	case RoleCodeWriter, RoleTester:
		agent.Temperature = c.Temperatures.Creative
	case RoleDebugger, RoleOptimizer:
		agent.Model = c.Models.Reasoning
		agent.Temperature = c.Temperatures.Precise
	}
	return agent
}
