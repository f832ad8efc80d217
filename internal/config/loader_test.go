package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/abhisek/careerquest/internal/config"
	"github.com/abhisek/careerquest/internal/games"
	"github.com/abhisek/careerquest/internal/llm"
)

// isolateEnv blanks every variable the loader or LLM discovery reads.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CAREERQUEST_CONFIG", "CAREERQUEST_ADDR", "CAREERQUEST_SCORING_MODE",
		"CAREERQUEST_LOG_LEVEL", "CAREERQUEST_LLM_PROVIDER", "CAREERQUEST_LLM_TIMEOUT",
		"CAREERQUEST_OPENAI_API_KEY", "CAREERQUEST_DEFAULT_SKILL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "careerquest.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)

	convey.Convey("Given no file and no environment", t, func() {
		cfg, err := config.Load("")

		convey.Convey("Then defaults are used", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.ScoringMode, convey.ShouldEqual, "uniform")
			convey.So(cfg.DefaultSkill, convey.ShouldEqual, "Logic")
			convey.So(cfg.LLMTimeout, convey.ShouldEqual, 30*time.Second)
		})

		convey.Convey("Then generation stays disabled", func() {
			convey.So(cfg.LLM().Enabled(), convey.ShouldBeFalse)
		})
	})
}

func TestLoadYAMLThenEnv(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, `
addr: ":9090"
scoring_mode: primary-split
log_level: debug
llm_provider: mock
llm_timeout: 5s
insight_cache_size: 3
`)
	t.Setenv("CAREERQUEST_CONFIG", path)
	t.Setenv("CAREERQUEST_ADDR", ":7070")

	convey.Convey("Given a YAML file and an env override", t, func() {
		cfg, err := config.Load("")
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then env wins over the file", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
		})

		convey.Convey("Then file values override defaults", func() {
			convey.So(cfg.ScoringMode, convey.ShouldEqual, "primary-split")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			convey.So(cfg.LLMTimeout, convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.InsightCacheSize, convey.ShouldEqual, 3)
			convey.So(cfg.LLM().Provider, convey.ShouldEqual, llm.ProviderMock)
			convey.So(cfg.Resolver().Mode(), convey.ShouldEqual, games.ScoringPrimarySplit)
		})
	})
}

func TestLoadExplicitPath(t *testing.T) {
	isolateEnv(t)
	t.Setenv("CAREERQUEST_CONFIG", writeConfig(t, `addr: ":1111"`))
	explicit := writeConfig(t, `addr: ":2222"`)

	convey.Convey("Given both a flag path and CAREERQUEST_CONFIG", t, func() {
		cfg, err := config.Load(explicit)

		convey.Convey("Then the flag path is used", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":2222")
		})
	})
}

func TestLoadErrors(t *testing.T) {
	convey.Convey("Given invalid input", t, func() {
		convey.Convey("When the file is missing", func() {
			isolateEnv(t)
			_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the scoring mode is unknown", func() {
			isolateEnv(t)
			t.Setenv("CAREERQUEST_SCORING_MODE", "double")
			_, err := config.Load("")
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "double")
		})

		convey.Convey("When a provider lacks its key", func() {
			isolateEnv(t)
			t.Setenv("CAREERQUEST_LLM_PROVIDER", "openai")
			_, err := config.Load("")
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "openai_api_key is required")
		})
	})
}

func TestLLMDiscovery(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	convey.Convey("Given only a vendor API key in the environment", t, func() {
		cfg, err := config.Load("")
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then that provider is selected", func() {
			l := cfg.LLM()
			convey.So(l.Provider, convey.ShouldEqual, llm.ProviderAnthropic)
			convey.So(l.Anthropic.APIKey, convey.ShouldEqual, "sk-ant-test")
			convey.So(l.Anthropic.Model, convey.ShouldEqual, "claude-haiku")
		})
	})
}
