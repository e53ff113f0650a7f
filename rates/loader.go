package rates

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment-variable overrides, e.g.
// SCANQUOTE_CONSTANTS_QC=0.06.
const EnvPrefix = "SCANQUOTE_"

// envSections are the single-row config sections reachable through env
// vars. Row lists (arch_rates etc.) can only come from the file layer.
var envSections = []string{"constants", "travel", "flat_rates"}

// Load builds a snapshot from layered configuration. Precedence, lowest to
// highest: compiled-in defaults, the YAML file at path (skipped when path
// is empty), SCANQUOTE_-prefixed environment variables.
func Load(path string) (*Tables, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return Build(cfg)
}

// LoadConfig performs the layered load without building the indexes.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultConfigMap(), "."), nil); err != nil {
		return cfg, fmt.Errorf("load default rates: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("read rate file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKeyTransform), nil); err != nil {
		return cfg, fmt.Errorf("load rate env vars: %w", err)
	}

	// ErrorUnused turns unknown keys (typically typos, since the default
	// layer covers every valid key) into load failures instead of silent
	// rate gaps.
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			Result:           &cfg,
		},
	}); err != nil {
		return cfg, fmt.Errorf("decode rate config: %w", err)
	}

	return cfg, nil
}

// envKeyTransform maps SCANQUOTE_CONSTANTS_SLAM_AUTO_THRESHOLD to
// constants.slam_auto_threshold. Only the section prefix becomes a path
// separator; underscores inside key names are preserved.
func envKeyTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range envSections {
		if rest, ok := strings.CutPrefix(s, section+"_"); ok {
			return section + "." + rest
		}
	}
	return s
}

// defaultConfigMap renders the compiled-in snapshot into the nested map
// shape koanf merges file and env layers onto.
func defaultConfigMap() map[string]interface{} {
	raw, err := yamlv3.Marshal(DefaultConfig())
	if err != nil {
		panic(err)
	}
	var m map[string]interface{}
	if err := yamlv3.Unmarshal(raw, &m); err != nil {
		panic(err)
	}
	return m
}
