package services

import (
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// LoadForm reads a scoping form from a YAML file. Unknown keys fail the
// load: a typoed field would otherwise silently drop scope from a quote.
func LoadForm(path string) (*ScopingForm, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read scoping form %s: %w", path, err)
	}

	var form ScopingForm
	if err := k.UnmarshalWithConf("", &form, koanf.UnmarshalConf{
		Tag: "yaml",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			Result:           &form,
		},
	}); err != nil {
		return nil, fmt.Errorf("decode scoping form %s: %w", path, err)
	}
	return &form, nil
}

// LoadStageData reads recorded production-stage field bags from a YAML
// file keyed by stage name.
func LoadStageData(path string) (StageData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stage data %s: %w", path, err)
	}

	var byName map[string]map[string]any
	if err := yamlv3.Unmarshal(raw, &byName); err != nil {
		return nil, fmt.Errorf("decode stage data %s: %w", path, err)
	}

	data := make(StageData, len(byName))
	for name, fields := range byName {
		stage := Stage(name)
		if !ValidStage(stage) {
			return nil, fmt.Errorf("stage data %s: unknown stage %q", path, name)
		}
		data[stage] = fields
	}
	return data, nil
}
