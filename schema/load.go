package schema

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	jsoniter "github.com/json-iterator/go"

	"github.com/veilstone/objectprop/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// File-level representation of a type list document. Both the JSON and
// YAML loaders funnel through this shape before registry construction.
type fileSchema struct {
	Version int         `json:"version" yaml:"version"`
	Classes []fileClass `json:"classes" yaml:"classes"`
	Enums   []fileEnum  `json:"enums" yaml:"enums"`
}

type fileClass struct {
	Name       string         `json:"name" yaml:"name"`
	Hash       uint32         `json:"hash" yaml:"hash"`
	Properties []fileProperty `json:"properties" yaml:"properties"`
}

type fileProperty struct {
	Name  string   `json:"name" yaml:"name"`
	Hash  uint32   `json:"hash" yaml:"hash"`
	Type  string   `json:"type" yaml:"type"`
	Flags []string `json:"flags" yaml:"flags"`
}

type fileEnum struct {
	Name    string           `json:"name" yaml:"name"`
	Hash    uint32           `json:"hash" yaml:"hash"`
	Options []fileEnumOption `json:"options" yaml:"options"`
}

type fileEnumOption struct {
	Name  string `json:"name" yaml:"name"`
	Value int64  `json:"value" yaml:"value"`
}

// LoadJSON parses a JSON type list document and constructs a Registry.
func LoadJSON(data []byte) (*Registry, error) {
	var f fileSchema
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindSchema, err, "parse JSON type list")
	}
	return buildRegistry(&f)
}

// LoadYAML parses a YAML type list document and constructs a Registry.
func LoadYAML(data []byte) (*Registry, error) {
	var f fileSchema
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindSchema, err, "parse YAML type list")
	}
	return buildRegistry(&f)
}

// LoadFile reads a type list from disk, dispatching on the file
// extension (.yaml/.yml for YAML, anything else JSON).
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindSchema, err, "read type list")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return LoadJSON(data)
	}
}

func buildRegistry(f *fileSchema) (*Registry, error) {
	classes := make([]ClassDef, 0, len(f.Classes))
	for _, fc := range f.Classes {
		c := ClassDef{
			Name:       fc.Name,
			TypeID:     fc.Hash,
			Properties: make([]PropertyDef, 0, len(fc.Properties)),
		}
		for _, fp := range fc.Properties {
			spec, err := ParseTypeName(fp.Type)
			if err != nil {
				return nil, errors.Schema("class %s, property %s: %v", fc.Name, fp.Name, err)
			}
			flags := parseFlags(fp.Flags)
			// DYNAMIC properties are variable-count containers even
			// when the declared element type is scalar.
			if flags.Has(FlagDynamic) && spec.Kind != KindList {
				elem := spec
				spec = TypeSpec{Kind: KindList, Elem: &elem}
			}
			c.Properties = append(c.Properties, PropertyDef{
				Name:  fp.Name,
				Hash:  fp.Hash,
				Type:  spec,
				Flags: flags,
			})
		}
		classes = append(classes, c)
	}

	enums := make([]EnumDef, 0, len(f.Enums))
	for _, fe := range f.Enums {
		e := EnumDef{
			Name:    fe.Name,
			ID:      fe.Hash,
			Options: make([]EnumOption, 0, len(fe.Options)),
		}
		for _, opt := range fe.Options {
			e.Options = append(e.Options, EnumOption{Name: opt.Name, Value: opt.Value})
		}
		enums = append(enums, e)
	}

	return NewRegistry(classes, enums)
}

// parseFlags maps flag names to bits. Unknown names are ignored so
// richer type lists (SAVE, COPY, TRANSMIT and friends) still load.
func parseFlags(names []string) PropertyFlags {
	var flags PropertyFlags
	for _, n := range names {
		switch strings.ToUpper(strings.TrimSpace(n)) {
		case "DEPRECATED":
			flags |= FlagDeprecated
		case "TRANSIENT":
			flags |= FlagTransient
		case "DYNAMIC":
			flags |= FlagDynamic
		}
	}
	return flags
}
