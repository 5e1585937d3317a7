package op

import (
	"go.uber.org/zap"

	"github.com/veilstone/objectprop/errors"
	"github.com/veilstone/objectprop/op/internal/bitstream"
	"github.com/veilstone/objectprop/schema"
)

// Encode serializes a value tree under the given registry and wire
// config. The root must be an object or null; the result always starts
// with a flags byte reflecting cfg, so Decode can reverse it without
// out-of-band knowledge.
func Encode(v Value, reg *schema.Registry, cfg WireConfig) ([]byte, error) {
	e := &encoder{
		w:   bitstream.NewWriter(),
		reg: reg,
		cfg: cfg,
	}

	if cfg.Versioned {
		e.w.WriteU32(cfg.Version)
	}
	if err := e.encodeObjectRef(v); err != nil {
		return nil, err
	}
	body := e.w.Bytes()

	out := bitstream.NewWriter()
	var flags uint8
	if cfg.Compressed {
		flags |= flagCompressed
	}
	if cfg.StringPropertyNames {
		flags |= flagStringPropertyNames
	}
	if cfg.Versioned {
		flags |= flagVersioned
	}
	out.WriteU8(flags)

	if cfg.Compressed {
		packed, err := deflate(body)
		if err != nil {
			return nil, err
		}
		out.WriteU32(uint32(len(body)))
		out.WriteBytes(packed)
	} else {
		out.WriteBytes(body)
	}

	result := out.Bytes()
	Logger().Debug("encoded object",
		zap.Int("output_bytes", len(result)),
		zap.Bool("compressed", cfg.Compressed),
		zap.Bool("versioned", cfg.Versioned))
	return result, nil
}

type encoder struct {
	w     *bitstream.Writer
	reg   *schema.Registry
	cfg   WireConfig
	path  []string
	depth int
}

// encodeObjectRef writes an object reference: the u32 type id followed
// by the property stream, or a bare zero id for null.
func (e *encoder) encodeObjectRef(v Value) error {
	if v.IsNull() {
		e.w.WriteU32(0)
		return nil
	}
	obj := v.AsObject()
	if obj == nil {
		return errors.TypeMismatch(e.errorPath(), "object", v.Kind().String())
	}
	class, ok := e.reg.LookupClass(obj.TypeID)
	if !ok {
		return errors.UnknownType(errors.PhaseEncode, e.errorPath(), obj.TypeID)
	}

	e.w.WriteU32(obj.TypeID)
	return e.encodeObjectBody(class, obj)
}

// encodeObjectBody writes the property stream for one object in schema
// order. Transient properties are skipped, deprecated properties are
// written as their declared type's zero value regardless of the input,
// and every other property must be present in the tree unless
// FillDefaults is set.
func (e *encoder) encodeObjectBody(class *schema.ClassDef, obj *Object) error {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.cfg.maxDepth() {
		return errors.DepthExceeded(errors.PhaseEncode, e.errorPath(), e.cfg.maxDepth())
	}

	e.path = append(e.path, class.Name)
	defer func() { e.path = e.path[:len(e.path)-1] }()

	for i := range class.Properties {
		prop := &class.Properties[i]
		if prop.Flags.Has(schema.FlagTransient) {
			continue
		}

		e.path = append(e.path, prop.Name)

		if e.cfg.StringPropertyNames {
			e.w.WriteU32(prop.Hash)
		}

		var v Value
		switch {
		case prop.Flags.Has(schema.FlagDeprecated):
			v = zeroValue(prop.Type)
		default:
			var ok bool
			v, ok = obj.Get(prop.Name)
			if !ok || v.IsNull() && prop.Type.Kind != schema.KindObject {
				if !e.cfg.FillDefaults {
					return errors.IncompleteObject(e.errorPath(), prop.Name)
				}
				v = zeroValue(prop.Type)
			}
		}

		if err := e.encodeValue(prop.Type, v); err != nil {
			return err
		}
		e.path = e.path[:len(e.path)-1]
	}

	return nil
}

func (e *encoder) errorPath() []string {
	if len(e.path) == 0 {
		return nil
	}
	return append([]string(nil), e.path...)
}
