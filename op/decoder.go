package op

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/veilstone/objectprop/errors"
	"github.com/veilstone/objectprop/op/internal/bitstream"
	"github.com/veilstone/objectprop/schema"
)

// Decode parses a serialized blob into a value tree using the given
// registry. The leading flags byte on the wire overrides the
// compression, naming and versioning fields of cfg; the remaining
// fields (depth ceiling, trailing-data policy) come from cfg.
//
// Any error aborts the whole call: a property stream that
// desynchronizes mid-object cannot be resynchronized.
func Decode(data []byte, reg *schema.Registry, cfg WireConfig) (Value, error) {
	v, _, err := DecodeWithHeader(data, reg, cfg)
	return v, err
}

// DecodeWithHeader is Decode plus the parsed wire header, for callers
// that care about the version tag or the flag bits the blob declared.
func DecodeWithHeader(data []byte, reg *schema.Registry, cfg WireConfig) (Value, Header, error) {
	d := &decoder{
		r:   bitstream.NewReader(data),
		reg: reg,
		cfg: cfg,
	}

	hdr, err := d.readHeader()
	if err != nil {
		return Value{}, Header{}, err
	}

	root, err := d.decodeRoot()
	if err != nil {
		return Value{}, Header{}, err
	}

	Logger().Debug("decoded object",
		zap.Int("input_bytes", len(data)),
		zap.Bool("compressed", hdr.Compressed),
		zap.Bool("versioned", hdr.Versioned))

	return root, hdr, nil
}

// decoder carries the call-scoped state of one decode: cursor, config,
// depth counter and the class/property path used in error reports.
// Nothing here is shared between calls; the registry is read-only.
type decoder struct {
	r     *bitstream.Reader
	reg   *schema.Registry
	cfg   WireConfig
	path  []string
	depth int
}

// readHeader parses the flags byte, switches to the inflated buffer
// for compressed blobs, and reads the advisory version tag. The wire
// bits override the caller config for this call.
func (d *decoder) readHeader() (Header, error) {
	flags, err := d.r.ReadU8()
	if err != nil {
		return Header{}, d.fail(err)
	}

	hdr := Header{
		Compressed:          flags&flagCompressed != 0,
		StringPropertyNames: flags&flagStringPropertyNames != 0,
		Versioned:           flags&flagVersioned != 0,
	}
	d.cfg.Compressed = hdr.Compressed
	d.cfg.StringPropertyNames = hdr.StringPropertyNames
	d.cfg.Versioned = hdr.Versioned

	if hdr.Compressed {
		declared, err := d.r.ReadU32()
		if err != nil {
			return Header{}, d.fail(err)
		}
		body, err := inflate(d.r.ReadRemaining(), declared)
		if err != nil {
			return Header{}, err
		}
		d.r = bitstream.NewReader(body)
	}

	if hdr.Versioned {
		hdr.Version, err = d.r.ReadU32()
		if err != nil {
			return Header{}, d.fail(err)
		}
	}

	return hdr, nil
}

// decodeRoot reads the root type id and drives the property stream. A
// zero root id is a null value and terminates the call successfully
// with no further bytes consumed.
func (d *decoder) decodeRoot() (Value, error) {
	id, err := d.r.ReadU32()
	if err != nil {
		return Value{}, d.fail(err)
	}
	if id == 0 {
		return Null(), nil
	}

	class, ok := d.reg.LookupClass(id)
	if !ok {
		return Value{}, errors.UnknownType(errors.PhaseDecode, d.errorPath(), id)
	}

	root, err := d.decodeObjectBody(class)
	if err != nil {
		return Value{}, err
	}

	if d.cfg.StrictTrailing && d.r.Remaining() > 0 {
		return Value{}, errors.TrailingData(d.errorPath(), d.r.Remaining())
	}

	return root, nil
}

// decodeObjectBody walks a resolved class's properties in schema order
// and assembles the object value. The depth counter is incremented for
// every object entered, root and nested alike.
func (d *decoder) decodeObjectBody(class *schema.ClassDef) (Value, error) {
	d.depth++
	defer func() { d.depth-- }()
	if d.depth > d.cfg.maxDepth() {
		return Value{}, errors.DepthExceeded(errors.PhaseDecode, d.errorPath(), d.cfg.maxDepth())
	}

	d.path = append(d.path, class.Name)
	defer func() { d.path = d.path[:len(d.path)-1] }()

	fields := make([]Field, 0, len(class.Properties))
	for i := range class.Properties {
		prop := &class.Properties[i]
		if prop.Flags.Has(schema.FlagTransient) {
			continue
		}

		d.path = append(d.path, prop.Name)

		if d.cfg.StringPropertyNames {
			h, err := d.r.ReadU32()
			if err != nil {
				return Value{}, d.fail(err)
			}
			if h != prop.Hash {
				return Value{}, errors.NameMismatch(d.errorPath(), prop.Hash, h)
			}
		}

		v, err := d.decodeValue(prop.Type)
		if err != nil {
			return Value{}, err
		}
		// Deprecated properties keep the cursor aligned but their
		// decoded content is discarded.
		if prop.Flags.Has(schema.FlagDeprecated) {
			v = Null()
		}

		fields = append(fields, Field{Name: prop.Name, Value: v})
		d.path = d.path[:len(d.path)-1]
	}

	return NewObject(class.TypeID, fields...), nil
}

// fail converts bitstream exhaustion into a path-tagged decode error.
func (d *decoder) fail(err error) error {
	if stderrors.Is(err, bitstream.ErrUnexpectedEOF) {
		return errors.UnexpectedEOF(errors.PhaseDecode, d.errorPath(), d.r.Position())
	}
	return err
}

func (d *decoder) errorPath() []string {
	if len(d.path) == 0 {
		return nil
	}
	return append([]string(nil), d.path...)
}
