package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"github.com/veilstone/objectprop/op"
	"github.com/veilstone/objectprop/schema"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	classColor  = color.New(color.FgYellow, color.Bold)
	keyColor    = color.New(color.FgCyan)
	stringColor = color.New(color.FgGreen)
	numberColor = color.New(color.FgMagenta)
	enumColor   = color.New(color.FgBlue)
	nullColor   = color.New(color.FgHiBlack)
	flagColor   = color.New(color.FgRed)
)

func printHeader(w io.Writer, path string, size int, hdr op.Header) {
	fmt.Fprintf(w, "File: %s (%d bytes)\n", path, size)
	fmt.Fprintf(w, "Format: %s\n\n", describeHeader(hdr))
}

func describeHeader(hdr op.Header) string {
	var traits []string
	if hdr.Compressed {
		traits = append(traits, "compressed")
	}
	if hdr.StringPropertyNames {
		traits = append(traits, "hashed property names")
	}
	if hdr.Versioned {
		traits = append(traits, fmt.Sprintf("version %d", hdr.Version))
	}
	if len(traits) == 0 {
		return "plain"
	}
	return strings.Join(traits, ", ")
}

func printTree(w io.Writer, v op.Value, reg *schema.Registry) {
	printValue(w, v, reg, 0)
	fmt.Fprintln(w)
}

func printValue(w io.Writer, v op.Value, reg *schema.Registry, indent int) {
	pad := strings.Repeat("  ", indent)

	switch v.Kind() {
	case op.KindNull:
		fmt.Fprint(w, nullColor.Sprint("null"))

	case op.KindString:
		fmt.Fprint(w, stringColor.Sprintf("%q", v.AsString()))

	case op.KindBytes:
		b := v.AsBytes()
		if len(b) > 16 {
			fmt.Fprintf(w, "blob[%d] %s…", len(b), numberColor.Sprintf("% x", b[:16]))
		} else {
			fmt.Fprintf(w, "blob[%d] %s", len(b), numberColor.Sprintf("% x", b))
		}

	case op.KindEnum:
		raw, symbol := v.AsEnum()
		if symbol != "" {
			fmt.Fprintf(w, "%s (%d)", enumColor.Sprint(symbol), raw)
		} else {
			fmt.Fprint(w, enumColor.Sprintf("%d", raw))
		}

	case op.KindList:
		elems := v.AsList()
		if len(elems) == 0 {
			fmt.Fprint(w, "[]")
			return
		}
		fmt.Fprintf(w, "[%d]", len(elems))
		for i, e := range elems {
			fmt.Fprintf(w, "\n%s  %s ", pad, keyColor.Sprintf("[%d]", i))
			printValue(w, e, reg, indent+1)
		}

	case op.KindObject:
		obj := v.AsObject()
		name := fmt.Sprintf("0x%08X", obj.TypeID)
		if class, ok := reg.LookupClass(obj.TypeID); ok {
			name = class.Name
		}
		fmt.Fprint(w, classColor.Sprint(name))
		for _, f := range obj.Fields {
			fmt.Fprintf(w, "\n%s  %s: ", pad, keyColor.Sprint(f.Name))
			printValue(w, f.Value, reg, indent+1)
		}

	default:
		fmt.Fprint(w, numberColor.Sprint(formatScalar(v)))
	}
}

func formatScalar(v op.Value) string {
	switch v.Kind() {
	case op.KindBool:
		return fmt.Sprintf("%v", v.AsBool())
	case op.KindI8, op.KindI16, op.KindI32, op.KindI64:
		return fmt.Sprintf("%d", v.AsInt())
	case op.KindU8, op.KindU16, op.KindU32, op.KindU64:
		return fmt.Sprintf("%d", v.AsUint())
	case op.KindF32, op.KindF64:
		return fmt.Sprintf("%g", v.AsFloat())
	default:
		return v.Kind().String()
	}
}

func writeJSON(w io.Writer, v op.Value) error {
	out, err := json.MarshalIndent(v.Interface(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

func listClasses(w io.Writer, reg *schema.Registry) {
	classes := reg.Classes()
	total := lo.SumBy(classes, func(c *schema.ClassDef) int {
		return len(c.Properties)
	})
	fmt.Fprintf(w, "%d classes, %d properties\n\n", len(classes), total)

	for _, c := range classes {
		fmt.Fprintf(w, "%s (0x%08X)\n", classColor.Sprint(c.Name), c.TypeID)
		for _, p := range c.Properties {
			fmt.Fprintf(w, "  %s: %s", keyColor.Sprint(p.Name), p.Type.String())
			if p.Flags != 0 {
				fmt.Fprintf(w, " %s", flagColor.Sprint(p.Flags.String()))
			}
			fmt.Fprintln(w)
		}
	}
}
