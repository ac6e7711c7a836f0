package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	oierrors "github.com/odvcencio/interpreter/pkg/errors"
)

// DocsURL documents every option.
const DocsURL = "https://docs.openinterpreter.com/settings/all-settings"

// resetAllSentinel marks --reset_profile given without a value.
const resetAllSentinel = "\x00all"

// ErrHelp is returned when -h or --help is given.
var ErrHelp = errors.New("help requested")

// UnknownArgsError lists every argument the schema does not recognise.
type UnknownArgsError struct {
	Args []string
}

func (e *UnknownArgsError) Error() string {
	return "unrecognized argument(s): " + FormatArgs(e.Args)
}

// FormatArgs renders arguments as a bracketed, quoted list.
func FormatArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = "'" + a + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Parser turns argument vectors into Options.
type Parser struct {
	schema *Schema
	prog   string
}

// NewParser returns a parser over schema. prog names the binary in usage.
func NewParser(schema *Schema, prog string) *Parser {
	if prog == "" {
		prog = "interpreter"
	}
	return &Parser{schema: schema, prog: prog}
}

// Parse parses args (without the program name). Any unrecognised token
// fails the whole parse with *UnknownArgsError; a bad value fails with an
// INVALID_VALUE error. Nothing is partially applied either way.
func (p *Parser) Parse(args []string) (*Options, error) {
	normalized, unknown, err := p.normalize(args)
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		return nil, &UnknownArgsError{Args: unknown}
	}

	fs := p.flagSet()
	if err := fs.Parse(normalized); err != nil {
		return nil, oierrors.Wrap(err, oierrors.ErrCodeInvalidValue, "invalid argument")
	}

	opts := NewOptions()
	for _, d := range p.schema.descriptors {
		if d.Name == OptResetProfile && d.Arity == ArityOptional {
			if fs.Changed(d.Name) {
				raw, _ := fs.GetString(d.Name)
				switch {
				case raw == resetAllSentinel:
					opts.Reset = ResetRequest{Kind: ResetAll}
				case strings.TrimSpace(raw) == "":
					return nil, oierrors.Newf(oierrors.ErrCodeInvalidValue,
						"argument --%s: expected a profile name", d.Name).
						WithContext("option", d.Name)
				default:
					opts.Reset = ResetRequest{Kind: ResetNamed, Name: raw}
				}
			}
			continue
		}

		source := SourceFlag
		if !fs.Changed(d.Name) {
			if !d.HasDefault() {
				continue
			}
			source = SourceDefault
		}
		v, err := valueOf(fs, d)
		if err != nil {
			return nil, err
		}
		if d.Kind == KindChoice {
			if s, _ := v.(string); !slices.Contains(d.Choices, s) {
				return nil, oierrors.Newf(oierrors.ErrCodeInvalidValue,
					"argument --%s: invalid choice: %q (choose from %s)", d.Name, s, strings.Join(d.Choices, ", ")).
					WithContext("option", d.Name)
			}
		}
		opts.Set(d.Name, Value{V: v, Source: source})
	}
	return opts, nil
}

func valueOf(fs *pflag.FlagSet, d Descriptor) (any, error) {
	switch d.Kind {
	case KindBool:
		return fs.GetBool(d.Name)
	case KindInt:
		return fs.GetInt(d.Name)
	case KindFloat:
		return fs.GetFloat64(d.Name)
	default:
		return fs.GetString(d.Name)
	}
}

// flagSet registers every descriptor under its long name. Short and
// multi-letter forms are rewritten to long names before parsing.
func (p *Parser) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(p.prog, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	for _, d := range p.schema.descriptors {
		help := d.Help
		if d.Short != "" {
			help += " (-" + d.Short + ")"
		}
		switch d.Kind {
		case KindBool:
			def, _ := d.Default.(bool)
			fs.Bool(d.Name, def, help)
		case KindInt:
			def, _ := d.Default.(int)
			fs.Int(d.Name, def, help)
		case KindFloat:
			def, _ := d.Default.(float64)
			fs.Float64(d.Name, def, help)
		default:
			def, _ := d.Default.(string)
			if d.Kind == KindChoice {
				help += " {" + strings.Join(d.Choices, ",") + "}"
			}
			fs.String(d.Name, def, help)
		}
		if d.Arity == ArityOptional {
			fs.Lookup(d.Name).NoOptDefVal = resetAllSentinel
		}
	}
	return fs
}

// normalize rewrites every recognised token to --name or --name=value and
// collects the rest.
func (p *Parser) normalize(args []string) (out, unknown []string, err error) {
	for i := 0; i < len(args); i++ {
		tok := args[i]
		switch {
		case tok == "-h" || tok == "--help":
			return nil, nil, ErrHelp
		case tok == "--":
			unknown = append(unknown, args[i+1:]...)
			i = len(args)
		case strings.HasPrefix(tok, "--"):
			name, value, hasValue := strings.Cut(tok[2:], "=")
			d, ok := p.schema.Lookup(name)
			if !ok {
				neg, isNeg := strings.CutPrefix(name, "no-")
				if nd, found := p.schema.Lookup(neg); isNeg && found && nd.Negatable && !hasValue {
					out = append(out, "--"+nd.Name+"=false")
					continue
				}
				unknown = append(unknown, tok)
				continue
			}
			var consumed int
			out, consumed, err = p.emit(out, d, value, hasValue, args[i+1:])
			if err != nil {
				return nil, nil, err
			}
			i += consumed
		case strings.HasPrefix(tok, "-") && len(tok) > 1:
			short, value, hasValue := strings.Cut(tok[1:], "=")
			d, ok := p.schema.LookupShort(short)
			if !ok {
				unknown = append(unknown, tok)
				continue
			}
			var consumed int
			out, consumed, err = p.emit(out, d, value, hasValue, args[i+1:])
			if err != nil {
				return nil, nil, err
			}
			i += consumed
		default:
			unknown = append(unknown, tok)
		}
	}
	return out, unknown, nil
}

// emit appends the long form of d, reporting how many following tokens it
// consumed.
func (p *Parser) emit(out []string, d Descriptor, value string, hasValue bool, rest []string) ([]string, int, error) {
	long := "--" + d.Name
	switch {
	case d.Kind == KindBool:
		if hasValue && !d.Negatable {
			return nil, 0, oierrors.Newf(oierrors.ErrCodeInvalidValue, "argument %s: ignored explicit argument %q", long, value).
				WithContext("option", d.Name)
		}
		if hasValue {
			return append(out, long+"="+value), 0, nil
		}
		return append(out, long), 0, nil
	case hasValue:
		return append(out, long+"="+value), 0, nil
	case d.Arity == ArityOptional:
		if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
			return append(out, long+"="+rest[0]), 1, nil
		}
		return append(out, long), 0, nil
	default:
		if len(rest) == 0 || looksLikeFlag(rest[0]) {
			return nil, 0, oierrors.Newf(oierrors.ErrCodeInvalidValue, "argument %s: expected one argument", long).
				WithContext("option", d.Name)
		}
		return append(out, long+"="+rest[0]), 1, nil
	}
}

// looksLikeFlag reports whether tok is an option rather than a value.
// Negative numbers are values.
func looksLikeFlag(tok string) bool {
	if !strings.HasPrefix(tok, "-") || tok == "-" {
		return false
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err != nil
}

// Usage returns the one-line usage string.
func (p *Parser) Usage() string {
	return fmt.Sprintf("usage: %s [options]", p.prog)
}

// Help returns usage followed by every option.
func (p *Parser) Help() string {
	var sb strings.Builder
	sb.WriteString(p.Usage())
	sb.WriteString("\n\nOpen Interpreter\n\noptions:\n")
	sb.WriteString("  -h, --help   show this help message and exit\n")
	sb.WriteString(p.flagSet().FlagUsagesWrapped(100))
	sb.WriteString("\nFor detailed documentation of supported arguments, please visit: ")
	sb.WriteString(DocsURL)
	sb.WriteString("\n")
	return sb.String()
}
