// Package cliflags is a small argument parser built around a Parser value
// rather than a global flag registry: every defined option lives in the
// Parser's own option table, tagged by kind, so a program can hold several
// independent parsers without stepping on each other's state.
package cliflags

import (
	"fmt"
	"strconv"
	"strings"
)

type optKind int

const (
	kindFlag optKind = iota
	kindInt
	kindFloat
	kindString
)

type option struct {
	kind  optKind
	long  string
	short string
	help  string
	seen  int

	flagVal   *bool
	intVal    *int
	floatVal  *float64
	stringVal *string
}

// Parser holds a program's defined options and, after Parse, the leftover
// positional arguments.
type Parser struct {
	progName    string
	options     []*option
	positionals []string
}

// NewParser returns an empty Parser for a program named progName, used only
// in Usage output.
func NewParser(progName string) *Parser {
	return &Parser{progName: progName}
}

func (p *Parser) add(o *option) {
	p.options = append(p.options, o)
}

// BoolFlag defines a long/short boolean switch and returns a pointer to its
// value, initialized to def. The pointer is updated by Parse.
func (p *Parser) BoolFlag(long, short, help string, def bool) *bool {
	v := def
	p.add(&option{kind: kindFlag, long: long, short: short, help: help, flagVal: &v})
	return &v
}

// IntFlag defines a long/short integer-valued option.
func (p *Parser) IntFlag(long, short, help string, def int) *int {
	v := def
	p.add(&option{kind: kindInt, long: long, short: short, help: help, intVal: &v})
	return &v
}

// FloatFlag defines a long/short float-valued option.
func (p *Parser) FloatFlag(long, short, help string, def float64) *float64 {
	v := def
	p.add(&option{kind: kindFloat, long: long, short: short, help: help, floatVal: &v})
	return &v
}

// StringFlag defines a long/short string-valued option.
func (p *Parser) StringFlag(long, short, help string, def string) *string {
	v := def
	p.add(&option{kind: kindString, long: long, short: short, help: help, stringVal: &v})
	return &v
}

func (p *Parser) lookup(name string) *option {
	for _, o := range p.options {
		if o.long == name || o.short == name {
			return o
		}
	}
	return nil
}

// Parse scans args left to right. Each token beginning with "-" or "--" is
// matched against the option table by long or short name; value-bearing
// options consume the following token (or an "=value" suffix). Tokens that
// don't begin with "-", a lone "-", and every token after "--" are collected
// as positionals, available afterward via Positionals. Parse fails on an
// unknown option name or a value option with nothing to consume.
func (p *Parser) Parse(args []string) error {
	p.positionals = nil
	for _, o := range p.options {
		o.seen = 0
	}
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "--" {
			p.positionals = append(p.positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(tok, "-") || tok == "-" {
			p.positionals = append(p.positionals, tok)
			continue
		}

		name := strings.TrimLeft(tok, "-")
		inlineVal, hasInline := "", false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			inlineVal, hasInline = name[eq+1:], true
			name = name[:eq]
		}

		o := p.lookup(name)
		if o == nil {
			return fmt.Errorf("cliflags: unknown option %q", tok)
		}
		o.seen++

		if o.kind == kindFlag {
			*o.flagVal = true
			continue
		}

		val := inlineVal
		if !hasInline {
			if i+1 >= len(args) {
				return fmt.Errorf("cliflags: option %q requires a value", tok)
			}
			i++
			val = args[i]
		}
		if err := o.setValue(val); err != nil {
			return fmt.Errorf("cliflags: option %q: %w", tok, err)
		}
	}
	return nil
}

func (o *option) setValue(raw string) error {
	switch o.kind {
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		*o.intVal = n
	case kindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", raw)
		}
		*o.floatVal = f
	case kindString:
		*o.stringVal = raw
	}
	return nil
}

// Positionals returns the non-option arguments collected by the most recent
// Parse call, in order.
func (p *Parser) Positionals() []string {
	return p.positionals
}

// Seen reports how many times the option named name (long or short) was
// present in the most recently parsed arguments.
func (p *Parser) Seen(name string) int {
	o := p.lookup(name)
	if o == nil {
		return 0
	}
	return o.seen
}

// Usage renders a one-option-per-line summary for help output.
func (p *Parser) Usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "usage: %s [options] [args...]\n", p.progName)
	for _, o := range p.options {
		fmt.Fprintf(&b, "  -%s, --%-20s %s\n", o.short, o.long, o.help)
	}
	return b.String()
}
