package reflection

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	apperrors "hklcompare/internal/errors"
)

const (
	fcoHeaderLines   = 26
	xdHeaderLines    = 1
	shelxFooterLines = 17
	sortavComment    = 'c'
	xdMarker         = "NDAT"

	maxLineBytes = 1024 * 1024
	cancelEvery  = 4096
)

// span is a fixed-width column: byte offset and width.
type span struct {
	start, width int
}

// SAINT .raw and SHELX .hkl share the leading 3I4,2F8 block.
var hklfSpans = []span{{0, 4}, {4, 4}, {8, 4}, {12, 8}, {20, 8}}

// Whitespace column positions of h, k, l, I, sigma.
var (
	fcoColumns    = []int{0, 1, 2, 4, 5}
	sortavColumns = []int{0, 1, 2, 3, 6}
	xdColumns     = []int{0, 1, 2, 4, 5}
)

const (
	fcoResolutionColumn = 6
	fcoFlagColumn       = 7
)

var fieldNames = [5]string{"h", "k", "l", "intensity", "sigma"}

// ParseOptions controls format-specific filtering.
type ParseOptions struct {
	// UsedOnly drops .fco rows whose flag column is not 0.
	UsedOnly bool
	// KeepResolution retains the sin(theta)/lambda column where the format has one.
	KeepResolution bool
}

// DefaultParseOptions matches the historical behaviour: used reflections only,
// resolution kept.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{UsedOnly: true, KeepResolution: true}
}

// Parser reads reflection files into Reflection slices.
type Parser struct {
	opts   ParseOptions
	logger *slog.Logger
}

// NewParser creates a parser.
func NewParser(opts ParseOptions, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		opts:   opts,
		logger: logger.With(slog.String("component", "reflection_parser")),
	}
}

// Options returns the parser's options.
func (p *Parser) Options() ParseOptions {
	return p.opts
}

// ParseFile opens path and parses it according to its extension.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]Reflection, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reflection file: %w", err)
	}
	defer f.Close()

	return p.Parse(ctx, f, format, path)
}

// Parse reads r as the given format. source names the input in errors and logs.
func (p *Parser) Parse(ctx context.Context, r io.Reader, format Format, source string) ([]Reflection, error) {
	lines, err := readLines(r, source)
	if err != nil {
		return nil, err
	}

	var refls []Reflection
	switch format {
	case FormatRAW:
		refls, err = p.parseFixed(ctx, lines, source, format)
	case FormatFCO:
		refls, err = p.parseFCO(ctx, lines, source)
	case FormatSortav:
		refls, err = p.parseSortav(ctx, lines, source)
	case FormatHKL:
		refls, err = p.parseHKL(ctx, lines, source)
	default:
		return nil, apperrors.NewFormatError(source, 0, fmt.Sprintf("unsupported format %q", format), nil)
	}
	if err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "parsed reflection file",
		slog.String("source", source),
		slog.String("format", string(format)),
		slog.Int("reflections", len(refls)),
	)
	return refls, nil
}

type line struct {
	num  int
	text string
}

func (l line) blank() bool {
	return strings.TrimSpace(l.text) == ""
}

func readLines(r io.Reader, source string) ([]line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var lines []line
	for n := 1; scanner.Scan(); n++ {
		lines = append(lines, line{num: n, text: strings.TrimRight(scanner.Text(), "\r")})
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewFormatError(source, len(lines)+1, "read failed", err)
	}
	return lines, nil
}

func nonBlank(lines []line) []line {
	out := make([]line, 0, len(lines))
	for _, l := range lines {
		if !l.blank() {
			out = append(out, l)
		}
	}
	return out
}

// parseFixed reads h,k,l,I,sigma from the shared fixed-width block.
func (p *Parser) parseFixed(ctx context.Context, lines []line, source string, format Format) ([]Reflection, error) {
	refls := make([]Reflection, 0, len(lines))
	for i, l := range lines {
		if err := checkCancel(ctx, i); err != nil {
			return nil, err
		}
		if l.blank() {
			continue
		}
		fields := make([]string, len(hklfSpans))
		for j, s := range hklfSpans {
			fields[j] = fixedField(l.text, s)
		}
		refl, err := decode(fields, source, l.num, format)
		if err != nil {
			return nil, err
		}
		refls = append(refls, refl)
	}
	return refls, nil
}

func (p *Parser) parseFCO(ctx context.Context, lines []line, source string) ([]Reflection, error) {
	if len(lines) < fcoHeaderLines {
		return nil, apperrors.NewFormatError(source, 0,
			fmt.Sprintf("fco file has %d lines, header needs %d", len(lines), fcoHeaderLines), nil).
			WithContext("format", string(FormatFCO))
	}

	var refls []Reflection
	dropped := 0
	for i, l := range lines[fcoHeaderLines:] {
		if err := checkCancel(ctx, i); err != nil {
			return nil, err
		}
		if l.blank() {
			continue
		}
		tokens := strings.Fields(l.text)
		if len(tokens) <= fcoFlagColumn {
			return nil, tokenCountError(source, l.num, FormatFCO, len(tokens), fcoFlagColumn+1)
		}

		refl, err := decode(pick(tokens, fcoColumns), source, l.num, FormatFCO)
		if err != nil {
			return nil, err
		}
		flag, err := parseIndex(tokens[fcoFlagColumn])
		if err != nil {
			return nil, fieldError(source, l.num, FormatFCO, "flag", tokens[fcoFlagColumn], err)
		}
		refl.Flag = flag
		if p.opts.UsedOnly && flag != 0 {
			dropped++
			continue
		}
		if p.opts.KeepResolution {
			stl, err := strconv.ParseFloat(tokens[fcoResolutionColumn], 64)
			if err != nil {
				return nil, fieldError(source, l.num, FormatFCO, "resolution", tokens[fcoResolutionColumn], err)
			}
			refl.Resolution = stl
			refl.HasResolution = true
		}
		refls = append(refls, refl)
	}

	if dropped > 0 {
		p.logger.DebugContext(ctx, "dropped unused reflections",
			slog.String("source", source),
			slog.Int("dropped", dropped),
		)
	}
	return refls, nil
}

func (p *Parser) parseSortav(ctx context.Context, lines []line, source string) ([]Reflection, error) {
	var refls []Reflection
	for i, l := range lines {
		if err := checkCancel(ctx, i); err != nil {
			return nil, err
		}
		text := l.text
		if idx := strings.IndexRune(text, sortavComment); idx >= 0 {
			text = text[:idx]
		}
		tokens := strings.Fields(text)
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) <= sortavColumns[len(sortavColumns)-1] {
			return nil, tokenCountError(source, l.num, FormatSortav, len(tokens), sortavColumns[len(sortavColumns)-1]+1)
		}
		refl, err := decode(pick(tokens, sortavColumns), source, l.num, FormatSortav)
		if err != nil {
			return nil, err
		}
		refls = append(refls, refl)
	}
	return refls, nil
}

// parseHKL detects the XD layout from the first line and falls back to SHELX.
func (p *Parser) parseHKL(ctx context.Context, lines []line, source string) ([]Reflection, error) {
	if len(lines) > 0 && IsXDHeader(lines[0].text) {
		return p.parseXD(ctx, lines[xdHeaderLines:], source)
	}

	data := nonBlank(lines)
	if len(data) < shelxFooterLines {
		return nil, apperrors.NewFormatError(source, 0,
			fmt.Sprintf("hkl file has %d lines, trailer needs %d", len(data), shelxFooterLines), nil).
			WithContext("format", string(FormatHKL))
	}
	return p.parseFixed(ctx, data[:len(data)-shelxFooterLines], source, FormatHKL)
}

func (p *Parser) parseXD(ctx context.Context, lines []line, source string) ([]Reflection, error) {
	var refls []Reflection
	need := xdColumns[len(xdColumns)-1] + 1
	for i, l := range lines {
		if err := checkCancel(ctx, i); err != nil {
			return nil, err
		}
		tokens := strings.Fields(l.text)
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) < need {
			return nil, tokenCountError(source, l.num, FormatHKL, len(tokens), need)
		}
		refl, err := decode(pick(tokens, xdColumns), source, l.num, FormatHKL)
		if err != nil {
			return nil, err
		}
		refls = append(refls, refl)
	}
	return refls, nil
}

// IsXDHeader reports whether the first line of an .hkl file marks the XD
// layout: exactly four tokens, one of them carrying NDAT.
func IsXDHeader(first string) bool {
	return len(strings.Fields(first)) == 4 && strings.Contains(first, xdMarker)
}

func fixedField(text string, s span) string {
	if s.start >= len(text) {
		return ""
	}
	end := s.start + s.width
	if end > len(text) {
		end = len(text)
	}
	return strings.TrimSpace(text[s.start:end])
}

func pick(tokens []string, columns []int) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = tokens[c]
	}
	return out
}

// decode converts h, k, l, I, sigma fields.
func decode(fields []string, source string, lineNum int, format Format) (Reflection, error) {
	var idx [3]int
	for i := 0; i < 3; i++ {
		v, err := parseIndex(fields[i])
		if err != nil {
			return Reflection{}, fieldError(source, lineNum, format, fieldNames[i], fields[i], err)
		}
		idx[i] = v
	}

	var vals [2]float64
	for i := 0; i < 2; i++ {
		v, err := strconv.ParseFloat(fields[3+i], 64)
		if err != nil {
			return Reflection{}, fieldError(source, lineNum, format, fieldNames[3+i], fields[3+i], err)
		}
		vals[i] = v
	}

	return Reflection{
		Index:     HKL{H: idx[0], K: idx[1], L: idx[2]},
		Intensity: vals[0],
		Sigma:     vals[1],
	}, nil
}

// parseIndex accepts integers and integral floats ("3" or "3.0").
func parseIndex(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int(f), nil
}

func fieldError(source string, lineNum int, format Format, field, value string, cause error) error {
	return apperrors.NewFormatError(source, lineNum, fmt.Sprintf("invalid %s %q", field, value), cause).
		WithContext("format", string(format))
}

func tokenCountError(source string, lineNum int, format Format, got, want int) error {
	return apperrors.NewFormatError(source, lineNum, fmt.Sprintf("expected at least %d columns, got %d", want, got), nil).
		WithContext("format", string(format))
}

func checkCancel(ctx context.Context, i int) error {
	if i%cancelEvery != 0 {
		return nil
	}
	return ctx.Err()
}
