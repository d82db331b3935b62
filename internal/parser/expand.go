package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seitarof/udt-flat/internal/resolver"
)

// maxArrayLen caps the number of index elements one array may produce.
const maxArrayLen = 1 << 20

// dtlFields is the fixed layout of a DTL value.
var dtlFields = [...]struct {
	name, datatype, comment string
}{
	{"YEAR", "UInt", "Year"},
	{"MONTH", "USInt", "Month"},
	{"DAY", "USInt", "Day"},
	{"WEEKDAY", "USInt", "Weekday"},
	{"HOUR", "USInt", "Hour"},
	{"MINUTE", "USInt", "Minute"},
	{"SECOND", "USInt", "Second"},
	{"NANOSECOND", "UDInt", "Nanosecond"},
}

// arrayBounds is a parsed `Array[start..end] of elem`.
type arrayBounds struct {
	start, end int
	elem       string
}

func parseArray(datatype string) (arrayBounds, error) {
	rest, ok := strings.CutPrefix(datatype, "Array[")
	if !ok {
		return arrayBounds{}, fmt.Errorf("not an array declaration")
	}
	bounds, rest, ok := strings.Cut(rest, "]")
	if !ok {
		return arrayBounds{}, fmt.Errorf("unterminated array bounds")
	}
	elem, ok := strings.CutPrefix(rest, " of ")
	if !ok || strings.TrimSpace(elem) == "" {
		return arrayBounds{}, fmt.Errorf("missing array element type")
	}
	lo, hi, ok := strings.Cut(bounds, "..")
	if !ok {
		return arrayBounds{}, fmt.Errorf("array bounds %q", bounds)
	}
	// Array bounds are DInt values.
	start, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 32)
	if err != nil {
		return arrayBounds{}, fmt.Errorf("array lower bound: %w", err)
	}
	end, err := strconv.ParseInt(strings.TrimSpace(hi), 10, 32)
	if err != nil {
		return arrayBounds{}, fmt.Errorf("array upper bound: %w", err)
	}
	if end-start >= maxArrayLen {
		return arrayBounds{}, fmt.Errorf("array range %d..%d exceeds %d elements", start, end, maxArrayLen)
	}
	return arrayBounds{start: int(start), end: int(end), elem: strings.TrimSpace(elem)}, nil
}

// len returns the number of indices, zero for an empty range.
func (a arrayBounds) len() int {
	return max(a.end-a.start+1, 0)
}

// expandArray emits the array, one leaf per index in start..end (both
// inclusive) and the closing marker. An array of Struct declares its members
// on the following lines, so it is only opened and the caller pairs it with
// the matching END_STRUCT;.
func expandArray(b *builder, line string) (opened bool, err error) {
	name, datatype, comment, ok := splitDeclaration(line)
	if !ok {
		return false, fmt.Errorf("malformed declaration")
	}
	if strings.HasSuffix(datatype, " of "+resolver.TokenStruct) {
		// Opened even with unusable bounds so the members stay inside it.
		b.emit(open(name, datatype, comment))
		b.push(name + ".")
		_, err = parseArray(datatype)
		return true, err
	}
	arr, err := parseArray(datatype)
	if err != nil {
		return false, err
	}

	b.emit(open(name, datatype, comment))
	b.push(name)
	for n := range arr.len() {
		b.emit(leaf("["+strconv.Itoa(arr.start+n)+"]", arr.elem, comment))
	}
	b.pop()
	b.emit(closing())
	return false, nil
}

// expandDTL emits a DTL variable as ten elements. Only the variable's name
// and comment are taken from the line.
func expandDTL(b *builder, line string) error {
	name, datatype, comment, ok := splitDeclaration(line)
	if !ok {
		return fmt.Errorf("malformed declaration")
	}

	b.emit(open(name, datatype, comment))
	b.push(name + ".")
	for _, f := range dtlFields {
		b.emit(leaf(f.name, f.datatype, f.comment))
	}
	b.pop()
	b.emit(closing())
	return nil
}
