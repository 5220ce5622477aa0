package domain

import (
	"errors"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// SizeType tells how a Size value is interpreted.
type SizeType int

const (
	// SizeBytes is an absolute size in bytes.
	SizeBytes SizeType = iota
	// SizePercent is a percentage of the whole device.
	SizePercent
	// SizeFill takes the remaining space.
	SizeFill
)

func (t SizeType) String() string {
	switch t {
	case SizePercent:
		return "percent"
	case SizeFill:
		return "fill"
	default:
		return "bytes"
	}
}

// Size is a parsed partition or volume size.
type Size struct {
	Type  SizeType
	Value uint64
	// Unsuffixed is set when the input carried no unit and bytes were assumed.
	Unsuffixed bool
}

var (
	// ErrSizeTooShort is returned for sizes of a single character.
	ErrSizeTooShort = zerr.New("size is too short to be valid")
	// ErrSizeTooLarge is returned when the scaled size does not fit in 64 bits.
	ErrSizeTooLarge = zerr.New("value too large")
	// ErrSizeNotNumber is returned when the size does not start with digits.
	ErrSizeNotNumber = zerr.New("size must be a whole number, followed by optional suffix [K|M|G|T|%]")
	// ErrSizeBadSuffix is returned for a suffix outside K, M, G, T and %.
	ErrSizeBadSuffix = zerr.New("size suffix must be K, M, G, T, or %")
)

// maxSizeLength is the longest accepted size text.
const maxSizeLength = 21

type sizeUnit struct {
	multiplier uint64
	max        uint64
	typ        SizeType
}

// Each unit is bounded before scaling so the product never wraps.
var sizeUnits = map[byte]sizeUnit{
	'k': {multiplier: 1 << 10, max: 0x3FFFFFFFFFFFFF, typ: SizeBytes},
	'm': {multiplier: 1 << 20, max: 0xFFFFFFFFFFF, typ: SizeBytes},
	'g': {multiplier: 1 << 30, max: 0x3FFFFFFFF, typ: SizeBytes},
	't': {multiplier: 1 << 40, max: 0xFFFFFF, typ: SizeBytes},
	'%': {multiplier: 1, max: 100, typ: SizePercent},
}

// ParseSize parses a size such as "512M", "25%", "fill" or "1048576".
// Units are powers of 1024 and case-insensitive.
func ParseSize(in string) (Size, error) {
	s := strings.ToLower(in)
	if s == "fill" {
		return Size{Type: SizeFill}, nil
	}
	if len(s) <= 1 {
		return Size{}, Tag(ErrSizeTooShort, "size", in)
	}
	if len(s) > maxSizeLength {
		return Size{}, Tag(ErrSizeTooLarge, "size", in)
	}

	digits := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	numeric := s
	if digits >= 0 {
		numeric = s[:digits]
	}
	if numeric == "" {
		return Size{}, Tag(ErrSizeNotNumber, "size", in)
	}

	value, err := strconv.ParseUint(numeric, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Size{}, Tag(ErrSizeTooLarge, "size", in)
		}
		return Size{}, Tag(ErrSizeNotNumber, "size", in)
	}

	if digits < 0 {
		return Size{Type: SizeBytes, Value: value, Unsuffixed: true}, nil
	}

	suffix := s[digits:]
	unit, ok := sizeUnits[suffix[0]]
	if ok && value > unit.max {
		return Size{}, Tag(ErrSizeTooLarge, "size", in)
	}
	if !ok || len(suffix) != 1 {
		return Size{}, Tag(ErrSizeBadSuffix, "size", in)
	}

	return Size{Type: unit.typ, Value: value * unit.multiplier}, nil
}

// SizeErrorMessage returns the user-facing text for a ParseSize error.
func SizeErrorMessage(err error) string {
	for _, sentinel := range []error{ErrSizeTooShort, ErrSizeTooLarge, ErrSizeNotNumber, ErrSizeBadSuffix} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
