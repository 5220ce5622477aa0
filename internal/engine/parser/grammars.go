package parser

import (
	"strconv"
	"strings"

	"github.com/kitsnotes/hollywood/internal/core/domain"
)

var grammars = map[domain.Key]grammar{
	domain.KeyNetwork:  boolean,
	domain.KeyFirmware: boolean,

	domain.KeyHostname:      scalar,
	domain.KeyRootPW:        scalar,
	domain.KeyTimezone:      scalar,
	domain.KeyKeymap:        scalar,
	domain.KeyArch:          scalar,
	domain.KeyVersion:       scalar,
	domain.KeyLanguage:      scalar,
	domain.KeyNetConfigType: scalar,
	domain.KeyKernel:        scalar,
	domain.KeyAutologin:     scalar,
	domain.KeyRepository:    scalar,
	domain.KeySigningKey:    scalar,
	domain.KeyNameserver:    scalar,
	domain.KeyLVMPV:         scalar,
	domain.KeyUsername:      scalar,

	domain.KeyPkgInstall: fields,
	domain.KeyPPPoE:      fields,

	domain.KeyMount: arity(2, 4, "expected between 2 and 4 elements, got: %d"),
	domain.KeyDiskLabel: withHint(arity(2, 2, "expected 2 elements, got: %d"),
		1, "expected a label type"),
	domain.KeyLVMVG:      arity(2, 2, "expected exactly two elements"),
	domain.KeyFilesystem: arity(2, 2, "expected exactly two elements"),
	domain.KeyUserPW: withHint(arity(2, 2, "expected 2 elements, got: %d"),
		1, "passphrase is required"),
	domain.KeyUserIcon: withHint(arity(2, 2, "expected 2 elements, got: %d"),
		1, "icon is required"),
	domain.KeyUserGroups: withHint(arity(2, 2, "expected 2 elements, got: %d"),
		1, "at least one group is required"),
	domain.KeyBootloader: arity(1, 2, "invalid bootloader"),
	domain.KeySvcEnable:  arity(1, 2, "expected either 1 or 2 elements, got: %d"),

	domain.KeyDiskID:    head("expected an identification string"),
	domain.KeyUserAlias: head("alias is required"),
	domain.KeyEncrypt:   optionalTail,

	domain.KeyPartition:  partition,
	domain.KeyLVMLV:      lvmVolume,
	domain.KeyNetAddress: netAddress,
	domain.KeyNetSSID:    netSSID,
}

// scalar keeps the whole value as a single token.
func scalar(value string) ([]string, []issue) {
	return []string{value}, nil
}

// fields splits the value on whitespace.
func fields(value string) ([]string, []issue) {
	return strings.Fields(value), nil
}

// boolean accepts only the lowercase literals.
func boolean(value string) ([]string, []issue) {
	if value != "true" && value != "false" {
		return nil, []issue{errorf("expected 'true' or 'false'")}
	}
	return []string{value}, nil
}

// arity splits on whitespace and bounds the number of elements.
// The message may carry a %d verb for the count found.
func arity(minimum, maximum int, message string) grammar {
	return func(value string) ([]string, []issue) {
		tokens := strings.Fields(value)
		if len(tokens) < minimum || len(tokens) > maximum {
			if strings.Contains(message, "%d") {
				return nil, []issue{errorf(message, len(tokens))}
			}
			return nil, []issue{errorf("%s", message)}
		}
		return tokens, nil
	}
}

// withHint replaces the error of g with message when exactly count elements were given.
func withHint(g grammar, count int, message string) grammar {
	return func(value string) ([]string, []issue) {
		if len(strings.Fields(value)) == count {
			return nil, []issue{errorf("%s", message)}
		}
		return g(value)
	}
}

// head splits off the first element and keeps the rest of the value,
// spaces included, as the second. The second element is required.
func head(missing string) grammar {
	return func(value string) ([]string, []issue) {
		first, rest := splitKey(value)
		if rest == "" {
			return nil, []issue{errorf("%s", missing)}
		}
		return []string{first, rest}, nil
	}
}

// optionalTail is head with an optional second element.
func optionalTail(value string) ([]string, []issue) {
	first, rest := splitKey(value)
	if rest == "" {
		return []string{first}, nil
	}
	return []string{first, rest}, nil
}

func checkSize(size string) []issue {
	parsed, err := domain.ParseSize(size)
	if err != nil {
		return []issue{errorf("invalid size: %s", domain.SizeErrorMessage(err))}
	}
	if parsed.Unsuffixed {
		return []issue{warnf("size has no suffix; assuming bytes")}
	}
	return nil
}

// partition: DEV NUM SIZE [TYPECODE].
func partition(value string) ([]string, []issue) {
	tokens, issues := arity(3, 4, "expected either 3 or 4 elements, got: %d")(value)
	if issues != nil {
		return nil, issues
	}
	if _, err := strconv.ParseUint(tokens[1], 10, 32); err != nil {
		return nil, []issue{errorf("expected partition number, got: %s", tokens[1])}
	}
	return tokens, checkSize(tokens[2])
}

// lvm_lv: VG NAME SIZE.
func lvmVolume(value string) ([]string, []issue) {
	tokens, issues := arity(3, 3, "expected 3 elements, got: %d")(value)
	if issues != nil {
		return nil, issues
	}
	return tokens, checkSize(tokens[2])
}

// netaddress: IFACE dhcp|slaac|static [ADDRESS PREFIX [GATEWAY]].
// The address type is lowercased.
func netAddress(value string) ([]string, []issue) {
	tokens := strings.Fields(value)
	if len(tokens) < 2 {
		return nil, []issue{errorf("missing address type")}
	}
	tokens[1] = strings.ToLower(tokens[1])
	switch tokens[1] {
	case "dhcp", "slaac":
		if len(tokens) > 2 {
			return nil, []issue{errorf("address type '%s' does not accept further elements", tokens[1])}
		}
	case "static":
		if len(tokens) < 4 {
			return nil, []issue{errorf("address type 'static' requires at least an IP address and prefix length")}
		}
		if len(tokens) > 5 {
			return nil, []issue{errorf("too many elements for static address")}
		}
		if !isNumber(tokens[3]) && !isDottedQuad(tokens[3]) {
			return nil, []issue{errorf("prefix length is not a number")}
		}
	default:
		return nil, []issue{errorf("invalid address type '%s'", tokens[1])}
	}
	return tokens, nil
}

// netssid: IFACE "SSID" none|wep|wpa [PASSPHRASE].
// The SSID may contain spaces and the passphrase is the rest of the line.
func netSSID(value string) ([]string, []issue) {
	iface, rest := splitKey(value)
	if rest == "" {
		return nil, []issue{errorf("at least three elements expected")}
	}
	if !strings.HasPrefix(rest, `"`) {
		return nil, []issue{errorf("malformed SSID")}
	}
	end := strings.IndexByte(rest[1:], '"')
	if end < 0 {
		return nil, []issue{errorf("unterminated SSID")}
	}
	ssid := rest[1 : end+1]

	security, passphrase := splitKey(strings.TrimLeft(rest[end+2:], " \t"))
	if security == "" {
		return nil, []issue{errorf("security type expected")}
	}
	switch security {
	case "none":
		return []string{iface, ssid, security}, nil
	case "wep", "wpa":
		if passphrase == "" {
			return nil, []issue{errorf("expected passphrase for security type '%s'", security)}
		}
		return []string{iface, ssid, security, passphrase}, nil
	}
	return nil, []issue{errorf("unknown security type '%s'", security)}
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isDottedQuad(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if !isNumber(p) {
			return false
		}
	}
	return true
}
