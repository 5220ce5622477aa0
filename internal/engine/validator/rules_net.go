package validator

import (
	"math/bits"
	"net/netip"
	"strconv"
	"strings"

	"github.com/kitsnotes/hollywood/internal/core/domain"
)

func checkNetwork(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	unique(cc, e, r)
}

func checkNetConfigType(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !unique(cc, e, r) {
		return
	}
	if !in(netConfigTypes, strings.ToLower(e.Value())) {
		r.errorf("invalid or missing config type")
	}
}

func checkNetAddress(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	iface := e.Token(0)
	if len(iface) > maxInterfaceName {
		r.errorf("invalid interface name '%s'", iface)
		return
	}
	if cc.inc(e.Key, iface) > maxAddresses {
		r.errorf("interface '%s' has too many addresses", iface)
		return
	}
	if e.Token(1) != "static" {
		return
	}

	addr, prefix, gateway := e.Token(2), e.Token(3), e.Token(4)
	switch {
	case strings.Contains(addr, ":"):
		if ip, err := netip.ParseAddr(addr); err != nil || !ip.Is6() {
			r.errorf("'%s' is not a valid IPv6 address", addr)
			return
		}
		n, err := strconv.Atoi(prefix)
		if err != nil {
			r.errorf("prefix length is not a number")
			return
		}
		if n < 0 || n > 128 {
			r.errorf("invalid IPv6 prefix length: %s", prefix)
			return
		}
		if gateway != "" {
			if gw, err := netip.ParseAddr(gateway); err != nil || !gw.Is6() {
				r.errorf("'%s' is not a valid IPv6 gateway", gateway)
			}
		}
	case strings.Contains(addr, "."):
		if ip, err := netip.ParseAddr(addr); err != nil || !ip.Is4() {
			r.errorf("invalid IPv4 address")
			return
		}
		n, ok := IPv4PrefixLength(prefix)
		if !ok {
			r.errorf("can't parse prefix length/mask")
			return
		}
		if n < 0 || n > 32 {
			r.errorf("invalid IPv4 prefix length: %s", prefix)
			return
		}
		if gateway != "" {
			if gw, err := netip.ParseAddr(gateway); err != nil || !gw.Is4() {
				r.errorf("'%s' is not a valid IPv4 gateway", gateway)
			}
		}
	default:
		r.errorf("invalid address of unknown type")
	}
}

// IPv4PrefixLength reads a prefix length given either as a number or as a
// dotted network mask such as 255.255.255.0. A mask must be contiguous.
func IPv4PrefixLength(s string) (int, bool) {
	if !strings.Contains(s, ".") {
		n, err := strconv.Atoi(s)
		return n, err == nil
	}
	mask, err := netip.ParseAddr(s)
	if err != nil || !mask.Is4() {
		return 0, false
	}
	b := mask.As4()
	v := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	ones := bits.LeadingZeros32(^v)
	if v<<ones != 0 {
		return 0, false
	}
	return ones, true
}

func checkNameserver(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	ns := e.Value()
	if !nameserverRe.MatchString(ns) {
		if strings.ContainsAny(ns, "[]") {
			r.errorf("expected an IP address; you don't have to enclose IPv6 addresses in [] brackets")
			return
		}
		r.errorf("expected an IP address")
		return
	}
	ip, err := netip.ParseAddr(ns)
	if strings.Contains(ns, ":") {
		if err != nil || !ip.Is6() {
			r.errorf("'%s' is not a valid IPv6 address", ns)
			return
		}
	} else if err != nil || !ip.Is4() {
		r.errorf("'%s' is not a valid IPv4 address", ns)
		return
	}
	if cc.inc(e.Key, "") == maxNameservers+1 {
		r.warnf("more nameservers are defined than usable")
	}
}

func checkNetSSID(_ *Validator, _ *checkContext, e domain.Entry, r report) {
	if iface := e.Token(0); len(iface) > maxInterfaceName {
		r.errorf("interface name '%s' is invalid", iface)
	}
}

func checkPPPoE(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	iface := e.Token(0)
	if len(iface) > maxInterfaceName {
		r.errorf("invalid interface name '%s'", iface)
		return
	}
	if _, dup := cc.mark(e.Key, iface, e.Line); dup {
		r.errorf("duplicate value for key 'pppoe'")
		return
	}
	for _, param := range e.Tokens[1:] {
		name, _, _ := strings.Cut(param, "=")
		if !in(pppoeParams, name) {
			r.errorf("invalid parameter '%s'", name)
			return
		}
	}
}
