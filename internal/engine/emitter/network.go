package emitter

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/engine/validator"
)

const (
	netifrcConf = "/etc/conf.d/net"
	eniConf     = "/etc/network/interfaces"
	resolvConf  = "/etc/resolv.conf"
	wpaConf     = "/etc/wpa_supplicant/wpa_supplicant.conf"
)

const wpaHeader = `# Enable the control interface for wpa_cli and wpa_gui
ctrl_interface=/var/run/wpa_supplicant
ctrl_interface_group=wheel
update_config=1
`

// section is a named, ordered group of configuration lines: a netifrc
// variable or an ENI interface.
type section struct {
	name  string
	lines []string
}

// netState collects the network configuration while the network entries
// are visited. The network entry writes it out.
type netState struct {
	eni         bool
	sections    []*section
	ssids       []string
	links       int
	dhcp        bool
	nameservers bool
}

func newNetState(doc *domain.Document) *netState {
	n := &netState{}
	if e, ok := doc.First(domain.KeyNetConfigType); ok {
		n.eni = strings.EqualFold(e.Value(), "eni")
	}
	return n
}

func (n *netState) section(name string) *section {
	for _, s := range n.sections {
		if s.name == name {
			return s
		}
	}
	s := &section{name: name}
	n.sections = append(n.sections, s)
	return s
}

func (n *netState) add(name string, lines ...string) {
	s := n.section(name)
	s.lines = append(s.lines, lines...)
}

func (n *netState) set(name string, lines ...string) {
	n.section(name).lines = lines
}

// file returns the configuration file path and its contents.
func (n *netState) file() (string, string) {
	var b strings.Builder
	if n.eni {
		b.WriteString("auto lo\niface lo inet loopback\n\n")
		for _, s := range n.sections {
			fmt.Fprintf(&b, "auto %s\n%s\n\n", s.name, strings.Join(s.lines, "\n"))
		}
		return eniConf, b.String()
	}
	for _, s := range n.sections {
		fmt.Fprintf(&b, "%s=\"%s\"\n", s.name, strings.Join(s.lines, "\n"))
	}
	return netifrcConf, b.String()
}

func emitNetAddress(em *emission, _ actions, e domain.Entry) error {
	iface, kind := e.Token(0), e.Token(1)
	address, prefix, gateway := e.Token(2), e.Token(3), e.Token(4)
	n := em.net

	em.infof("netaddress: adding configuration for %s", iface)
	if kind == "dhcp" {
		n.dhcp = true
	}

	if !n.eni {
		name := "config_" + iface
		switch kind {
		case "dhcp":
			n.add(name, "dhcp")
		case "slaac":
			n.add(name)
		case "static":
			if !strings.Contains(address, ":") {
				length, ok := validator.IPv4PrefixLength(prefix)
				if !ok {
					return em.fail(e, "invalid prefix length")
				}
				prefix = fmt.Sprint(length)
			}
			n.add(name, address+"/"+prefix)
		}
		if gateway != "" {
			n.add("routes_"+iface, "default via "+gateway)
		}
		return nil
	}

	switch kind {
	case "dhcp":
		n.add(iface, "iface "+iface+" inet dhcp")
	case "slaac":
		n.add(iface, "iface "+iface+" inet6 manual",
			"\tpre-up echo 1 > /proc/sys/net/ipv6/conf/"+iface+"/accept_ra")
	case "static":
		if strings.Contains(address, ":") {
			n.add(iface, "iface "+iface+" inet6 static",
				"\tpre-up echo 0 > /proc/sys/net/ipv6/conf/"+iface+"/accept_ra")
		} else {
			n.add(iface, "iface "+iface+" inet static")
		}
		n.add(iface, "\taddress "+address, "\tnetmask "+prefix)
		if gateway != "" {
			n.add(iface, "\tgateway "+gateway)
		}
	}
	return nil
}

// pppoeParams splits key=value parameters. Keys without a value map to "".
func pppoeParams(tokens []string) map[string]string {
	params := make(map[string]string, len(tokens))
	for _, t := range tokens {
		k, v, _ := strings.Cut(t, "=")
		params[k] = v
	}
	return params
}

func emitPPPoE(em *emission, a actions, e domain.Entry) error {
	iface := e.Token(0)
	params := pppoeParams(e.Tokens[1:])
	link := fmt.Sprintf("ppp%d", em.net.links)
	em.net.links++
	n := em.net

	em.infof("pppoe: adding configuration for %s", iface)
	if !n.eni {
		n.set("config_"+iface, "null")
		n.set("rc_net_"+link+"_need", iface)
		n.set("config_"+link, "ppp")
		n.set("link_"+link, iface)
		n.set("plugins_"+link, "pppoe")
		if v, ok := params["username"]; ok {
			n.set("username_"+link, v)
		}
		if v, ok := params["password"]; ok {
			n.set("password_"+link, v)
		}
		pppd := []string{"noauth", "defaultroute"}
		for _, k := range []string{"lcp-echo-interval", "lcp-echo-failure", "mtu"} {
			if v, ok := params[k]; ok {
				pppd = append(pppd, k+" "+v)
			}
		}
		n.set("pppd_"+link, pppd...)
		return nil
	}

	password, hasPassword := params["password"]
	username, hasUsername := params["username"]
	if hasPassword && !hasUsername {
		return em.fail(e, "password without username is not supported with eni")
	}

	n.set(iface, "iface "+link+" inet ppp", "pre-up /sbin/ifconfig "+iface+" up", "provider "+link)

	var peer strings.Builder
	fmt.Fprintf(&peer, "plugin rp-pppoe.so\n%s\ndefaultroute\nnoauth\n+ipv6\n", iface)
	keys := make([]string, 0, len(params))
	for k := range params {
		if k != "password" {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		name := k
		if name == "username" {
			name = "user"
		}
		if v := params[k]; v != "" {
			name += " " + v
		}
		peer.WriteString(name + "\n")
	}

	peers := em.target("/etc/ppp/peers")
	a.mkdir(peers)
	a.write(path.Join(peers, link), peer.String())
	if hasPassword {
		a.append(em.target("/etc/ppp/chap-secrets"), username+"\t*\t"+password+"\n")
	}
	return nil
}

func emitNetSSID(em *emission, _ actions, e domain.Entry) error {
	ssid, security := e.Token(1), e.Token(2)

	em.infof("netssid: configuring SSID %s", ssid)
	block := "\nnetwork={\n\tssid=\"" + ssid + "\"\n"
	if security != "none" {
		block += "\tpsk=\"" + e.Token(3) + "\"\n"
	}
	block += "\tpriority=5\n}\n"
	em.net.ssids = append(em.net.ssids, block)
	return nil
}

func emitNameserver(em *emission, a actions, e domain.Entry) error {
	em.infof("nameserver: adding %s", e.Value())
	em.net.nameservers = true
	a.append(em.target(resolvConf), "nameserver "+e.Value()+"\n")
	return nil
}

// emitNetwork writes the collected configuration to the target and, when
// networking is enabled, to the running system.
func emitNetwork(em *emission, a actions, e domain.Entry) error {
	n := em.net

	if len(n.ssids) > 0 {
		a.mkdir(em.target(path.Dir(wpaConf)))
		a.write(em.target(wpaConf), wpaHeader+strings.Join(n.ssids, ""))
	}

	conf := ""
	if len(n.sections) > 0 {
		file, data := n.file()
		conf = file
		a.mkdir(em.target(path.Dir(file)))
		a.append(em.target(file), data)
	}

	if n.nameservers {
		if host, ok := em.doc.First(domain.KeyHostname); ok {
			if d := hostDomain(host.Value()); d != "" {
				a.append(em.target(resolvConf), "domain "+d+"\n")
			}
		}
		if n.dhcp {
			a.move(em.target(resolvConf), em.target(resolvConf+".head"))
		}
	}

	if e.Value() != "true" {
		return nil
	}
	em.infof("network: using the target configuration during installation")
	if len(n.ssids) > 0 {
		a.copy(em.target(wpaConf), wpaConf)
	}
	if conf != "" {
		a.copy(em.target(conf), conf)
	}
	if n.nameservers {
		a.shell("cp " + shellquote.Join(em.target(resolvConf)) + "* /etc/")
	}
	return nil
}
