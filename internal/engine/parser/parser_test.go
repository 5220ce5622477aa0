package parser_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/engine/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScript = `# basic install
network false
hostname box.example.com
pkginstall bash vim
rootpw $6$saltsalt$hashhash
netssid wlan0 "My Cafe" wpa secret pass phrase
partition /dev/sda 1 512M esp
partition /dev/sda 2 fill
disklabel /dev/sda gpt
fs /dev/sda2 ext4
mount /dev/sda2 /
mount /dev/sda1 /boot/efi umask=0077
useralias alice Alice Liddell
encrypt /dev/sda2
diskid /dev/sda Samsung SSD 860
NETADDRESS eth0 DHCP
`

func parse(t *testing.T, src string, keepGoing bool) (*domain.Document, domain.Diagnostics) {
	t.Helper()
	opts := domain.DefaultOptions()
	opts.KeepGoing = keepGoing
	return parser.Parse([]byte(src), opts)
}

func TestParse_Valid(t *testing.T) {
	doc, diags := parse(t, validScript, false)
	require.Empty(t, diags)

	assert.Equal(t, 15, doc.Len())

	host, ok := doc.First(domain.KeyHostname)
	require.True(t, ok)
	assert.Equal(t, 3, host.Line)
	assert.Equal(t, []string{"box.example.com"}, host.Tokens)

	pkgs, _ := doc.First(domain.KeyPkgInstall)
	assert.Equal(t, []string{"bash", "vim"}, pkgs.Tokens)

	ssid, _ := doc.First(domain.KeyNetSSID)
	assert.Equal(t, []string{"wlan0", "My Cafe", "wpa", "secret pass phrase"}, ssid.Tokens)

	mounts := doc.Get(domain.KeyMount)
	require.Len(t, mounts, 2)
	assert.Equal(t, []string{"/dev/sda1", "/boot/efi", "umask=0077"}, mounts[1].Tokens)

	alias, _ := doc.First(domain.KeyUserAlias)
	assert.Equal(t, []string{"alice", "Alice Liddell"}, alias.Tokens)

	enc, _ := doc.First(domain.KeyEncrypt)
	assert.Equal(t, []string{"/dev/sda2"}, enc.Tokens)

	id, _ := doc.First(domain.KeyDiskID)
	assert.Equal(t, []string{"/dev/sda", "Samsung SSD 860"}, id.Tokens)

	addr, ok := doc.First(domain.KeyNetAddress)
	require.True(t, ok, "keys are case-insensitive")
	assert.Equal(t, []string{"eth0", "dhcp"}, addr.Tokens)
}

func TestParse_Deterministic(t *testing.T) {
	a, _ := parse(t, validScript, false)
	b, _ := parse(t, validScript, false)

	if diff := cmp.Diff(a, b, cmp.AllowUnexported(domain.Document{})); diff != "" {
		t.Errorf("re-parse mismatch (-first +second):\n%s", diff)
	}
}

func TestParse_UnknownKeyIsDeferred(t *testing.T) {
	doc, diags := parse(t, "frobnicate a b\n", false)
	require.Empty(t, diags)

	e, ok := doc.First(domain.Key("frobnicate"))
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, e.Tokens)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		key  domain.Key
		want string
	}{
		{"no value", "hostname", "", "key 'hostname' has no value"},
		{"boolean", "network yes", domain.KeyNetwork, "expected 'true' or 'false'"},
		{"firmware", "firmware 1", domain.KeyFirmware, "expected 'true' or 'false'"},
		{"boolean uppercase", "network TRUE", domain.KeyNetwork, "expected 'true' or 'false'"},
		{"boolean titlecase", "firmware False", domain.KeyFirmware, "expected 'true' or 'false'"},
		{"mount arity", "mount /dev/sda1", domain.KeyMount, "expected between 2 and 4 elements, got: 1"},
		{"mount too many", "mount a b c d e", domain.KeyMount, "expected between 2 and 4 elements, got: 5"},
		{"partition arity", "partition /dev/sda 1", domain.KeyPartition, "expected either 3 or 4 elements, got: 2"},
		{"partition number", "partition /dev/sda one 1G", domain.KeyPartition, "expected partition number, got: one"},
		{"partition size", "partition /dev/sda 1 16777216T", domain.KeyPartition, "invalid size: value too large"},
		{"partition suffix", "partition /dev/sda 1 10Q", domain.KeyPartition, "invalid size: size suffix must be K, M, G, T, or %"},
		{"disklabel type", "disklabel /dev/sda", domain.KeyDiskLabel, "expected a label type"},
		{"lvm_vg", "lvm_vg /dev/sda2", domain.KeyLVMVG, "expected exactly two elements"},
		{"lvm_lv", "lvm_lv vg0 root", domain.KeyLVMLV, "expected 3 elements, got: 2"},
		{"lvm_lv size", "lvm_lv vg0 root big", domain.KeyLVMLV, "invalid size: size must be a whole number, followed by optional suffix [K|M|G|T|%]"},
		{"fs", "fs /dev/sda1", domain.KeyFilesystem, "expected exactly two elements"},
		{"userpw", "userpw alice", domain.KeyUserPW, "passphrase is required"},
		{"usericon", "usericon alice", domain.KeyUserIcon, "icon is required"},
		{"usergroups", "usergroups alice", domain.KeyUserGroups, "at least one group is required"},
		{"useralias", "useralias alice", domain.KeyUserAlias, "alias is required"},
		{"diskid", "diskid /dev/sda", domain.KeyDiskID, "expected an identification string"},
		{"bootloader", "bootloader /dev/sda grub-efi extra", domain.KeyBootloader, "invalid bootloader"},
		{"svcenable", "svcenable sshd default extra", domain.KeySvcEnable, "expected either 1 or 2 elements, got: 3"},
		{"netaddress type missing", "netaddress eth0", domain.KeyNetAddress, "missing address type"},
		{"netaddress type", "netaddress eth0 ppp", domain.KeyNetAddress, "invalid address type 'ppp'"},
		{"netaddress dhcp extra", "netaddress eth0 dhcp 10.0.0.1", domain.KeyNetAddress, "address type 'dhcp' does not accept further elements"},
		{"netaddress slaac extra", "netaddress eth0 SLAAC x", domain.KeyNetAddress, "address type 'slaac' does not accept further elements"},
		{"netaddress static short", "netaddress eth0 static 10.0.0.1", domain.KeyNetAddress, "address type 'static' requires at least an IP address and prefix length"},
		{"netaddress static long", "netaddress eth0 static 10.0.0.1 24 10.0.0.254 x", domain.KeyNetAddress, "too many elements for static address"},
		{"netaddress prefix", "netaddress eth0 static 10.0.0.1 /24", domain.KeyNetAddress, "prefix length is not a number"},
		{"netssid short", "netssid wlan0", domain.KeyNetSSID, "at least three elements expected"},
		{"netssid unquoted", "netssid wlan0 Cafe none", domain.KeyNetSSID, "malformed SSID"},
		{"netssid unterminated", `netssid wlan0 "Cafe none`, domain.KeyNetSSID, "unterminated SSID"},
		{"netssid security", `netssid wlan0 "Cafe"`, domain.KeyNetSSID, "security type expected"},
		{"netssid unknown security", `netssid wlan0 "Cafe" wpa3 x`, domain.KeyNetSSID, "unknown security type 'wpa3'"},
		{"netssid passphrase", `netssid wlan0 "Cafe" wep`, domain.KeyNetSSID, "expected passphrase for security type 'wep'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, diags := parse(t, tt.line+"\n", false)

			require.Len(t, diags, 1)
			d := diags[0]
			assert.Equal(t, domain.SeverityError, d.Severity)
			assert.Equal(t, domain.StageParser, d.Stage)
			assert.Equal(t, domain.ClassParse, d.Class)
			assert.Equal(t, tt.key, d.Key)
			assert.Equal(t, 1, d.Line)
			assert.Equal(t, tt.want, d.Message)
			assert.Equal(t, 0, doc.Len())
		})
	}
}

func TestParse_BooleanIsCaseSensitive(t *testing.T) {
	_, diags := parse(t, "network TRUE\nfirmware False\n", true)

	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, domain.SeverityError, d.Severity)
		assert.Equal(t, "expected 'true' or 'false'", d.Message)
	}
	assert.Equal(t, domain.KeyNetwork, diags[0].Key)
	assert.Equal(t, domain.KeyFirmware, diags[1].Key)
}

func TestParse_MountWithFilesystemType(t *testing.T) {
	doc, diags := parse(t, "mount /dev/sda1 / auto defaults\nmount /dev/sdb1 /home xfs noatime\n", false)
	require.Empty(t, diags)

	mounts := doc.Get(domain.KeyMount)
	require.Len(t, mounts, 2)
	assert.Equal(t, []string{"/dev/sda1", "/", "auto", "defaults"}, mounts[0].Tokens)

	dev, mountpoint, fstype, options := domain.MountFields(mounts[1])
	assert.Equal(t, "/dev/sdb1", dev)
	assert.Equal(t, "/home", mountpoint)
	assert.Equal(t, "xfs", fstype)
	assert.Equal(t, "noatime", options)
}

func TestParse_StaticAddressAcceptsMask(t *testing.T) {
	doc, diags := parse(t, "netaddress eth0 static 192.168.1.5 255.255.255.0 192.168.1.1\n", false)
	require.Empty(t, diags)

	e, _ := doc.First(domain.KeyNetAddress)
	assert.Equal(t, []string{"eth0", "static", "192.168.1.5", "255.255.255.0", "192.168.1.1"}, e.Tokens)
}

func TestParse_UnsuffixedSizeWarns(t *testing.T) {
	doc, diags := parse(t, "partition /dev/sda 1 1048576\n", false)

	require.Len(t, diags, 1)
	assert.Equal(t, domain.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "size has no suffix; assuming bytes", diags[0].Message)
	assert.Equal(t, 1, doc.Count(domain.KeyPartition))
}

func TestParse_FailFast(t *testing.T) {
	src := "network maybe\nmount /dev/sda1\nhostname box\n"

	doc, diags := parse(t, src, false)
	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, 0, doc.Len())

	doc, diags = parse(t, src, true)
	require.Len(t, diags, 2)
	assert.Equal(t, 2, diags[1].Line)
	assert.Equal(t, 1, doc.Len())
	assert.True(t, doc.Has(domain.KeyHostname))
}

func TestParse_LineTooLong(t *testing.T) {
	src := "pkginstall " + strings.Repeat("x", domain.MaxLineLength) + "\nhostname box\n"

	doc, diags := parse(t, src, true)
	require.Len(t, diags, 1)
	assert.Equal(t, "line exceeds maximum length", diags[0].Message)
	assert.Equal(t, 1, diags[0].Line)
	assert.True(t, doc.Has(domain.KeyHostname))

	doc, _ = parse(t, src, false)
	assert.False(t, doc.Has(domain.KeyHostname))
}
