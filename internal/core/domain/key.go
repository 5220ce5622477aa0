package domain

// Key identifies the kind of an entry. It is the lowercased first word of a script line.
type Key string

// Supported keys.
const (
	KeyNetwork       Key = "network"
	KeyNetConfigType Key = "netconfigtype"
	KeyNetAddress    Key = "netaddress"
	KeyNameserver    Key = "nameserver"
	KeyNetSSID       Key = "netssid"
	KeyPPPoE         Key = "pppoe"
	KeyHostname      Key = "hostname"
	KeyPkgInstall    Key = "pkginstall"
	KeyRootPW        Key = "rootpw"
	KeyArch          Key = "arch"
	KeyLanguage      Key = "language"
	KeyKeymap        Key = "keymap"
	KeyFirmware      Key = "firmware"
	KeyTimezone      Key = "timezone"
	KeyRepository    Key = "repository"
	KeySigningKey    Key = "signingkey"
	KeySvcEnable     Key = "svcenable"
	KeyVersion       Key = "version"
	KeyBootloader    Key = "bootloader"
	KeyKernel        Key = "kernel"
	KeyUsername      Key = "username"
	KeyUserAlias     Key = "useralias"
	KeyUserPW        Key = "userpw"
	KeyUserIcon      Key = "usericon"
	KeyUserGroups    Key = "usergroups"
	KeyAutologin     Key = "autologin"
	KeyDiskID        Key = "diskid"
	KeyDiskLabel     Key = "disklabel"
	KeyPartition     Key = "partition"
	KeyLVMPV         Key = "lvm_pv"
	KeyLVMVG         Key = "lvm_vg"
	KeyLVMLV         Key = "lvm_lv"
	KeyEncrypt       Key = "encrypt"
	KeyFilesystem    Key = "fs"
	KeyMount         Key = "mount"
)

var knownKeys = map[Key]struct{}{
	KeyNetwork: {}, KeyNetConfigType: {}, KeyNetAddress: {}, KeyNameserver: {},
	KeyNetSSID: {}, KeyPPPoE: {}, KeyHostname: {}, KeyPkgInstall: {},
	KeyRootPW: {}, KeyArch: {}, KeyLanguage: {}, KeyKeymap: {},
	KeyFirmware: {}, KeyTimezone: {}, KeyRepository: {}, KeySigningKey: {},
	KeySvcEnable: {}, KeyVersion: {}, KeyBootloader: {}, KeyKernel: {},
	KeyUsername: {}, KeyUserAlias: {}, KeyUserPW: {}, KeyUserIcon: {},
	KeyUserGroups: {}, KeyAutologin: {}, KeyDiskID: {}, KeyDiskLabel: {},
	KeyPartition: {}, KeyLVMPV: {}, KeyLVMVG: {}, KeyLVMLV: {},
	KeyEncrypt: {}, KeyFilesystem: {}, KeyMount: {},
}

// RequiredKeys lists the keys every script must contain at least once.
var RequiredKeys = []Key{KeyNetwork, KeyHostname, KeyPkgInstall, KeyRootPW, KeyMount}

// Known reports whether k is a key the toolchain understands.
func (k Key) Known() bool {
	_, ok := knownKeys[k]
	return ok
}

func (k Key) String() string {
	return string(k)
}
