package validator

import (
	"regexp"
	"strings"
)

// Limits shared by the per-key rules.
const (
	maxInterfaceName = 16
	maxHostname      = 320
	maxHostLabel     = 64
	maxUsers         = 255
	maxGroupName     = 16
	maxGroupsPerUser = 16
	maxAddresses     = 255
	maxNameservers   = 3
	maxRepositories  = 10
	maxSigningKeys   = 10
)

var (
	hostnameChars = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)
	archChars     = regexp.MustCompile(`^[a-z0-9_]+$`)
	kernelChars   = regexp.MustCompile(`^[a-z0-9-]+$`)
	versionChars  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	serviceChars  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	usernameRe    = regexp.MustCompile(`^[a-z_][a-z0-9_.-]*\$?$`)
	packageRe     = regexp.MustCompile(`^([0-9A-Za-z+_.-]*)((>?<|[<>]?=|[~>])[0-9A-Za-z_.-]+)?$`)
	nameserverRe  = regexp.MustCompile(`^[0-9A-Fa-f:.]+$`)
	lvmNameChars  = regexp.MustCompile(`^[A-Za-z0-9+_.-]+$`)
	languageRe    = regexp.MustCompile(`^([a-z]{2})(_[A-Z]{2})?(\.(.+))?$`)
)

var knownArches = set("aarch64", "x86_64")

var kernelVariants = set("lts", "stable", "mainline", "asahi", "none")

// bootloaders lists the loaders each architecture supports, and its default.
var bootloaders = map[string]struct {
	supported map[string]struct{}
	fallback  string
}{
	"aarch64": {supported: set("refind", "grub-efi", "none"), fallback: "grub-efi"},
	"x86_64":  {supported: set("refind", "grub-efi", "none"), fallback: "refind"},
}

var netConfigTypes = set("netifrc", "eni")

var pppoeParams = set("mtu", "username", "password", "lcp-echo-interval", "lcp-echo-failure")

var labelTypes = set("mbr", "gpt", "mac")

var partitionTypeCodes = set("boot", "esp")

var filesystemTypes = set("ext2", "ext3", "ext4", "hfsplus", "jfs", "vfat", "xfs", "btrfs")

// mountTypes are the types a mount line may name; "auto" leaves it to mount(8).
var mountTypes = set("auto", "ext2", "ext3", "ext4", "hfsplus", "jfs", "vfat", "xfs", "btrfs",
	"iso9660", "udf", "ntfs", "exfat", "tmpfs", "nfs", "nfs4", "squashfs")

var reservedUsernames = set(
	"root", "bin", "daemon", "adm", "lp", "sync", "shutdown", "halt", "mail",
	"news", "uucp", "operator", "man", "postmaster", "cron", "ftp", "sshd", "at",
	"squid", "xfs", "games", "postgres", "cyrus", "vpopmail", "utmp", "catchlog",
	"alias", "qmaild", "qmailp", "qmailq", "qmailr", "qmails", "qmaill", "ntp",
	"smmsp", "guest", "nobody",
)

var systemGroups = set(
	"root", "bin", "daemon", "sys", "adm", "tty", "disk", "lp", "mem", "kmem",
	"wheel", "floppy", "mail", "news", "uucp", "man", "cron", "console", "audio",
	"cdrom", "dialout", "ftp", "sshd", "input", "at", "tape", "video", "netdev",
	"readproc", "squid", "xfs", "kvm", "games", "shadow", "postgres", "cdrw",
	"usb", "vpopmail", "users", "catchlog", "ntp", "nofiles", "qmail", "qmaill",
	"smmsp", "locate", "abuild", "utmp", "ping", "nogroup", "nobody",
)

// ISO 639-1 language codes.
var languageCodes = set(
	"aa", "ab", "ae", "af", "ak", "am", "an", "ar", "as", "av", "ay", "az",
	"ba", "be", "bg", "bh", "bi", "bm", "bn", "bo", "br", "bs", "ca", "ce",
	"ch", "co", "cr", "cs", "cu", "cv", "cy", "da", "de", "dv", "dz", "ee",
	"el", "en", "eo", "es", "et", "eu", "fa", "ff", "fi", "fj", "fo", "fr",
	"fy", "ga", "gd", "gl", "gn", "gu", "gv", "ha", "he", "hi", "ho", "hr",
	"ht", "hu", "hy", "hz", "ia", "id", "ie", "ig", "ii", "ik", "io", "is",
	"it", "iu", "ja", "jv", "ka", "kg", "ki", "kj", "kk", "kl", "km", "kn",
	"ko", "kr", "ks", "ku", "kv", "kw", "ky", "la", "lb", "lg", "li", "ln",
	"lo", "lt", "lu", "lv", "mg", "mh", "mi", "mk", "ml", "mn", "mr", "ms",
	"mt", "my", "na", "nb", "nd", "ne", "ng", "nl", "nn", "no", "nr", "nv",
	"ny", "oc", "oj", "om", "or", "os", "pa", "pi", "pl", "ps", "pt", "qu",
	"rm", "rn", "ro", "ru", "rw", "sa", "sc", "sd", "se", "sg", "si", "sk",
	"sl", "sm", "sn", "so", "sq", "sr", "ss", "st", "su", "sv", "sw", "ta",
	"te", "tg", "th", "ti", "tk", "tl", "tn", "to", "tr", "ts", "tt", "tw",
	"ty", "ug", "uk", "ur", "uz", "ve", "vi", "vo", "wa", "wo", "xh", "yi",
	"yo", "za", "zh", "zu",
)

// Console keymaps shipped by kbd.
var keymaps = set(
	"us", "us-acentos", "uk", "gb", "de", "de-latin1", "de-latin1-nodeadkeys",
	"de_CH-latin1", "fr", "fr-latin1", "fr-latin9", "fr_CH", "fr_CH-latin1",
	"be-latin1", "es", "es-cp850", "it", "it2", "pt-latin1", "pt-latin9",
	"br-abnt", "br-abnt2", "nl", "nl2", "dk", "dk-latin1", "no", "no-latin1",
	"sv-latin1", "fi", "is-latin1", "pl", "pl2", "cz", "cz-qwerty", "sk-qwerty",
	"sk-qwertz", "hu", "ro", "ru", "ru4", "ua", "by", "bg_bds-utf8", "gr",
	"tr_q-latin5", "trq", "il", "jp106", "kr106", "la-latin1", "mk", "sr-cy",
	"slovene", "croat", "et", "lt", "lv", "dvorak", "dvorak-l", "dvorak-r",
	"colemak", "mac-us", "mac-uk", "mac-de-latin1", "mac-fr",
)

// LVM reserves these logical volume names and name fragments.
var (
	reservedVolumeNames     = set("snapshot", "pvmove")
	reservedVolumeFragments = []string{
		"_cdata", "_cmeta", "_corig", "_mlog", "_mimage", "_pmspare",
		"_rimage", "_rmeta", "_tdata", "_tmeta", "_vorigin",
	}
)

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, item := range items {
		m[item] = struct{}{}
	}
	return m
}

func in(m map[string]struct{}, item string) bool {
	_, ok := m[item]
	return ok
}

func isLVMName(name string) bool {
	return lvmNameChars.MatchString(name) &&
		!strings.HasPrefix(name, "-") &&
		name != "." && name != ".."
}

func isVolumeName(name string) bool {
	if !isLVMName(name) || in(reservedVolumeNames, name) {
		return false
	}
	for _, frag := range reservedVolumeFragments {
		if strings.Contains(name, frag) {
			return false
		}
	}
	return true
}

// isCrypt reports whether s looks like a bcrypt or SHA-512 crypt(3) hash.
func isCrypt(s string) bool {
	return len(s) >= 5 && s[0] == '$' && (s[1] == '2' || s[1] == '6') && s[2] == '$'
}
