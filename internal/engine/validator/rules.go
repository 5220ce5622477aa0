package validator

import (
	"net/url"
	"path"
	"strings"

	"github.com/kitsnotes/hollywood/internal/core/domain"
)

// rule checks one entry. It may read other entries of the document but only
// touches trackers under the entry's own key.
type rule func(v *Validator, cc *checkContext, e domain.Entry, r report)

var rules map[domain.Key]rule

func init() {
	rules = map[domain.Key]rule{
		domain.KeyNetwork:       checkNetwork,
		domain.KeyNetConfigType: checkNetConfigType,
		domain.KeyNetAddress:    checkNetAddress,
		domain.KeyNameserver:    checkNameserver,
		domain.KeyNetSSID:       checkNetSSID,
		domain.KeyPPPoE:         checkPPPoE,
		domain.KeyHostname:      checkHostname,
		domain.KeyPkgInstall:    checkPkgInstall,
		domain.KeyRootPW:        checkRootPW,
		domain.KeyArch:          checkArch,
		domain.KeyLanguage:      checkLanguage,
		domain.KeyKeymap:        checkKeymap,
		domain.KeyFirmware:      checkFirmware,
		domain.KeyTimezone:      checkTimezone,
		domain.KeyRepository:    checkRepository,
		domain.KeySigningKey:    checkSigningKey,
		domain.KeySvcEnable:     checkSvcEnable,
		domain.KeyVersion:       checkVersion,
		domain.KeyBootloader:    checkBootloader,
		domain.KeyKernel:        checkKernel,
		domain.KeyUsername:      checkUsername,
		domain.KeyUserAlias:     checkUserAlias,
		domain.KeyUserPW:        checkUserPW,
		domain.KeyUserIcon:      checkUserIcon,
		domain.KeyUserGroups:    checkUserGroups,
		domain.KeyAutologin:     checkAutologin,
		domain.KeyDiskID:        checkDiskID,
		domain.KeyDiskLabel:     checkDiskLabel,
		domain.KeyPartition:     checkPartition,
		domain.KeyLVMPV:         checkLVMPhysical,
		domain.KeyLVMVG:         checkLVMGroup,
		domain.KeyLVMLV:         checkLVMVolume,
		domain.KeyEncrypt:       checkEncrypt,
		domain.KeyFilesystem:    checkFilesystem,
		domain.KeyMount:         checkMount,
	}
}

// unique reports a duplicate for keys that may appear at most once.
func unique(cc *checkContext, e domain.Entry, r report) bool {
	if cc.once(e.Key, e.Line) {
		r.errorf("duplicate value for key '%s'", e.Key)
		return false
	}
	return true
}

func checkHostname(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !unique(cc, e, r) {
		return
	}
	name := e.Value()
	if !hostnameChars.MatchString(name) {
		r.errorf("expected only alphanumeric, -, and .")
		return
	}
	if !isAlnum(name[0]) {
		r.errorf("must start with alphanumeric character")
		return
	}
	name = strings.TrimSuffix(name, ".")
	if len(name) > maxHostname {
		r.errorf("value too long")
		return
	}
	for _, label := range strings.Split(name, ".") {
		if len(label) > maxHostLabel {
			r.errorf("component too long")
			return
		}
	}
}

func checkPkgInstall(v *Validator, cc *checkContext, e domain.Entry, r report) {
	onLine := make(map[string]struct{}, len(e.Tokens))
	for _, pkg := range e.Tokens {
		m := packageRe.FindStringSubmatch(pkg)
		if m == nil || m[1] == "" {
			r.errorf("expected package name, got: %s", pkg)
			continue
		}
		name := m[1]
		if _, dup := onLine[name]; dup {
			r.warnf("package '%s' is already in the target package set", name)
			continue
		}
		onLine[name] = struct{}{}
		if first, dup := cc.mark(e.Key, name, e.Line); dup && v.opts.PkgDupScope == domain.DupScopeScript {
			r.warnf("package '%s' has already been specified on line %d", name, first)
		}
	}
}

func checkRootPW(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !unique(cc, e, r) {
		return
	}
	if !isCrypt(e.Value()) {
		r.errorf("value is not a crypt-style encrypted passphrase")
	}
}

func checkArch(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !unique(cc, e, r) {
		return
	}
	arch := e.Value()
	if !archChars.MatchString(arch) {
		r.errorf("expected CPU architecture name")
		return
	}
	if !in(knownArches, arch) {
		r.warnf("unknown CPU architecture '%s'", arch)
	}
}

func checkLanguage(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !unique(cc, e, r) {
		return
	}
	if !isLanguage(e.Value()) {
		r.errorf("invalid language specified")
	}
}

// isLanguage accepts "C", "C.UTF-8" and ll[_CC][.UTF-8] with an ISO 639-1 ll.
func isLanguage(lang string) bool {
	if lang == "C" {
		return true
	}
	if codeset, ok := strings.CutPrefix(lang, "C."); ok {
		return isUTF8(codeset)
	}
	m := languageRe.FindStringSubmatch(lang)
	if m == nil || !in(languageCodes, m[1]) {
		return false
	}
	return m[3] == "" || isUTF8(m[4])
}

func isUTF8(codeset string) bool {
	switch strings.ToLower(codeset) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

func checkKeymap(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !unique(cc, e, r) {
		return
	}
	if !in(keymaps, e.Value()) {
		r.warnf("invalid keymap specified")
	}
}

func checkFirmware(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !unique(cc, e, r) {
		return
	}
	if e.Value() == "true" {
		r.errorf("this build does not support non-free firmware")
	}
}

func checkTimezone(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !unique(cc, e, r) {
		return
	}
	tz := e.Value()
	if strings.ContainsAny(tz, " .\\") || strings.HasPrefix(tz, "/") {
		r.errorf("invalid timezone name")
	}
}

func checkRepository(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	repo := e.Value()
	if !path.IsAbs(repo) && !strings.HasPrefix(repo, "http://") && !strings.HasPrefix(repo, "https://") {
		r.errorf("must be absolute path or HTTP(S) URL")
		return
	}
	if cc.inc(e.Key, "") > maxRepositories {
		r.errorf("too many repositories specified")
	}
}

func checkSigningKey(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	key := e.Value()
	if !path.IsAbs(key) && !strings.HasPrefix(key, "https://") {
		r.errorf("must be absolute path or HTTPS URL")
		return
	}
	if cc.inc(e.Key, "") > maxSigningKeys {
		r.errorf("too many keys specified")
	}
}

func checkSvcEnable(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	svc := e.Token(0)
	if !serviceChars.MatchString(svc) {
		r.errorf("invalid service name '%s'", svc)
		return
	}
	if len(e.Tokens) > 1 && !serviceChars.MatchString(e.Token(1)) {
		r.errorf("invalid runlevel name '%s'", e.Token(1))
		return
	}
	if _, dup := cc.mark(e.Key, svc, e.Line); dup {
		r.warnf("service '%s' already enabled", svc)
	}
}

func checkVersion(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !unique(cc, e, r) {
		return
	}
	if !versionChars.MatchString(e.Value()) {
		r.errorf("invalid version")
	}
}

func checkBootloader(v *Validator, cc *checkContext, e domain.Entry, r report) {
	if !unique(cc, e, r) {
		return
	}
	arch := TargetArch(cc.doc, v.opts)
	table, ok := bootloaders[arch]
	if !ok {
		r.errorf("unknown architecture '%s'", arch)
		return
	}
	loader := BootloaderFor(arch, e.Token(1))
	if !in(table.supported, loader) {
		r.errorf("architecture does not support loader '%s'", loader)
	}
}

func checkKernel(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	if !unique(cc, e, r) {
		return
	}
	variant := e.Value()
	if !kernelChars.MatchString(variant) {
		r.errorf("expected kernel variant")
		return
	}
	if !in(kernelVariants, variant) {
		r.errorf("invalid kernel variant '%s'", variant)
	}
}

// TargetArch is the architecture being installed: the script's arch key, or
// the configured fallback.
func TargetArch(doc *domain.Document, opts domain.Options) string {
	if e, ok := doc.First(domain.KeyArch); ok {
		return e.Value()
	}
	return opts.Arch
}

// BootloaderFor resolves the loader a bootloader entry selects on arch.
// "true" and an omitted loader select the architecture default.
func BootloaderFor(arch, loader string) string {
	loader = strings.ToLower(loader)
	if loader == "" || loader == "true" {
		return bootloaders[arch].fallback
	}
	return loader
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "ftp")
}
