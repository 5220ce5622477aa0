package emitter

import (
	"fmt"
	"path"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/engine/validator"
)

const (
	maxHostLabel  = 64
	apkKeysDir    = "etc/apk/keys"
	defaultZone   = "UTC"
	defaultLevel  = "default"
	sddmAutologin = "/etc/sddm.conf.d/20-autologin.conf"
)

// apk builds an apk command line operating on the target root.
func (em *emission) apk(args ...string) []string {
	return append([]string{"apk", "--root", em.opts.TargetRoot, "--keys-dir", apkKeysDir}, args...)
}

// hostDomain returns what follows the first dot of a hostname.
func hostDomain(name string) string {
	_, domainName, ok := strings.Cut(name, ".")
	if !ok {
		return ""
	}
	return domainName
}

func emitHostname(em *emission, a actions, e domain.Entry) error {
	name := e.Value()
	actual := name
	if len(actual) > maxHostLabel {
		actual, _, _ = strings.Cut(actual, ".")
	}

	em.infof("hostname: set hostname to '%s'", actual)
	a.exec("hostname", actual)

	em.infof("hostname: write '%s' to /etc/hostname", actual)
	a.mkdir(em.target("/etc"))
	a.write(em.target("/etc/hostname"), actual)

	if d := hostDomain(name); d != "" {
		em.infof("hostname: set domain name '%s'", d)
		a.mkdir(em.target("/etc/conf.d"))
		a.append(em.target("/etc/conf.d/net"), "dns_domain_lo=\""+d+"\"\n")
	}

	// The repository list follows the hostname; the built-in defaults
	// apply when the script names no repository.
	a.mkdir(em.target("/etc/apk"))
	if !em.doc.Has(domain.KeyRepository) {
		for _, repo := range em.opts.Repositories {
			addRepository(em, a, repo)
		}
	}
	return nil
}

func addRepository(em *emission, a actions, repo string) {
	em.infof("repository: write '%s' to /etc/apk/repositories", repo)
	a.append(em.target("/etc/apk/repositories"), repo+"\n")
}

func emitRepository(em *emission, a actions, e domain.Entry) error {
	addRepository(em, a, e.Value())
	return nil
}

func trustKey(em *emission, a actions, key string) {
	name := key[strings.LastIndexByte(key, '/')+1:]
	dir := em.target("/" + apkKeysDir)

	em.infof("signingkey: trusting %s for APK signing", name)
	if em.first("keys-dir") {
		a.mkdir(dir)
	}
	a.copyOrFetch(key, path.Join(dir, name))
}

func emitSigningKey(em *emission, a actions, e domain.Entry) error {
	trustKey(em, a, e.Value())
	return nil
}

func emitArch(em *emission, a actions, e domain.Entry) error {
	em.infof("arch: setting system CPU architecture to %s", e.Value())
	a.write(em.target("/etc/apk/arch"), e.Value()+"\n")
	return nil
}

// emitPkgInstall installs the packages of every pkginstall entry at the
// first one, after the package database is initialised.
func emitPkgInstall(em *emission, a actions, _ domain.Entry) error {
	if !em.first("pkginstall") {
		return nil
	}
	if !em.doc.Has(domain.KeySigningKey) {
		for _, key := range em.opts.SigningKeys {
			trustKey(em, a, key)
		}
	}

	var pkgs []string
	seen := make(map[string]bool)
	for _, entry := range em.doc.Get(domain.KeyPkgInstall) {
		for _, pkg := range entry.Tokens {
			if !seen[pkg] {
				seen[pkg] = true
				pkgs = append(pkgs, pkg)
			}
		}
	}

	em.infof("pkginstall: initialising APK")
	a.exec("apk", "--root", em.opts.TargetRoot, "--initdb", "--keys-dir", apkKeysDir, "add")
	a.exec(em.apk("update")...)

	em.infof("pkginstall: installing %d packages to target", len(pkgs))
	a.exec(em.apk(append([]string{"add"}, pkgs...)...)...)
	return nil
}

func emitKernel(em *emission, a actions, e domain.Entry) error {
	variant := e.Value()
	if variant == "none" {
		return nil
	}
	em.infof("kernel: installing Linux kernel %s", variant)
	a.exec(em.apk("add", "dracut", "linux-"+variant)...)
	return nil
}

func emitRootPW(em *emission, a actions, e domain.Entry) error {
	days := em.opts.Now().Unix() / 86400
	entry := fmt.Sprintf("root:%s:%d:0:::::", e.Value(), days)
	shadow := em.target("/etc/shadow")
	staged := shadow + ".new"

	em.infof("rootpw: setting root passphrase")
	a.shell(fmt.Sprintf("(printf '%%s\\n' %s; sed '1d' %s) > %s",
		shellquote.Join(entry), shellquote.Join(shadow), shellquote.Join(staged)))
	a.move(staged, shadow)
	a.exec("chown", "root:shadow", shadow)
	a.chmod("640", shadow)

	if !em.doc.Has(domain.KeyTimezone) {
		setTimezone(em, a, defaultZone)
	}
	return nil
}

func emitLanguage(em *emission, a actions, e domain.Entry) error {
	script := em.target("/etc/profile.d/00-language.sh")

	em.infof("language: setting default system language to %s", e.Value())
	a.write(script, "#!/bin/sh\nexport LANG=\""+e.Value()+"\"\n")
	a.chmod("a+x", script)
	return nil
}

func emitKeymap(em *emission, a actions, e domain.Entry) error {
	conf := fmt.Sprintf(`keymap="%s"
windowkeys="NO"
extended_keymaps=""
dumpkeys_charset=""
fix_euro="NO"
`, e.Value())

	em.infof("keymap: setting system keyboard map to %s", e.Value())
	a.write(em.target("/etc/conf.d/keymaps"), conf)
	a.symlink("/etc/init.d/keymaps", em.target("/etc/runlevels/"+defaultLevel+"/keymaps"))
	return nil
}

func setTimezone(em *emission, a actions, zone string) {
	info := "/usr/share/zoneinfo/" + zone
	localtime := em.target("/etc/localtime")

	em.infof("timezone: setting system timezone to %s", zone)
	a.shell(fmt.Sprintf("([ -f %s ] && ln -s %s %s) || cp %s %s",
		shellquote.Join(em.target(info)),
		shellquote.Join(info), shellquote.Join(localtime),
		shellquote.Join(info), shellquote.Join(localtime)))
}

func emitTimezone(em *emission, a actions, e domain.Entry) error {
	setTimezone(em, a, e.Value())
	return nil
}

func emitAutologin(em *emission, a actions, e domain.Entry) error {
	conf := em.target(sddmAutologin)

	em.infof("autologin: configuring display manager for automatic login")
	a.mkdir(path.Dir(conf))
	a.write(conf, "[Autologin]\nUser="+e.Value()+"\nSession=hollywood\n")
	return nil
}

func emitSvcEnable(em *emission, a actions, e domain.Entry) error {
	svc, level := e.Token(0), e.Token(1)
	if level == "" {
		level = defaultLevel
	}

	em.infof("svcenable: enabling service %s", svc)
	a.symlink("/etc/init.d/"+svc, em.target("/etc/runlevels/"+level+"/"+svc))
	return nil
}

func emitBootloader(em *emission, a actions, e domain.Entry) error {
	dev := e.Token(0)
	arch := validator.TargetArch(em.doc, em.opts)
	loader := validator.BootloaderFor(arch, e.Token(1))
	root := em.opts.TargetRoot

	switch loader {
	case "none":
		return nil
	case "grub-efi":
		em.infof("bootloader: installing GRUB (EFI) to %s", dev)
		a.exec(em.apk("add", "grub-efi")...)
		a.exec("chroot", root, "grub-install", dev)
	case "refind":
		em.infof("bootloader: installing rEFInd to %s", dev)
		a.exec(em.apk("add", "refind")...)
		a.exec("chroot", root, "refind-install", "--usedefault", dev)
	default:
		return em.fail(e, "unsupported bootloader '"+loader+"'")
	}
	a.shell("chroot " + shellquote.Join(root) + " /usr/sbin/update-boot || true")
	return nil
}
