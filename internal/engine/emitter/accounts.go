package emitter

import (
	"fmt"
	"path"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/kitsnotes/hollywood/internal/core/domain"
)

const iconDir = "/var/lib/AccountsService/icons"

func emitUsername(em *emission, a actions, e domain.Entry) error {
	name := e.Value()
	em.infof("username: creating account %s", name)
	a.exec("useradd", "-s", "/bin/bash", "-c", "Hollywood User", "-m", "-R", em.opts.TargetRoot, "-U", name)
	return nil
}

func emitUserAlias(em *emission, a actions, e domain.Entry) error {
	user, alias := e.Token(0), e.Token(1)
	em.infof("useralias: setting GECOS name for %s", user)
	a.exec("usermod", "-c", alias, "-R", em.opts.TargetRoot, user)
	return nil
}

func emitUserPW(em *emission, a actions, e domain.Entry) error {
	user := e.Token(0)
	em.infof("userpw: setting passphrase for %s", user)
	a.exec("usermod", "-p", e.Token(1), "-R", em.opts.TargetRoot, user)
	return nil
}

func emitUserGroups(em *emission, a actions, e domain.Entry) error {
	user := e.Token(0)
	em.infof("usergroups: setting group membership for %s", user)
	a.exec("usermod", "-aG", strings.Trim(e.Token(1), ","), "-R", em.opts.TargetRoot, user)
	return nil
}

func emitUserIcon(em *emission, a actions, e domain.Entry) error {
	user, icon := e.Token(0), e.Token(1)
	icons := em.target(iconDir)
	home := em.target(path.Join("/home", user))
	face := path.Join(home, ".face")

	if em.first("icon-dir") {
		a.mkdir(icons)
		a.exec("chown", "root:root", icons)
		a.chmod("775", icons)
	}

	em.infof("usericon: setting avatar for %s", user)
	stored := path.Join(icons, user)
	a.copyOrFetch(icon, stored)
	a.copy(stored, face+".icon")
	a.shell(fmt.Sprintf("chown $(%s %s) %s",
		domain.PrintOwnerCommand, shellquote.Join(home), shellquote.Join(face+".icon")))
	a.symlink(".face.icon", face)
	return nil
}
