package emitter

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/kitsnotes/hollywood/internal/core/domain"
)

var labelNames = map[string]string{
	"mbr": "msdos",
	"gpt": "gpt",
	"mac": "mac",
}

var mkfs = map[string][]string{
	"ext2":    {"mkfs.ext2", "-q", "-F"},
	"ext3":    {"mkfs.ext3", "-q", "-F"},
	"ext4":    {"mkfs.ext4", "-q", "-F"},
	"hfsplus": {"mkfs.hfsplus", "-w"},
	"jfs":     {"mkfs.jfs", "-q"},
	"vfat":    {"mkfs.vfat", "-F32"},
	"xfs":     {"mkfs.xfs", "-f"},
	"btrfs":   {"mkfs.btrfs", "-q", "-f", "-L", "Hollywood"},
}

func emitDiskLabel(em *emission, a actions, e domain.Entry) error {
	dev := e.Token(0)
	label, ok := labelNames[strings.ToLower(e.Token(1))]
	if !ok {
		return em.fail(e, "unknown label type")
	}
	em.infof("disklabel: creating new %s disklabel on %s", label, dev)
	a.exec("parted", "-ms", dev, "mklabel", label)
	return nil
}

type cursor struct {
	domain.DiskCursor
}

// offset renders the cursor minus back bytes for parted's "unit B" mode.
// It reports whether the result needs the shell to evaluate.
func (c cursor) offset(dev string, back uint64) (string, bool) {
	if c.Percent == 0 {
		return strconv.FormatUint(c.Bytes-back, 10) + "B", false
	}
	adjust := ""
	if back > 0 {
		adjust = fmt.Sprintf(" - %d", back)
	}
	return fmt.Sprintf("$((%d + $(blockdev --getsize64 %s) * %d / 100%s))B",
		c.Bytes, shellquote.Join(dev), c.Percent, adjust), true
}

func emitPartition(em *emission, a actions, e domain.Entry) error {
	dev := e.Token(0)
	num, err := strconv.Atoi(e.Token(1))
	if err != nil {
		return em.fail(e, "invalid partition number")
	}
	size, err := domain.ParseSize(e.Token(2))
	if err != nil {
		return em.fail(e, domain.SizeErrorMessage(err))
	}

	c, ok := em.disk[dev]
	if !ok {
		c = &cursor{DiskCursor: domain.NewDiskCursor()}
		em.disk[dev] = c
	}

	em.infof("partition: creating partition #%d on %s", num, dev)

	start, dynamicStart := c.offset(dev, 0)
	if err := c.Advance(size); err != nil {
		return em.fail(e, domain.CursorErrorMessage(err))
	}
	end, dynamicEnd := "100%", false
	if size.Type != domain.SizeFill {
		end, dynamicEnd = c.offset(dev, 1)
	}

	argv := []string{"parted", "-ms", "-a", "optimal", dev, "unit", "B", "mkpart", "primary"}
	if dynamicStart || dynamicEnd {
		a.shell(shellquote.Join(argv...) + " " + start + " " + end)
	} else {
		a.exec(append(argv, start, end)...)
	}

	if len(e.Tokens) > 3 {
		a.exec("parted", "-ms", dev, "set", strconv.Itoa(num), strings.ToLower(e.Token(3)), "on")
	}
	return nil
}

func emitPhysicalVolume(em *emission, a actions, e domain.Entry) error {
	em.infof("lvm_pv: creating physical volume on %s", e.Value())
	a.exec("pvcreate", "--force", e.Value())
	return nil
}

func emitVolumeGroup(em *emission, a actions, e domain.Entry) error {
	pv, name := e.Token(0), e.Token(1)
	em.infof("lvm_vg: creating volume group %s on %s", name, pv)
	a.exec("vgcreate", name, pv)
	return nil
}

func emitLogicalVolume(em *emission, a actions, e domain.Entry) error {
	vg, name := e.Token(0), e.Token(1)
	size, err := domain.ParseSize(e.Token(2))
	if err != nil {
		return em.fail(e, domain.SizeErrorMessage(err))
	}

	em.infof("lvm_lv: creating volume %s on %s", name, vg)
	switch size.Type {
	case domain.SizeFill:
		a.exec("lvcreate", "-l", "100%FREE", "-n", name, vg)
	case domain.SizePercent:
		a.exec("lvcreate", "-l", strconv.FormatUint(size.Value, 10)+"%VG", "-n", name, vg)
	default:
		a.exec("lvcreate", "-L", strconv.FormatUint(size.Value, 10)+"B", "-n", name, vg)
	}
	return nil
}

func emitEncrypt(em *emission, a actions, e domain.Entry) error {
	dev, passphrase := e.Token(0), e.Token(1)
	name := domain.CryptName(dev)

	em.infof("encrypt: setting up encryption on %s", dev)
	if passphrase == "" {
		a.exec("cryptsetup", "luksFormat", "--batch-mode", dev)
		a.exec("cryptsetup", "open", dev, name)
		return nil
	}
	a.execInput(passphrase, "cryptsetup", "luksFormat", "--batch-mode", "--key-file=-", dev)
	a.execInput(passphrase, "cryptsetup", "open", "--key-file=-", dev, name)
	return nil
}

func emitFilesystem(em *emission, a actions, e domain.Entry) error {
	dev, fstype := e.Token(0), e.Token(1)
	argv, ok := mkfs[fstype]
	if !ok {
		return em.fail(e, "unknown filesystem type")
	}
	em.infof("fs: creating new %s filesystem on %s", fstype, dev)
	a.exec(append(append([]string(nil), argv...), dev)...)
	return nil
}

func emitMount(em *emission, a actions, e domain.Entry) error {
	dev, mountpoint, fstype, options := domain.MountFields(e)
	where := em.target(mountpoint)
	root := path.Clean(mountpoint) == "/"

	em.infof("mount: mounting %s on %s", dev, mountpoint)
	a.mkdir(where)
	argv := []string{"mount"}
	if fstype != "auto" {
		argv = append(argv, "-t", fstype)
	}
	if options != "" {
		argv = append(argv, "-o", options)
	}
	a.exec(append(argv, dev, where)...)

	if root {
		a.mkdir(em.target("/etc"))
	}
	if options == "" {
		options = "defaults"
	}
	pass := "0"
	if root {
		pass = "1"
	}
	a.append(em.target("/etc/fstab"), fmt.Sprintf("%s\t%s\t%s\t%s\t0\t%s\n", dev, mountpoint, fstype, options, pass))
	return nil
}
