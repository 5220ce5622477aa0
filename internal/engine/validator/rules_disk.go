package validator

import (
	"path"
	"strings"

	"github.com/kitsnotes/hollywood/internal/core/domain"
)

// checkBlockDevice verifies on the host that dev is a block device.
func (v *Validator) checkBlockDevice(dev string, r report) {
	if !v.opts.InstallEnvironment {
		return
	}
	ok, err := v.probe.IsBlockDevice(dev)
	if err != nil {
		r.envf("error opening device %s: %v", dev, err)
		return
	}
	if !ok {
		r.envf("%s is not a valid block device", dev)
	}
}

func checkDiskID(v *Validator, cc *checkContext, e domain.Entry, r report) {
	dev := e.Token(0)
	if _, dup := cc.mark(e.Key, dev, e.Line); dup {
		r.errorf("device %s has already been identified", dev)
		return
	}
	v.checkBlockDevice(dev, r)
}

func checkDiskLabel(v *Validator, cc *checkContext, e domain.Entry, r report) {
	dev, label := e.Token(0), strings.ToLower(e.Token(1))
	if !domain.IsDevicePath(dev) {
		r.errorf("expected path to block device")
		return
	}
	if !in(labelTypes, label) {
		r.errorf("invalid label type '%s'", e.Token(1))
		return
	}
	if _, dup := cc.mark(e.Key, dev, e.Line); dup {
		r.errorf("device %s already has a label queued", dev)
		return
	}
	v.checkBlockDevice(dev, r)
}

func checkPartition(v *Validator, cc *checkContext, e domain.Entry, r report) {
	dev := e.Token(0)
	if !strings.HasPrefix(dev, "/dev") {
		r.errorf("expected path to block device")
		return
	}
	if !checkPercent(e.Token(2), r) {
		return
	}
	if len(e.Tokens) > 3 {
		if code := strings.ToLower(e.Token(3)); !in(partitionTypeCodes, code) {
			r.errorf("expected type code, got: %s", e.Token(3))
			return
		}
	}
	num := e.Token(1)
	if _, dup := cc.mark(e.Key, dev+"\x00"+strings.TrimLeft(num, "0"), e.Line); dup {
		r.errorf("partition #%s already exists on %s", num, dev)
		return
	}
	if size, err := domain.ParseSize(e.Token(2)); err == nil {
		if err := cc.advance(dev, size); err != nil {
			r.errorf("invalid size: %s", domain.CursorErrorMessage(err))
			return
		}
	}
	v.checkBlockDevice(dev, r)
}

// checkPercent rejects a 0% size; the parser has already range-checked the rest.
func checkPercent(size string, r report) bool {
	s, err := domain.ParseSize(size)
	if err == nil && s.Type == domain.SizePercent && s.Value == 0 {
		r.errorf("invalid size: percentage must be between 1 and 100")
		return false
	}
	return true
}

func checkLVMPhysical(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	dev := e.Value()
	if !domain.IsDevicePath(dev) {
		r.errorf("expected an absolute path to a device")
		return
	}
	if _, dup := cc.mark(e.Key, dev, e.Line); dup {
		r.errorf("a physical volume already exists on device %s", dev)
	}
}

func checkLVMGroup(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	pv, name := e.Token(0), e.Token(1)
	if !domain.IsDevicePath(pv) {
		r.errorf("expected absolute path to block device")
		return
	}
	if !isLVMName(name) {
		r.errorf("invalid volume group name")
		return
	}
	if _, dup := cc.mark(e.Key, "name\x00"+name, e.Line); dup {
		r.errorf("duplicate volume group name")
		return
	}
	if _, dup := cc.mark(e.Key, "pv\x00"+pv, e.Line); dup {
		r.errorf("a volume group already exists on %s", pv)
	}
}

func checkLVMVolume(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	vg, name := e.Token(0), e.Token(1)
	if !isLVMName(vg) {
		r.errorf("invalid volume group name")
		return
	}
	if !isVolumeName(name) {
		r.errorf("invalid volume name")
		return
	}
	if !checkPercent(e.Token(2), r) {
		return
	}
	if _, dup := cc.mark(e.Key, vg+"/"+name, e.Line); dup {
		r.errorf("a volume with the name %s already exists on the volume group %s", name, vg)
	}
}

func checkEncrypt(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	dev := e.Token(0)
	if !strings.HasPrefix(dev, domain.DevicePrefix) || len(dev) < 6 {
		r.errorf("expected path to block device")
		return
	}
	if _, dup := cc.mark(e.Key, dev, e.Line); dup {
		r.errorf("encryption already enabled for %s", dev)
	}
}

func checkFilesystem(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	dev, fstype := e.Token(0), e.Token(1)
	if !domain.IsDevicePath(dev) {
		r.errorf("element 1: expected device node")
		return
	}
	if !in(filesystemTypes, fstype) {
		r.errorf("element 2: expected filesystem type")
		return
	}
	if _, dup := cc.mark(e.Key, dev, e.Line); dup {
		r.errorf("a filesystem is already scheduled to be created on %s", dev)
	}
}

func checkMount(_ *Validator, cc *checkContext, e domain.Entry, r report) {
	dev, mountpoint, fstype, _ := domain.MountFields(e)
	if !domain.IsDevicePath(dev) {
		r.errorf("element 1: expected device node")
		return
	}
	if !path.IsAbs(mountpoint) {
		r.errorf("element 2: expected absolute path")
		return
	}
	if !in(mountTypes, fstype) {
		r.errorf("element 3: unknown filesystem type '%s'", fstype)
		return
	}
	if _, dup := cc.mark(e.Key, path.Clean(mountpoint), e.Line); dup {
		r.errorf("mountpoint %s has already been specified; %s is a duplicate", mountpoint, dev)
	}
}
