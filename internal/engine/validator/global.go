package validator

import (
	"strconv"

	"github.com/kitsnotes/hollywood/internal/core/domain"
)

// globalCheck inspects the document as a whole. Each one is a single check
// for fail-fast purposes.
type globalCheck func(v *Validator, doc *domain.Document, r report)

var globalChecks = []globalCheck{
	checkRequiredKeys,
	checkNetworkAddresses,
	checkAccounts,
	checkRootMount,
	checkDeviceReferences,
}

func checkRequiredKeys(_ *Validator, doc *domain.Document, r report) {
	for _, key := range domain.RequiredKeys {
		if !doc.Has(key) {
			r.at(key, 0).errorf("expected value for key '%s'", key)
		}
	}
}

func checkNetworkAddresses(_ *Validator, doc *domain.Document, r report) {
	e, ok := doc.First(domain.KeyNetwork)
	if ok && e.Value() == "true" && !doc.Has(domain.KeyNetAddress) {
		r.at(domain.KeyNetwork, 0).errorf("networking requires 'netaddress'")
	}
}

// checkAccounts ties per-user keys to declared usernames.
func checkAccounts(_ *Validator, doc *domain.Document, r report) {
	users := make(map[string]struct{})
	for _, e := range doc.Get(domain.KeyUsername) {
		users[e.Value()] = struct{}{}
	}

	passwords := make(map[string]struct{})
	for _, e := range doc.Get(domain.KeyUserPW) {
		passwords[e.Token(0)] = struct{}{}
	}

	for _, e := range doc.All() {
		switch e.Key {
		case domain.KeyUserAlias, domain.KeyUserPW, domain.KeyUserIcon, domain.KeyUserGroups:
			if name := e.Token(0); !in(users, name) {
				r.at(e.Key, e.Line).errorf("account name %s is unknown", name)
			}
		case domain.KeyUsername:
			if name := e.Value(); !in(passwords, name) {
				r.at(e.Key, e.Line).warnf("%s has no set passphrase", name)
			}
		}
	}
}

func checkRootMount(_ *Validator, doc *domain.Document, r report) {
	if !doc.Has(domain.KeyMount) {
		// Already reported as a missing required key.
		return
	}
	for _, e := range doc.Get(domain.KeyMount) {
		if e.Token(1) == "/" {
			return
		}
	}
	r.at(domain.KeyMount, 0).errorf("no root mount specified")
}

// devices records the block devices the script itself will create.
type devices struct {
	nodes  map[string]struct{}
	pvs    map[string]struct{}
	groups map[string]struct{}
}

func declaredDevices(doc *domain.Document) devices {
	d := devices{
		nodes:  make(map[string]struct{}),
		pvs:    make(map[string]struct{}),
		groups: make(map[string]struct{}),
	}
	for _, e := range doc.Get(domain.KeyPartition) {
		num, _ := strconv.Atoi(e.Token(1))
		d.nodes[domain.PartitionDevice(e.Token(0), num)] = struct{}{}
	}
	for _, e := range doc.Get(domain.KeyEncrypt) {
		d.nodes[domain.CryptDevice(e.Token(0))] = struct{}{}
	}
	for _, e := range doc.Get(domain.KeyLVMLV) {
		d.nodes[domain.VolumeDevice(e.Token(0), e.Token(1))] = struct{}{}
	}
	for _, e := range doc.Get(domain.KeyLVMPV) {
		d.pvs[e.Value()] = struct{}{}
	}
	for _, e := range doc.Get(domain.KeyLVMVG) {
		d.groups[e.Token(1)] = struct{}{}
	}
	return d
}

// checkDeviceReferences resolves every consumed device against the devices
// the script creates, and against the host when environment checks are on.
func checkDeviceReferences(v *Validator, doc *domain.Document, r report) {
	d := declaredDevices(doc)

	for _, e := range doc.All() {
		at := r.at(e.Key, e.Line)
		switch e.Key {
		case domain.KeyLVMPV, domain.KeyEncrypt, domain.KeyFilesystem, domain.KeyMount:
			v.checkDeviceExists(d, e.Token(0), at)
		case domain.KeyLVMVG:
			pv := e.Token(0)
			if in(d.pvs, pv) {
				continue
			}
			if v.opts.InstallEnvironment {
				v.checkDeviceExists(d, pv, at)
				continue
			}
			at.warnf("please ensure an LVM physical volume already exists at %s", pv)
		case domain.KeyLVMLV:
			vg := e.Token(0)
			if in(d.groups, vg) {
				continue
			}
			if !v.opts.InstallEnvironment {
				at.warnf("volume group %s is not declared; please ensure it already exists", vg)
				continue
			}
			ok, err := v.probe.Exists(domain.DevicePrefix + vg)
			switch {
			case err != nil:
				at.envf("error looking up volume group %s: %v", vg, err)
			case !ok:
				at.envf("volume group %s does not exist", vg)
			}
		}
	}
}

func (v *Validator) checkDeviceExists(d devices, dev string, r report) {
	if in(d.nodes, dev) || !v.opts.InstallEnvironment {
		return
	}
	ok, err := v.probe.Exists(dev)
	switch {
	case err != nil:
		r.envf("error opening device %s: %v", dev, err)
	case !ok:
		r.envf("device %s does not exist", dev)
	}
}
