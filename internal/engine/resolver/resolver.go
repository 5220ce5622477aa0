// Package resolver orders the entries of a validated Document for emission.
package resolver

import (
	"path"
	"slices"
	"strconv"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"go.trai.ch/zerr"
)

// ranks are the phases of the physical keys. Among steps whose dependencies
// are satisfied, lower ranks run first.
var ranks = map[domain.Key]int{
	domain.KeyDiskID:     0,
	domain.KeyDiskLabel:  1,
	domain.KeyPartition:  2,
	domain.KeyLVMPV:      3,
	domain.KeyLVMVG:      4,
	domain.KeyLVMLV:      5,
	domain.KeyEncrypt:    6,
	domain.KeyFilesystem: 7,
	domain.KeyMount:      8,
}

// sequence lists the non-physical keys in emission order. Keys sharing a
// slot are interleaved in script order.
var sequence = [][]domain.Key{
	// pre-metadata
	{domain.KeyHostname},
	{domain.KeyRepository},
	// network
	{domain.KeyNetConfigType},
	{domain.KeyNetAddress},
	{domain.KeyPPPoE},
	{domain.KeyNetSSID},
	{domain.KeyNameserver},
	{domain.KeyNetwork},
	// package database
	{domain.KeySigningKey},
	{domain.KeyArch},
	{domain.KeyPkgInstall},
	{domain.KeyKernel},
	{domain.KeyFirmware, domain.KeyVersion},
	// post-metadata
	{domain.KeyRootPW},
	{domain.KeyLanguage},
	{domain.KeyKeymap},
	{domain.KeyUsername},
	{domain.KeyUserAlias, domain.KeyUserPW, domain.KeyUserGroups, domain.KeyUserIcon},
	{domain.KeyTimezone},
	{domain.KeyAutologin},
	{domain.KeySvcEnable},
	{domain.KeyBootloader},
}

// IsPhysical reports whether entries of key change block devices.
func IsPhysical(key domain.Key) bool {
	_, ok := ranks[key]
	return ok
}

// Resolve returns every known entry of doc in the order its actions must run:
// physical steps in dependency order, then the metadata phases.
// Entries with unknown keys are left out.
func Resolve(doc *domain.Document) ([]domain.EntryRef, error) {
	order, err := physicalOrder(doc)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to order physical steps")
	}
	for _, slot := range sequence {
		for ref := range doc.All() {
			if slices.Contains(slot, ref.Key) {
				order = append(order, ref)
			}
		}
	}
	return order, nil
}

// producers maps the names an entry creates to the entry.
type producers struct {
	devices     map[string]domain.EntryRef
	labels      map[string]domain.EntryRef
	pvs         map[string]domain.EntryRef
	groups      map[string]domain.EntryRef
	filesystems map[string]domain.EntryRef
	mounts      map[string]domain.EntryRef
}

func physicalOrder(doc *domain.Document) ([]domain.EntryRef, error) {
	g := domain.NewGraph()
	p := producers{
		devices:     make(map[string]domain.EntryRef),
		labels:      make(map[string]domain.EntryRef),
		pvs:         make(map[string]domain.EntryRef),
		groups:      make(map[string]domain.EntryRef),
		filesystems: make(map[string]domain.EntryRef),
		mounts:      make(map[string]domain.EntryRef),
	}

	// 1. Add one step per physical entry and record what it produces
	for ref, e := range doc.All() {
		rank, ok := ranks[e.Key]
		if !ok {
			continue
		}
		step := domain.Step{Ref: ref, Line: e.Line, Rank: rank, Group: e.Token(0)}
		switch e.Key {
		case domain.KeyDiskLabel:
			p.labels[e.Token(0)] = ref
		case domain.KeyPartition:
			num, _ := strconv.Atoi(e.Token(1))
			step.Seq = num
			p.devices[domain.PartitionDevice(e.Token(0), num)] = ref
		case domain.KeyLVMPV:
			p.pvs[e.Token(0)] = ref
		case domain.KeyLVMVG:
			step.Group = e.Token(1)
			p.groups[e.Token(1)] = ref
		case domain.KeyLVMLV:
			dev := domain.VolumeDevice(e.Token(0), e.Token(1))
			step.Group = dev
			p.devices[dev] = ref
		case domain.KeyEncrypt:
			p.devices[domain.CryptDevice(e.Token(0))] = ref
		case domain.KeyFilesystem:
			p.filesystems[e.Token(0)] = ref
		case domain.KeyMount:
			step.Group = ""
			step.Seq = domain.MountDepth(e.Token(1))
			p.mounts[path.Clean(e.Token(1))] = ref
		}
		if err := g.AddStep(step); err != nil {
			return nil, err
		}
	}

	// 2. Connect consumers to producers
	for ref, e := range doc.All() {
		var deps []domain.EntryRef
		switch e.Key {
		case domain.KeyPartition:
			deps = p.lookup(deps, p.labels, e.Token(0))
		case domain.KeyLVMPV, domain.KeyEncrypt, domain.KeyFilesystem:
			deps = p.lookup(deps, p.devices, e.Token(0))
		case domain.KeyLVMVG:
			deps = p.lookup(deps, p.pvs, e.Token(0))
		case domain.KeyLVMLV:
			deps = p.lookup(deps, p.groups, e.Token(0))
		case domain.KeyMount:
			deps = p.lookup(deps, p.devices, e.Token(0))
			deps = p.lookup(deps, p.filesystems, e.Token(0))
			if parent, ok := p.parentMount(e.Token(1)); ok {
				deps = append(deps, parent)
			}
		}
		for _, dep := range deps {
			if err := g.AddDependency(ref, dep); err != nil {
				return nil, err
			}
		}
	}

	// 3. Order
	if err := g.Validate(); err != nil {
		return nil, err
	}
	order := make([]domain.EntryRef, 0, g.Len())
	for step := range g.Walk() {
		order = append(order, step.Ref)
	}
	return order, nil
}

func (p producers) lookup(deps []domain.EntryRef, from map[string]domain.EntryRef, name string) []domain.EntryRef {
	if ref, ok := from[name]; ok {
		return append(deps, ref)
	}
	return deps
}

// parentMount finds the mount of the closest enclosing mountpoint.
func (p producers) parentMount(mountpoint string) (domain.EntryRef, bool) {
	dir := path.Clean(mountpoint)
	for dir != "/" && dir != "." {
		dir = path.Dir(dir)
		if ref, ok := p.mounts[dir]; ok {
			return ref, true
		}
	}
	return domain.EntryRef{}, false
}
