// Package emitter translates an ordered, validated Document into a Plan of
// system actions.
package emitter

import (
	"fmt"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/core/ports"
	"go.trai.ch/zerr"
)

// handler emits the actions of one entry.
type handler func(em *emission, a actions, e domain.Entry) error

var handlers map[domain.Key]handler

func init() {
	handlers = map[domain.Key]handler{
		domain.KeyDiskID:     emitNothing,
		domain.KeyDiskLabel:  emitDiskLabel,
		domain.KeyPartition:  emitPartition,
		domain.KeyLVMPV:      emitPhysicalVolume,
		domain.KeyLVMVG:      emitVolumeGroup,
		domain.KeyLVMLV:      emitLogicalVolume,
		domain.KeyEncrypt:    emitEncrypt,
		domain.KeyFilesystem: emitFilesystem,
		domain.KeyMount:      emitMount,

		domain.KeyHostname:   emitHostname,
		domain.KeyRepository: emitRepository,

		domain.KeyNetConfigType: emitNothing,
		domain.KeyNetAddress:    emitNetAddress,
		domain.KeyPPPoE:         emitPPPoE,
		domain.KeyNetSSID:       emitNetSSID,
		domain.KeyNameserver:    emitNameserver,
		domain.KeyNetwork:       emitNetwork,

		domain.KeySigningKey: emitSigningKey,
		domain.KeyArch:       emitArch,
		domain.KeyPkgInstall: emitPkgInstall,
		domain.KeyKernel:     emitKernel,
		domain.KeyFirmware:   emitNothing,
		domain.KeyVersion:    emitNothing,

		domain.KeyRootPW:     emitRootPW,
		domain.KeyLanguage:   emitLanguage,
		domain.KeyKeymap:     emitKeymap,
		domain.KeyUsername:   emitUsername,
		domain.KeyUserAlias:  emitUserAlias,
		domain.KeyUserPW:     emitUserPW,
		domain.KeyUserGroups: emitUserGroups,
		domain.KeyUserIcon:   emitUserIcon,
		domain.KeyTimezone:   emitTimezone,
		domain.KeyAutologin:  emitAutologin,
		domain.KeySvcEnable:  emitSvcEnable,
		domain.KeyBootloader: emitBootloader,
	}
}

// Emitter builds plans. It is safe to reuse across documents.
type Emitter struct {
	opts domain.Options
	log  ports.Logger
}

// New creates a new Emitter.
func New(opts domain.Options, log ports.Logger) *Emitter {
	return &Emitter{opts: opts.Normalize(), log: log}
}

// Emit translates the entries of doc, in the given order, into a Plan.
// order normally comes from resolver.Resolve.
func (m *Emitter) Emit(doc *domain.Document, order []domain.EntryRef) (*domain.Plan, error) {
	em := &emission{
		doc:  doc,
		opts: m.opts,
		log:  m.log,
		plan: domain.NewPlan(doc),
		net:  newNetState(doc),
		once: make(map[string]bool),
		disk: make(map[string]*cursor),
	}

	for _, ref := range order {
		e, ok := doc.Lookup(ref)
		if !ok {
			return nil, zerr.With(domain.Tag(domain.ErrEntryNotFound, "key", string(ref.Key)), "index", ref.Index)
		}
		h, ok := handlers[e.Key]
		if !ok {
			return nil, em.fail(e, "no emitter for key")
		}
		if err := h(em, actions{em: em, ref: ref, line: e.Line}, e); err != nil {
			return nil, err
		}
	}
	return em.plan, nil
}

// emission is the state of a single Emit call.
type emission struct {
	doc  *domain.Document
	opts domain.Options
	log  ports.Logger
	plan *domain.Plan
	net  *netState
	once map[string]bool
	disk map[string]*cursor
}

// target maps an absolute path on the installed system under the target root.
func (em *emission) target(p string) string {
	return domain.TargetPath(em.opts.TargetRoot, p)
}

// first reports true the first time it is called with name.
func (em *emission) first(name string) bool {
	if em.once[name] {
		return false
	}
	em.once[name] = true
	return true
}

func (em *emission) infof(format string, args ...any) {
	em.log.Info(fmt.Sprintf(format, args...))
}

func (em *emission) fail(e domain.Entry, reason string) error {
	err := zerr.With(domain.Tag(domain.ErrEmission, "key", string(e.Key)), "line", e.Line)
	return zerr.With(err, "reason", reason)
}

func emitNothing(*emission, actions, domain.Entry) error {
	return nil
}

// actions appends to the plan on behalf of one entry.
type actions struct {
	em   *emission
	ref  domain.EntryRef
	line int
}

func (a actions) add(op domain.OperationKind, stdin string, operands ...string) {
	a.em.plan.Append(a.ref, a.line, op, stdin, operands...)
}

func (a actions) exec(argv ...string) {
	a.add(domain.OpExec, "", argv...)
}

// execInput runs argv with input on its standard input.
func (a actions) execInput(input string, argv ...string) {
	a.add(domain.OpExec, input, argv...)
}

func (a actions) shell(script string) {
	a.add(domain.OpShell, "", script)
}

func (a actions) mkdir(dir string) {
	a.add(domain.OpMkdir, "", dir)
}

func (a actions) write(file, data string) {
	a.add(domain.OpWriteFile, data, file)
}

func (a actions) append(file, data string) {
	a.add(domain.OpAppendFile, data, file)
}

func (a actions) symlink(target, link string) {
	a.add(domain.OpSymlink, "", target, link)
}

func (a actions) copy(src, dst string) {
	a.add(domain.OpCopy, "", src, dst)
}

func (a actions) fetch(url, dst string) {
	a.add(domain.OpFetch, "", url, dst)
}

func (a actions) move(src, dst string) {
	a.add(domain.OpMove, "", src, dst)
}

func (a actions) chmod(mode, file string) {
	a.add(domain.OpChmod, "", mode, file)
}

// copyOrFetch copies an absolute path or downloads anything else.
func (a actions) copyOrFetch(src, dst string) {
	if len(src) > 0 && src[0] == '/' {
		a.copy(src, dst)
		return
	}
	a.fetch(src, dst)
}
