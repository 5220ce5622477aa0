package domain

import (
	"encoding/hex"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// OperationKind is the kind of system operation an Action performs.
type OperationKind int

// Supported operations. Operand layouts are documented per kind.
const (
	// OpExec runs Operands as argv. Stdin is fed to the process.
	OpExec OperationKind = iota + 1
	// OpShell runs Operands[0] with sh -c.
	OpShell
	// OpMkdir creates Operands[0] and its parents.
	OpMkdir
	// OpWriteFile replaces Operands[0] with Stdin.
	OpWriteFile
	// OpAppendFile appends Stdin to Operands[0].
	OpAppendFile
	// OpSymlink creates the link Operands[1] pointing at Operands[0].
	OpSymlink
	// OpCopy copies Operands[0] to Operands[1].
	OpCopy
	// OpFetch downloads the URL Operands[0] to Operands[1].
	OpFetch
	// OpMove renames Operands[0] to Operands[1].
	OpMove
	// OpChmod applies the octal or symbolic mode Operands[0] to Operands[1].
	OpChmod
)

var opNames = map[OperationKind]string{
	OpExec:       "exec",
	OpShell:      "shell",
	OpMkdir:      "mkdir",
	OpWriteFile:  "write",
	OpAppendFile: "append",
	OpSymlink:    "symlink",
	OpCopy:       "copy",
	OpFetch:      "fetch",
	OpMove:       "move",
	OpChmod:      "chmod",
}

func (k OperationKind) String() string {
	if name, ok := opNames[k]; ok {
		return name
	}
	return "op(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (k OperationKind) MarshalText() ([]byte, error) {
	if _, ok := opNames[k]; !ok {
		return nil, Tag(ErrUnknownOperation, "op", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *OperationKind) UnmarshalText(text []byte) error {
	for kind, name := range opNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return Tag(ErrUnknownOperation, "op", string(text))
}

// Action is one system operation in a plan.
type Action struct {
	ID       string        `yaml:"id" cbor:"1,keyasint"`
	Source   EntryRef      `yaml:"source" cbor:"2,keyasint"`
	Line     int           `yaml:"line" cbor:"3,keyasint"`
	Key      Key           `yaml:"key" cbor:"4,keyasint"`
	Op       OperationKind `yaml:"op" cbor:"5,keyasint"`
	Operands []string      `yaml:"operands,flow" cbor:"6,keyasint"`
	Stdin    string        `yaml:"stdin,omitempty" cbor:"7,keyasint,omitempty"`
}

// ActionID derives the identity of an action from its content.
// Simulation and execution of the same document yield the same IDs.
func ActionID(line int, key Key, op OperationKind, operands []string) string {
	h := xxhash.New()
	_, _ = h.WriteString(strconv.Itoa(line))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(string(key))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(op.String())
	for _, o := range operands {
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(o)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Plan is the ordered list of actions derived from a document.
type Plan struct {
	// Fingerprint identifies the document the plan was emitted from.
	Fingerprint string   `yaml:"fingerprint" cbor:"1,keyasint"`
	Actions     []Action `yaml:"actions" cbor:"2,keyasint"`
}

// NewPlan creates an empty plan for a document.
func NewPlan(doc *Document) *Plan {
	return &Plan{Fingerprint: FingerprintHex(doc.Fingerprint())}
}

// Append adds an action produced by the entry at ref and fills in its ID.
func (p *Plan) Append(ref EntryRef, line int, op OperationKind, stdin string, operands ...string) {
	a := Action{
		Source:   ref,
		Line:     line,
		Key:      ref.Key,
		Op:       op,
		Operands: operands,
		Stdin:    stdin,
	}
	a.ID = ActionID(line, ref.Key, op, operands)
	p.Actions = append(p.Actions, a)
}

// Len returns the number of actions.
func (p *Plan) Len() int {
	return len(p.Actions)
}

// Verify checks that every action carries the ID its content implies.
// With a non-nil doc it also checks that every source resolves in it.
func (p *Plan) Verify(doc *Document) error {
	for i, a := range p.Actions {
		if doc != nil && !resolves(doc, a.Source) {
			err := Tag(ErrEntryNotFound, "key", string(a.Source.Key))
			return zerr.With(zerr.With(err, "index", a.Source.Index), "action", i)
		}
		if want := ActionID(a.Line, a.Key, a.Op, a.Operands); a.ID != want {
			return zerr.With(Tag(ErrPlanDecodeFailed, "action", i), "id", a.ID)
		}
	}
	return nil
}

func resolves(doc *Document, ref EntryRef) bool {
	_, ok := doc.Lookup(ref)
	return ok
}

// FingerprintHex formats a document fingerprint the way plans record it.
func FingerprintHex(sum uint64) string {
	return strconv.FormatUint(sum, 16)
}
