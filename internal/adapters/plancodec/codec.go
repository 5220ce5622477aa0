// Package plancodec encodes plans as YAML or CBOR.
package plancodec

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.PlanCodec = (*Codec)(nil)

// encMode uses Core Deterministic Encoding so a plan always encodes to the
// same bytes. Operation kinds travel as their names.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("plancodec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("plancodec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Codec implements ports.PlanCodec.
type Codec struct{}

// New creates a new Codec.
func New() *Codec {
	return &Codec{}
}

// Encode writes plan to w. The script format is rendered by the emitter,
// not encoded here.
func (c *Codec) Encode(w io.Writer, plan *domain.Plan, format domain.PlanFormat) error {
	var err error
	switch format {
	case domain.PlanFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(plan); err == nil {
			err = enc.Close()
		}
	case domain.PlanFormatCBOR:
		err = encMode.NewEncoder(w).Encode(plan)
	default:
		return domain.Tag(domain.ErrUnknownPlanFormat, "format", string(format))
	}
	if err != nil {
		return zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrPlanEncodeFailed, err), ""), "format", string(format))
	}
	return nil
}

// Decode reads a plan from r and checks every action ID against its content.
func (c *Codec) Decode(r io.Reader, format domain.PlanFormat) (*domain.Plan, error) {
	var (
		plan domain.Plan
		err  error
	)
	switch format {
	case domain.PlanFormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&plan)
	case domain.PlanFormatCBOR:
		err = decMode.NewDecoder(r).Decode(&plan)
	default:
		return nil, domain.Tag(domain.ErrUnknownPlanFormat, "format", string(format))
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrPlanDecodeFailed, err), ""), "format", string(format))
	}
	if err := plan.Verify(nil); err != nil {
		return nil, err
	}
	return &plan, nil
}
