package modelfile

import (
	"encoding/json"

	"golang.org/x/xerrors"

	"github.com/go-noregrets/noregrets/pathalgebra"
	"github.com/go-noregrets/noregrets/typelattice"
)

// wireModel is the on-disk JSON shape : plain, hand-written
// structs rather than reflection over Model/pathalgebra.Component
// directly, following the same "dedicated wire type, own encode/decode
// pair" convention internal/lsp/cache uses for its snapshot state.
type wireModel struct {
	Library string `json:"library"`
	LibraryVersion string `json:"libraryVersion,omitempty"`
	Paths []wirePathEntry `json:"paths"`
	RhoRelations []wireRho `json:"rhoRelations,omitempty"`
}

type wirePathEntry struct {
	Path []wireComponent `json:"path"`
	Type wireType `json:"type"`
	Order int `json:"order"`
}

type wireRho struct {
	Source []wireComponent `json:"source"`
	Sink []wireComponent `json:"sink"`
}

type wireComponent struct {
	CompType string `json:"compType"`
	ModuleName string `json:"moduleName,omitempty"`
	PropName string `json:"propName,omitempty"`
	CallID string `json:"callId,omitempty"`
	ArgID *int `json:"argId,omitempty"`
}

type wireType struct {
	Tag string `json:"tag"`
	Literal *wireLiteral `json:"literal,omitempty"`
}

type wireLiteral struct {
	PrimType string `json:"primType"`
	Value any `json:"value"`
}

// Encode renders m as indented JSON.
func (m *Model) Encode() ([]byte, error) {
	w := wireModel{Library: m.Library, LibraryVersion: m.LibraryVersion}
	for _, p := range m.Paths {
		wp, err := toWirePath(p.Path)
		if err != nil {
			return nil, err
		}
		w.Paths = append(w.Paths, wirePathEntry{Path: wp, Type: toWireType(p.Type), Order: p.Order})
	}
	for _, r := range m.Rho {
		source, err := toWirePath(r.Source)
		if err != nil {
			return nil, err
		}
		sink, err := toWirePath(r.Sink)
		if err != nil {
			return nil, err
		}
		w.RhoRelations = append(w.RhoRelations, wireRho{Source: source, Sink: sink})
	}
	return json.MarshalIndent(w, "", " ")
}

// Decode parses a previously Encode-d model.
func Decode(data []byte) (*Model, error) {
	var w wireModel
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, xerrors.Errorf("modelfile: decoding model: %w", err)
	}
	m := &Model{Library: w.Library, LibraryVersion: w.LibraryVersion}
	for _, wp := range w.Paths {
		p, err := fromWirePath(wp.Path)
		if err != nil {
			return nil, err
		}
		typ, err := fromWireType(wp.Type)
		if err != nil {
			return nil, err
		}
		m.Paths = append(m.Paths, PathEntry{Path: p, Type: typ, Order: wp.Order})
	}
	for _, wr := range w.RhoRelations {
		source, err := fromWirePath(wr.Source)
		if err != nil {
			return nil, err
		}
		sink, err := fromWirePath(wr.Sink)
		if err != nil {
			return nil, err
		}
		m.Rho = append(m.Rho, RhoEntry{Source: source, Sink: sink})
	}
	return m, nil
}

func toWirePath(p pathalgebra.Path) ([]wireComponent, error) {
	out := make([]wireComponent, 0, len(p))
	for _, c := range p {
		wc, err := toWireComponent(c)
		if err != nil {
			return nil, err
		}
		out = append(out, wc)
	}
	return out, nil
}

func fromWirePath(ws []wireComponent) (pathalgebra.Path, error) {
	out := make(pathalgebra.Path, 0, len(ws))
	for _, w := range ws {
		c, err := fromWireComponent(w)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func toWireComponent(c pathalgebra.Component) (wireComponent, error) {
	switch v := c.(type) {
	case pathalgebra.Require:
		return wireComponent{CompType: "require", ModuleName: v.ModuleName}, nil
	case pathalgebra.AccessProp:
		return wireComponent{CompType: "accessProp", PropName: v.PropName}, nil
	case pathalgebra.WriteProp:
		return wireComponent{CompType: "writeProp", PropName: v.PropName}, nil
	case pathalgebra.Arg:
		argID := v.ArgID
		return wireComponent{CompType: "arg", CallID: v.CallID, ArgID: &argID}, nil
	case pathalgebra.Call:
		return wireComponent{CompType: "call", CallID: v.CallID}, nil
	case pathalgebra.New:
		return wireComponent{CompType: "new", CallID: v.CallID}, nil
	default:
		return wireComponent{}, xerrors.Errorf("modelfile: unknown component kind %T", c)
	}
}

func fromWireComponent(w wireComponent) (pathalgebra.Component, error) {
	switch w.CompType {
	case "require":
		return pathalgebra.Require{ModuleName: w.ModuleName}, nil
	case "accessProp":
		return pathalgebra.AccessProp{PropName: w.PropName}, nil
	case "writeProp":
		return pathalgebra.WriteProp{PropName: w.PropName}, nil
	case "arg":
		if w.ArgID == nil {
			return nil, xerrors.Errorf("modelfile: arg component missing argId")
		}
		return pathalgebra.Arg{CallID: w.CallID, ArgID: *w.ArgID}, nil
	case "call":
		return pathalgebra.Call{CallID: w.CallID}, nil
	case "new":
		return pathalgebra.New{CallID: w.CallID}, nil
	default:
		return nil, xerrors.Errorf("modelfile: unknown compType %q", w.CompType)
	}
}

func toWireType(t typelattice.Type) wireType {
	w := wireType{Tag: string(t.Tag)}
	if t.Literal == nil {
		return w
	}
	w.Literal = &wireLiteral{PrimType: string(t.Literal.PrimType)}
	if t.Literal.PrimType == typelattice.Number {
		f := t.Literal.Value.(float64)
		if s, ok := typelattice.EncodeSentinel(f); ok {
			w.Literal.Value = s
		} else {
			w.Literal.Value = f
		}
		return w
	}
	w.Literal.Value = t.Literal.Value
	return w
}

func fromWireType(w wireType) (typelattice.Type, error) {
	t := typelattice.Type{Tag: typelattice.Tag(w.Tag)}
	if w.Literal == nil {
		return t, nil
	}
	lit := typelattice.Literal{PrimType: typelattice.Tag(w.Literal.PrimType)}
	switch lit.PrimType {
	case typelattice.Number:
		switch v := w.Literal.Value.(type) {
		case string:
			f, ok := typelattice.DecodeSentinel(v)
			if !ok {
				return typelattice.Type{}, xerrors.Errorf("modelfile: invalid number sentinel %q", v)
			}
			lit.Value = f
		case float64:
			lit.Value = v
		default:
			return typelattice.Type{}, xerrors.Errorf("modelfile: unexpected number literal value %T", v)
		}
	case typelattice.String:
		s, ok := w.Literal.Value.(string)
		if !ok {
			return typelattice.Type{}, xerrors.Errorf("modelfile: unexpected string literal value %T", w.Literal.Value)
		}
		lit.Value = s
	case typelattice.Boolean:
		b, ok := w.Literal.Value.(bool)
		if !ok {
			return typelattice.Type{}, xerrors.Errorf("modelfile: unexpected boolean literal value %T", w.Literal.Value)
		}
		lit.Value = b
	default:
		return typelattice.Type{}, xerrors.Errorf("modelfile: literal on non-primitive tag %q", lit.PrimType)
	}
	t.Literal = &lit
	return t, nil
}
