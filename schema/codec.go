package schema

import (
	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/strictenc"
)

func (o Occurrences) EncodeStrict(w *strictenc.Writer) {
	w.PutU16(o.Min)
	w.PutU16(o.Max)
}

func (o *Occurrences) DecodeStrict(r *strictenc.Reader) error {
	min, err := r.U16()
	if err != nil {
		return err
	}
	max, err := r.U16()
	if err != nil {
		return err
	}
	*o = Occurrences{Min: min, Max: max}
	return nil
}

func (s OwnedStateSchema) EncodeStrict(w *strictenc.Writer) {
	w.PutU8(uint8(s.Kind))
	switch s.Kind {
	case model.StateDeclarative:
	case model.StateFungible:
		w.PutU8(uint8(s.FungibleType))
	case model.StateStructured:
		w.PutFixed32(s.SemId)
	}
}

func (s *OwnedStateSchema) DecodeStrict(r *strictenc.Reader) error {
	kind, err := r.U8()
	if err != nil {
		return err
	}
	out := OwnedStateSchema{Kind: model.StateKind(kind)}
	switch out.Kind {
	case model.StateDeclarative:
	case model.StateFungible:
		ft, err := r.U8()
		if err != nil {
			return err
		}
		out.FungibleType = FungibleType(ft)
	case model.StateStructured:
		sem, err := r.Fixed32()
		if err != nil {
			return err
		}
		out.SemId = sem
	default:
		return errInvalidStateKind(kind)
	}
	*s = out
	return nil
}

func (m MetaDetails) EncodeStrict(w *strictenc.Writer) {
	w.PutFixed32(m.SemId)
	w.PutBlob([]byte(m.Name), strictenc.MAX8)
}

func (m *MetaDetails) DecodeStrict(r *strictenc.Reader) error {
	sem, err := r.Fixed32()
	if err != nil {
		return err
	}
	name, err := r.Blob(strictenc.MAX8)
	if err != nil {
		return err
	}
	*m = MetaDetails{SemId: sem, Name: string(name)}
	return nil
}

func (g GlobalDetails) EncodeStrict(w *strictenc.Writer) {
	w.PutFixed32(g.SemId)
	w.PutU16(g.MaxItems)
}

func (g *GlobalDetails) DecodeStrict(r *strictenc.Reader) error {
	sem, err := r.Fixed32()
	if err != nil {
		return err
	}
	max, err := r.U16()
	if err != nil {
		return err
	}
	*g = GlobalDetails{SemId: sem, MaxItems: max}
	return nil
}

func (a AssignmentDetails) EncodeStrict(w *strictenc.Writer) {
	a.StateSchema.EncodeStrict(w)
	w.PutBlob([]byte(a.Name), strictenc.MAX8)
	w.PutU16(a.DefaultTransition)
}

func (a *AssignmentDetails) DecodeStrict(r *strictenc.Reader) error {
	var stateSchema OwnedStateSchema
	if err := stateSchema.DecodeStrict(r); err != nil {
		return err
	}
	name, err := r.Blob(strictenc.MAX8)
	if err != nil {
		return err
	}
	dt, err := r.U16()
	if err != nil {
		return err
	}
	*a = AssignmentDetails{StateSchema: stateSchema, Name: string(name), DefaultTransition: dt}
	return nil
}

func (l LibSite) EncodeStrict(w *strictenc.Writer) {
	w.PutFixed32(l.LibId)
	w.PutU16(l.Entry)
}

func (l *LibSite) DecodeStrict(r *strictenc.Reader) error {
	id, err := r.Fixed32()
	if err != nil {
		return err
	}
	entry, err := r.U16()
	if err != nil {
		return err
	}
	*l = LibSite{LibId: id, Entry: entry}
	return nil
}

func encodeOccurrenceMap(w *strictenc.Writer, m map[uint16]Occurrences) {
	keys := model.SortU16Keys(m)
	w.PutLen(len(keys), strictenc.MAX16)
	for _, k := range keys {
		w.PutU16(k)
		m[k].EncodeStrict(w)
	}
}

func decodeOccurrenceMap(r *strictenc.Reader) (map[uint16]Occurrences, error) {
	n, err := r.Len(strictenc.MAX16)
	if err != nil {
		return nil, err
	}
	out := make(map[uint16]Occurrences, n)
	for i := 0; i < n; i++ {
		k, err := r.U16()
		if err != nil {
			return nil, err
		}
		var occ Occurrences
		if err := occ.DecodeStrict(r); err != nil {
			return nil, err
		}
		out[k] = occ
	}
	return out, nil
}

func (l *LibSite) putOptional(w *strictenc.Writer) {
	w.PutOptional(l != nil, func() {
		l.EncodeStrict(w)
	})
}

func decodeOptionalLibSite(r *strictenc.Reader) (*LibSite, error) {
	var site *LibSite
	if _, err := r.Optional(func() error {
		var s LibSite
		if err := s.DecodeStrict(r); err != nil {
			return err
		}
		site = &s
		return nil
	}); err != nil {
		return nil, err
	}
	return site, nil
}

func (g GenesisSchema) EncodeStrict(w *strictenc.Writer) {
	encodeOccurrenceMap(w, g.MetaOccurrences)
	encodeOccurrenceMap(w, g.GlobalOccurrences)
	encodeOccurrenceMap(w, g.AssignmentOccurrences)
	g.Validator.putOptional(w)
}

func (g *GenesisSchema) DecodeStrict(r *strictenc.Reader) error {
	meta, err := decodeOccurrenceMap(r)
	if err != nil {
		return err
	}
	global, err := decodeOccurrenceMap(r)
	if err != nil {
		return err
	}
	assign, err := decodeOccurrenceMap(r)
	if err != nil {
		return err
	}
	validator, err := decodeOptionalLibSite(r)
	if err != nil {
		return err
	}
	*g = GenesisSchema{
		MetaOccurrences: meta, GlobalOccurrences: global,
		AssignmentOccurrences: assign, Validator: validator,
	}
	return nil
}

func (t TransitionDetails) EncodeStrict(w *strictenc.Writer) {
	encodeOccurrenceMap(w, t.MetaOccurrences)
	encodeOccurrenceMap(w, t.GlobalOccurrences)
	encodeOccurrenceMap(w, t.InputOccurrences)
	encodeOccurrenceMap(w, t.AssignmentOccurrences)
	w.PutOptional(t.DefaultAssignment != nil, func() {
		w.PutU16(*t.DefaultAssignment)
	})
	t.Validator.putOptional(w)
}

func (t *TransitionDetails) DecodeStrict(r *strictenc.Reader) error {
	meta, err := decodeOccurrenceMap(r)
	if err != nil {
		return err
	}
	global, err := decodeOccurrenceMap(r)
	if err != nil {
		return err
	}
	input, err := decodeOccurrenceMap(r)
	if err != nil {
		return err
	}
	assign, err := decodeOccurrenceMap(r)
	if err != nil {
		return err
	}
	var defaultAssignment *model.AssignmentType
	if _, err := r.Optional(func() error {
		v, err := r.U16()
		if err != nil {
			return err
		}
		defaultAssignment = &v
		return nil
	}); err != nil {
		return err
	}
	validator, err := decodeOptionalLibSite(r)
	if err != nil {
		return err
	}
	*t = TransitionDetails{
		MetaOccurrences: meta, GlobalOccurrences: global, InputOccurrences: input,
		AssignmentOccurrences: assign, DefaultAssignment: defaultAssignment, Validator: validator,
	}
	return nil
}

func (s *Schema) EncodeStrict(w *strictenc.Writer) {
	w.PutU16(s.Ffv)
	w.PutBlob([]byte(s.Name), strictenc.MAX8)

	metaKeys := model.SortU16Keys(s.MetaTypes)
	w.PutLen(len(metaKeys), strictenc.MAX16)
	for _, k := range metaKeys {
		w.PutU16(k)
		s.MetaTypes[k].EncodeStrict(w)
	}

	globalKeys := model.SortU16Keys(s.GlobalTypes)
	w.PutLen(len(globalKeys), strictenc.MAX16)
	for _, k := range globalKeys {
		w.PutU16(k)
		s.GlobalTypes[k].EncodeStrict(w)
	}

	ownedKeys := model.SortU16Keys(s.OwnedTypes)
	w.PutLen(len(ownedKeys), strictenc.MAX16)
	for _, k := range ownedKeys {
		w.PutU16(k)
		s.OwnedTypes[k].EncodeStrict(w)
	}

	s.Genesis.EncodeStrict(w)

	transitionKeys := model.SortU16Keys(s.Transitions)
	w.PutLen(len(transitionKeys), strictenc.MAX16)
	for _, k := range transitionKeys {
		w.PutU16(k)
		s.Transitions[k].EncodeStrict(w)
	}
}

func (s *Schema) DecodeStrict(r *strictenc.Reader) error {
	ffv, err := r.U16()
	if err != nil {
		return err
	}
	name, err := r.Blob(strictenc.MAX8)
	if err != nil {
		return err
	}

	nMeta, err := r.Len(strictenc.MAX16)
	if err != nil {
		return err
	}
	metaTypes := make(map[model.MetaType]MetaDetails, nMeta)
	for i := 0; i < nMeta; i++ {
		k, err := r.U16()
		if err != nil {
			return err
		}
		var d MetaDetails
		if err := d.DecodeStrict(r); err != nil {
			return err
		}
		metaTypes[k] = d
	}

	nGlobal, err := r.Len(strictenc.MAX16)
	if err != nil {
		return err
	}
	globalTypes := make(map[model.GlobalStateType]GlobalDetails, nGlobal)
	for i := 0; i < nGlobal; i++ {
		k, err := r.U16()
		if err != nil {
			return err
		}
		var d GlobalDetails
		if err := d.DecodeStrict(r); err != nil {
			return err
		}
		globalTypes[k] = d
	}

	nOwned, err := r.Len(strictenc.MAX16)
	if err != nil {
		return err
	}
	ownedTypes := make(map[model.AssignmentType]AssignmentDetails, nOwned)
	for i := 0; i < nOwned; i++ {
		k, err := r.U16()
		if err != nil {
			return err
		}
		var d AssignmentDetails
		if err := d.DecodeStrict(r); err != nil {
			return err
		}
		ownedTypes[k] = d
	}

	var genesis GenesisSchema
	if err := genesis.DecodeStrict(r); err != nil {
		return err
	}

	nTransitions, err := r.Len(strictenc.MAX16)
	if err != nil {
		return err
	}
	transitions := make(map[model.TransitionType]TransitionDetails, nTransitions)
	for i := 0; i < nTransitions; i++ {
		k, err := r.U16()
		if err != nil {
			return err
		}
		var d TransitionDetails
		if err := d.DecodeStrict(r); err != nil {
			return err
		}
		transitions[k] = d
	}

	*s = Schema{
		Ffv: ffv, Name: string(name), MetaTypes: metaTypes, GlobalTypes: globalTypes,
		OwnedTypes: ownedTypes, Genesis: genesis, Transitions: transitions,
	}
	return nil
}
