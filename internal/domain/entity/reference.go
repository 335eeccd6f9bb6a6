package entity

import "strings"

// Tipos de referencia a cliente o conductor.
const (
	ReferenceKnown  = "known"
	ReferenceManual = "manual"
)

// manualPrefix es el formato heredado con el que se guardaban las referencias escritas a mano.
const manualPrefix = "manual_"

// Reference apunta a un registro existente (Known) o lleva solo un nombre libre (Manual)
// cuando no hay cliente/conductor registrado.
type Reference struct {
	Kind  string
	ID    string
	Label string
}

// KnownRef construye una referencia a un registro existente.
func KnownRef(id string) Reference {
	return Reference{Kind: ReferenceKnown, ID: id}
}

// ManualRef construye una referencia de texto libre.
func ManualRef(label string) Reference {
	return Reference{Kind: ReferenceManual, Label: strings.TrimSpace(label)}
}

// IsManual indica si la referencia es de texto libre.
func (r Reference) IsManual() bool { return r.Kind == ReferenceManual }

// IsZero indica si la referencia está vacía.
func (r Reference) IsZero() bool {
	return r.Kind == "" || (r.Kind == ReferenceKnown && r.ID == "") || (r.Kind == ReferenceManual && r.Label == "")
}

// Encode devuelve la forma persistida: el ID para Known, "manual_<label>" para Manual.
func (r Reference) Encode() string {
	if r.IsManual() {
		return manualPrefix + r.Label
	}
	return r.ID
}

// DisplayName resuelve el nombre a mostrar sin necesidad de join.
// Para referencias Known usa known(id); si no encuentra el registro devuelve "N/A".
func (r Reference) DisplayName(known func(id string) (string, bool)) string {
	if r.IsManual() {
		return r.Label
	}
	if known != nil {
		if name, ok := known(r.ID); ok {
			return name
		}
	}
	return "N/A"
}

// ParseReference interpreta la forma persistida (ver Encode).
func ParseReference(raw string) Reference {
	if strings.HasPrefix(raw, manualPrefix) {
		return ManualRef(strings.TrimPrefix(raw, manualPrefix))
	}
	return KnownRef(raw)
}

// NewReference elige Known si hay id, si no Manual con el nombre.
func NewReference(id, name string) Reference {
	if id = strings.TrimSpace(id); id != "" {
		return ParseReference(id)
	}
	return ManualRef(name)
}
