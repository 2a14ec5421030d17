// Package i18n holds the multilingual primitives shared by every catalog entity.
package i18n

// Text carries one value per supported language. Embedded in GORM models with an
// embeddedPrefix it maps to the columns <prefix>fr, <prefix>en and <prefix>wo.
type Text struct {
	Fr string `json:"fr"`
	En string `json:"en,omitempty"`
	Wo string `json:"wo,omitempty"`
}

// In returns the value for lang, falling back to French when that translation is empty.
func (t Text) In(lang Language) string {
	var v string
	switch lang {
	case English:
		v = t.En
	case Wolof:
		v = t.Wo
	default:
		v = t.Fr
	}
	if v == "" {
		return t.Fr
	}
	return v
}

// Set stores value under lang. Unknown languages write the French slot.
func (t *Text) Set(lang Language, value string) {
	switch lang {
	case English:
		t.En = value
	case Wolof:
		t.Wo = value
	default:
		t.Fr = value
	}
}

// IsZero reports whether no translation is present.
func (t Text) IsZero() bool {
	return t.Fr == "" && t.En == "" && t.Wo == ""
}
