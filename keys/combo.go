package keys

import (
	"fmt"
	"strings"
)

// ParseCombo splits a "+"-separated chord like "ctrl+alt+t" into its
// modifier keys and the trigger key. The last component is the
// trigger; everything before it must resolve to a key name. A lone
// modifier ("win") is a valid chord with no modifiers.
func ParseCombo(combo string) (trigger VKey, mods []VKey, err error) {
	parts := strings.Split(combo, "+")
	if len(parts) == 0 || strings.TrimSpace(combo) == "" {
		return None, nil, fmt.Errorf("%w: empty combo", ErrInvalidKey)
	}
	kk := make([]VKey, 0, len(parts))
	for _, p := range parts {
		k, err := FromName(p)
		if err != nil {
			return None, nil, err
		}
		kk = append(kk, k)
	}
	trigger = kk[len(kk)-1]
	mods = kk[:len(kk)-1]
	for _, m := range mods {
		if !m.IsModifier() {
			return None, nil, fmt.Errorf("%w: %q is not a modifier", ErrInvalidKey, m.Name())
		}
	}
	return trigger, mods, nil
}
