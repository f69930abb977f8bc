package render

import "github.com/spektr-org/chartkit/engine"

// Changes is the keyed difference between two scenes, the enter / update /
// exit sets a retained-mode painter applies when a chart re-renders.
type Changes struct {
	Enter  []engine.DrawCommand `json:"enter"`
	Update []engine.DrawCommand `json:"update"` // new version of a kept shape
	Exit   []engine.DrawCommand `json:"exit"`
}

type identity struct {
	class, key string
}

// Diff matches commands of prev and next by class and key. Commands
// without a key (clip markers) are never matched. A nil prev means every
// command of next enters.
func Diff(prev, next *engine.Scene) Changes {
	var ch Changes
	old := make(map[identity]bool)
	if prev != nil {
		for _, c := range prev.Commands {
			if c.Key != "" {
				old[identity{c.Class, c.Key}] = true
			}
		}
	}

	kept := make(map[identity]bool)
	if next != nil {
		for _, c := range next.Commands {
			if c.Key == "" {
				continue
			}
			id := identity{c.Class, c.Key}
			if old[id] {
				kept[id] = true
				ch.Update = append(ch.Update, c)
			} else {
				ch.Enter = append(ch.Enter, c)
			}
		}
	}

	if prev != nil {
		for _, c := range prev.Commands {
			if c.Key != "" && !kept[identity{c.Class, c.Key}] {
				ch.Exit = append(ch.Exit, c)
			}
		}
	}
	return ch
}
