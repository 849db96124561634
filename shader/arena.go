package shader

import "github.com/richinsley/learnopengl/graphics"

// ID names a program held by an Arena. The zero ID is never issued.
type ID int

// Arena owns a set of programs addressed by small integer IDs so they can
// be released together. Released slots are reused.
type Arena struct {
	gl    graphics.GL
	slots []*Program
	free  []ID
}

func NewArena(gl graphics.GL) *Arena {
	return &Arena{gl: gl}
}

// Build builds a program and stores it in the arena.
func (a *Arena) Build(vertexSource, fragmentSource string) (ID, error) {
	p, err := Build(a.gl, vertexSource, fragmentSource)
	if err != nil {
		return 0, err
	}
	return a.Add(p), nil
}

// Add takes ownership of p.
func (a *Arena) Add(p *Program) ID {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[id-1] = p
		return id
	}
	a.slots = append(a.slots, p)
	return ID(len(a.slots))
}

// Get returns the program stored under id.
func (a *Arena) Get(id ID) (*Program, bool) {
	if id <= 0 || int(id) > len(a.slots) {
		return nil, false
	}
	p := a.slots[id-1]
	return p, p != nil
}

// Release deletes the program under id. It reports whether id was live.
func (a *Arena) Release(id ID) bool {
	p, ok := a.Get(id)
	if !ok {
		return false
	}
	p.Delete()
	a.slots[id-1] = nil
	a.free = append(a.free, id)
	return true
}

// ReleaseAll deletes every live program and empties the arena.
func (a *Arena) ReleaseAll() {
	for _, p := range a.slots {
		if p != nil {
			p.Delete()
		}
	}
	a.slots = nil
	a.free = nil
}

// Len returns the number of live programs.
func (a *Arena) Len() int {
	return len(a.slots) - len(a.free)
}
