package kopi

// Player starts and stops the looping clips. Implementations must make
// Play(to) stop from, rewind to to its first sample and loop it.
type Player interface {
	Play(from, to int)
}

// Switcher keeps exactly one quadrant's clip playing.
type Switcher struct {
	player  Player
	active  Quadrant
	started bool
}

// NewSwitcher creates a switcher whose active quadrant is initial.
func NewSwitcher(p Player, initial Quadrant) *Switcher {
	return &Switcher{player: p, active: initial}
}

// Start plays the initial quadrant's clip. Calling it again does nothing.
func (s *Switcher) Start() {
	if s.started {
		return
	}
	s.started = true
	s.player.Play(-1, int(s.active))
}

// Update switches to q's clip if q differs from the active quadrant and
// reports whether a switch happened.
func (s *Switcher) Update(q Quadrant) bool {
	if q == s.active {
		return false
	}
	from := int(s.active)
	if !s.started {
		from = -1
		s.started = true
	}
	s.player.Play(from, int(q))
	s.active = q
	return true
}

// Active returns the quadrant whose clip is playing.
func (s *Switcher) Active() Quadrant {
	return s.active
}
