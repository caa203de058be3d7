package regs

// Sim is a simulated register bank backed by sparse memory. Hooks let a
// test model hardware that changes status bits on its own.
type Sim struct {
	mem8   map[uintptr]uint8
	mem32  map[uintptr]uint32
	read8  map[uintptr]func(uint8) uint8
	write8 map[uintptr]func(uint8)
	writes map[uintptr]int
}

// NewSim returns an empty simulated bank with every register reading zero.
func NewSim() *Sim {
	return &Sim{
		mem8:   make(map[uintptr]uint8),
		mem32:  make(map[uintptr]uint32),
		read8:  make(map[uintptr]func(uint8) uint8),
		write8: make(map[uintptr]func(uint8)),
		writes: make(map[uintptr]int),
	}
}

// Reg8 implements Bank.
func (s *Sim) Reg8(addr uintptr) Cell[uint8] { return simCell8{s: s, addr: addr} }

// Reg32 implements Bank.
func (s *Sim) Reg32(addr uintptr) Cell[uint32] { return simCell32{s: s, addr: addr} }

// Peek8 returns the stored byte at addr without running hooks.
func (s *Sim) Peek8(addr uintptr) uint8 { return s.mem8[addr] }

// Poke8 stores a byte at addr without running hooks.
func (s *Sim) Poke8(addr uintptr, v uint8) { s.mem8[addr] = v }

// Peek32 returns the stored word at addr.
func (s *Sim) Peek32(addr uintptr) uint32 { return s.mem32[addr] }

// Poke32 stores a word at addr.
func (s *Sim) Poke32(addr uintptr, v uint32) { s.mem32[addr] = v }

// Writes returns how many times addr was written through a cell.
func (s *Sim) Writes(addr uintptr) int { return s.writes[addr] }

// OnRead8 installs a hook that sees the stored value on every read of addr
// and returns the value the reader observes. The returned value is also
// stored.
func (s *Sim) OnRead8(addr uintptr, hook func(stored uint8) uint8) {
	s.read8[addr] = hook
}

// OnWrite8 installs a hook called with every value written to addr.
func (s *Sim) OnWrite8(addr uintptr, hook func(v uint8)) {
	s.write8[addr] = hook
}

type simCell8 struct {
	s    *Sim
	addr uintptr
}

func (c simCell8) Get() uint8 {
	v := c.s.mem8[c.addr]
	if hook := c.s.read8[c.addr]; hook != nil {
		v = hook(v)
		c.s.mem8[c.addr] = v
	}
	return v
}

func (c simCell8) Set(v uint8) {
	c.s.mem8[c.addr] = v
	c.s.writes[c.addr]++
	if hook := c.s.write8[c.addr]; hook != nil {
		hook(v)
	}
}

type simCell32 struct {
	s    *Sim
	addr uintptr
}

func (c simCell32) Get() uint32 { return c.s.mem32[c.addr] }

func (c simCell32) Set(v uint32) {
	c.s.mem32[c.addr] = v
	c.s.writes[c.addr]++
}
