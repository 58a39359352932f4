package billing

import (
	"strconv"
	"sync"
	"time"
)

// Numberer hands out invoice numbers of the form INV-<unix microseconds>.
// Numbers from one Numberer are strictly increasing, even for calls inside
// the same microsecond or after the clock steps back.
type Numberer struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewNumberer() *Numberer { return &Numberer{now: time.Now} }

func (n *Numberer) Next() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	v := n.now().UnixMicro()
	if v <= n.last {
		v = n.last + 1
	}
	n.last = v
	return "INV-" + strconv.FormatInt(v, 10)
}
