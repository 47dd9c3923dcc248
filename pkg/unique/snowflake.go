package unique

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/huynhanx03/chillibowl/pkg/settings"
	t "github.com/huynhanx03/chillibowl/pkg/timer"
)

const (
	defaultNodeBits  = 10
	defaultStepBits  = 12
	defaultTotalBits = 63

	// 2024-01-01T00:00:00Z in Unix milliseconds.
	defaultEpoch = int64(1704067200000)
)

var (
	ErrWorkerID = errors.New("worker ID exceeds maximum allowed by configuration")
	ErrBits     = errors.New("total bits must be greater than node + step bits")
)

// SnowflakeNode generates time-ordered unique IDs for one worker.
type SnowflakeNode struct {
	mu        sync.Mutex
	timestamp int64
	node      int64
	step      int64

	epoch   int64
	seconds bool

	stepMax   int64
	timeShift uint8
	nodeShift uint8
	limitMask int64

	clock t.Timer
}

// NewSnowflakeNode builds a node from cfg. Zero fields take the classic
// 10 node bits, 12 step bits and 63 total bits.
func NewSnowflakeNode(cfg settings.Snowflake, clock t.Timer) (*SnowflakeNode, error) {
	if cfg.Node == 0 {
		cfg.Node = defaultNodeBits
	}
	if cfg.Step == 0 {
		cfg.Step = defaultStepBits
	}
	if cfg.TotalBits == 0 {
		cfg.TotalBits = defaultTotalBits
	}
	if cfg.Epoch == 0 {
		cfg.Epoch = defaultEpoch
	}

	if cfg.TotalBits <= cfg.Node+cfg.Step {
		return nil, errors.Wrapf(ErrBits, "total %d, node %d, step %d", cfg.TotalBits, cfg.Node, cfg.Step)
	}

	nodeMax := int64(-1 ^ (-1 << cfg.Node))
	if cfg.WorkerID < 0 || cfg.WorkerID > nodeMax {
		return nil, errors.Wrapf(ErrWorkerID, "worker %d, max %d", cfg.WorkerID, nodeMax)
	}

	limitMask := int64(1)<<cfg.TotalBits - 1
	if cfg.TotalBits >= 63 {
		limitMask = int64(^uint64(0) >> 1)
	}

	// Under 50 bits a millisecond clock overflows within decades.
	seconds := cfg.TotalBits < 50
	epoch := cfg.Epoch
	if seconds {
		epoch /= 1000
	}

	return &SnowflakeNode{
		node:      cfg.WorkerID,
		epoch:     epoch,
		seconds:   seconds,
		stepMax:   int64(-1 ^ (-1 << cfg.Step)),
		timeShift: cfg.Node + cfg.Step,
		nodeShift: cfg.Step,
		limitMask: limitMask,
		clock:     clock,
	}, nil
}

func (n *SnowflakeNode) tick() int64 {
	if n.seconds {
		return n.clock.Now().Unix()
	}
	return n.clock.Now().UnixMilli()
}

// Generate returns the next ID. IDs from one node strictly increase even if
// the clock stalls or steps backwards: once a tick's sequence is exhausted
// the node borrows the next tick instead of waiting for it.
func (n *SnowflakeNode) Generate() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.tick()
	if now < n.timestamp {
		now = n.timestamp
	}

	if now == n.timestamp {
		n.step = (n.step + 1) & n.stepMax
		if n.step == 0 {
			now++
		}
	} else {
		n.step = 0
	}

	n.timestamp = now

	id := ((now - n.epoch) << n.timeShift) | (n.node << n.nodeShift) | n.step
	return id & n.limitMask
}
