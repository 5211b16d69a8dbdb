//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// channels records which scene is the source of each output channel. Each
// occupant is a reference owned by the map.
type channels struct {
	mu   sync.RWMutex
	byID map[uint32]*Scene
}

func (c *Context) setChannel(op string, n uint32, sc *Scene) error {
	var prev *Scene
	err := run(c, op, func(tok affinity.Token, e libobs.Engine) error {
		c.channels.mu.Lock()
		defer c.channels.mu.Unlock()
		cur := c.channels.byID[n]
		if cur != nil && cur.Same(sc) {
			return nil
		}
		ref, err := sc.Clone()
		if err != nil {
			return err
		}
		e.SetOutputSource(n, sc.src.Ptr(tok))
		if c.channels.byID == nil {
			c.channels.byID = make(map[uint32]*Scene)
		}
		c.channels.byID[n] = ref
		prev = cur
		return nil
	})
	if prev == nil {
		return err
	}
	c.log.Debug("output channel reassigned",
		zap.Uint32("channel", n),
		zap.String("previous", prev.name),
		zap.String("scene", sc.name))
	return multierr.Append(err, prev.Release())
}

func (c *Context) clearChannel(op string, n uint32, sc *Scene) error {
	var prev *Scene
	err := run(c, op, func(tok affinity.Token, e libobs.Engine) error {
		c.channels.mu.Lock()
		defer c.channels.mu.Unlock()
		cur := c.channels.byID[n]
		if cur == nil {
			return nil
		}
		if !cur.Same(sc) {
			return newError(KindInvalidOperation, op, "channel is assigned to scene "+cur.name)
		}
		e.SetOutputSource(n, nil)
		delete(c.channels.byID, n)
		prev = cur
		return nil
	})
	if prev != nil {
		err = multierr.Append(err, prev.Release())
	}
	return err
}

// ChannelScene returns a new reference to the scene on channel n, or nil if
// the channel is empty.
func (c *Context) ChannelScene(n uint32) (*Scene, error) {
	const op = "channel_scene"
	if n >= libobs.MaxChannels {
		return nil, newError(KindInvalidOperation, op, "channel out of range")
	}
	c.channels.mu.RLock()
	defer c.channels.mu.RUnlock()
	cur := c.channels.byID[n]
	if cur == nil {
		return nil, nil
	}
	return cur.Clone()
}

// clearChannels empties every output channel.
func (c *Context) clearChannels() error {
	var held []*Scene
	err := run(c, "clear_channels", func(tok affinity.Token, e libobs.Engine) error {
		c.channels.mu.Lock()
		defer c.channels.mu.Unlock()
		for n, sc := range c.channels.byID {
			e.SetOutputSource(n, nil)
			held = append(held, sc)
		}
		c.channels.byID = nil
		return nil
	})
	for _, sc := range held {
		err = multierr.Append(err, sc.Release())
	}
	return err
}
