package stdout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"taskrt/internal/events"
)

type Config struct {
	Pretty bool      `koanf:"pretty"`
	Output io.Writer `koanf:"-"`
}

type driver struct {
	cfg Config
	mu  sync.Mutex
	enc *json.Encoder
}

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-events: expected Config, got %T", raw)
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}
	d.cfg = c
	d.enc = json.NewEncoder(c.Output)
	if c.Pretty {
		d.enc.SetIndent("", "  ")
	}
	return nil
}

func (d *driver) Publish(e events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enc == nil {
		return fmt.Errorf("stdout-events: not configured")
	}
	return d.enc.Encode(e)
}

func (d *driver) Close() error { return nil }

func init() {
	events.Register("stdout", func() events.Publisher { return &driver{} })
}
