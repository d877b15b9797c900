/*
Package revalidate invalidates cached public pages after a write.

Revalidating a path drops its cached payload so the next read is rebuilt from the
database, then announces the path on NATS so other instances and the frontend
renderer can drop their own copies.
*/
package revalidate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"carrot/internal/app/cache"
	"carrot/internal/pkg/logx"
	"carrot/internal/pkg/randx"
)

// Subject is the NATS subject revalidation events are published on.
const Subject = "pages.revalidate"

// Publisher is satisfied by *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Event is the payload published for every revalidated path.
type Event struct {
	ID   string    `json:"id"`
	Path string    `json:"path"`
	At   time.Time `json:"at"`
}

type Revalidator struct {
	cache cache.Cache
	pub   Publisher
}

// New returns a Revalidator. pub may be nil when no broker is configured.
func New(c cache.Cache, pub Publisher) *Revalidator {
	return &Revalidator{cache: c, pub: pub}
}

// Revalidate drops the cached payload of path and announces it.
func (r *Revalidator) Revalidate(ctx context.Context, path string) error {
	if err := r.cache.Delete(ctx, cache.PageKey(path)); err != nil {
		return fmt.Errorf("revalidate %s: %w", path, err)
	}

	if r.pub == nil {
		return nil
	}

	data, err := json.Marshal(Event{ID: randx.EventID(), Path: path, At: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("revalidate %s: %w", path, err)
	}

	if err := r.pub.Publish(Subject, data); err != nil {
		return fmt.Errorf("publish revalidation of %s: %w", path, err)
	}

	return nil
}

// Connect opens the NATS connection revalidation events go out on.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("carrot-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logx.Warn("NATS disconnected", "error", err.Error())
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logx.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return nc, nil
}
