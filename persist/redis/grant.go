package redis

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/redis/go-redis/v9"

	"github.com/supremind/olp/types"
)

var _ types.GrantPersister = (*grantPersister)(nil)

// grantPersister stores model-level grants in one Redis set per holder,
// with an index set of known holders, and streams changes over a pub/sub
// channel
type grantPersister struct {
	client  *redis.Client
	index   string
	prefix  string
	channel string
	log     logr.Logger
}

// NewGrantPersister creates a GrantPersister upon the given client
func NewGrantPersister(client *redis.Client, opts ...Option) *grantPersister {
	cfg := newConfig(opts...)
	return &grantPersister{
		client:  client,
		index:   cfg.prefix + ":holders",
		prefix:  cfg.prefix + ":grants:",
		channel: cfg.prefix + ":grants:changes",
		log:     cfg.log.WithName("grant"),
	}
}

// Insert adds a grant policy to the store
func (p *grantPersister) Insert(h types.Holder, perm types.Permission) error {
	ctx := context.Background()

	added, e := p.client.SAdd(ctx, p.prefix+h.String(), perm.String()).Result()
	if e != nil {
		return e
	}
	if added == 0 {
		return nil
	}
	if e := p.client.SAdd(ctx, p.index, h.String()).Err(); e != nil {
		return e
	}

	return p.client.Publish(ctx, p.channel, marshalChange(types.PersistInsert, h.String(), perm.String())).Err()
}

// Remove a grant policy from the store
func (p *grantPersister) Remove(h types.Holder, perm types.Permission) error {
	ctx := context.Background()

	removed, e := p.client.SRem(ctx, p.prefix+h.String(), perm.String()).Result()
	if e != nil {
		return e
	}
	if removed == 0 {
		return nil
	}

	left, e := p.client.SCard(ctx, p.prefix+h.String()).Result()
	if e != nil {
		return e
	}
	if left == 0 {
		if e := p.client.SRem(ctx, p.index, h.String()).Err(); e != nil {
			return e
		}
	}

	return p.client.Publish(ctx, p.channel, marshalChange(types.PersistDelete, h.String(), perm.String())).Err()
}

// List all grant polices from the store
func (p *grantPersister) List() ([]types.GrantPolicy, error) {
	ctx := context.Background()

	holders, e := p.client.SMembers(ctx, p.index).Result()
	if e != nil {
		return nil, e
	}

	polices := make([]types.GrantPolicy, 0, len(holders))
	for _, serialized := range holders {
		h, e := types.ParseHolder(serialized)
		if e != nil {
			return nil, e
		}

		members, e := p.client.SMembers(ctx, p.prefix+serialized).Result()
		if e != nil {
			return nil, e
		}
		for _, member := range members {
			perm, e := types.ParsePermission(member)
			if e != nil {
				return nil, e
			}
			polices = append(polices, types.GrantPolicy{Holder: h, Permission: perm})
		}
	}

	return polices, nil
}

// Watch grant changes published by other instances
func (p *grantPersister) Watch(ctx context.Context) (<-chan types.GrantChange, error) {
	sub := p.client.Subscribe(ctx, p.channel)
	if _, e := sub.Receive(ctx); e != nil {
		return nil, e
	}

	changes := make(chan types.GrantChange)

	go func() {
		defer close(changes)
		defer sub.Close()

		for {
			select {
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}

				method, fields, e := unmarshalChange(msg.Payload, 2)
				if e != nil {
					p.log.Error(e, "unmarshal grant change")
					continue
				}
				h, e := types.ParseHolder(fields[0])
				if e != nil {
					p.log.Error(e, "parse changed holder", "payload", msg.Payload)
					continue
				}
				perm, e := types.ParsePermission(fields[1])
				if e != nil {
					p.log.Error(e, "parse changed grant", "payload", msg.Payload)
					continue
				}

				changes <- types.GrantChange{
					GrantPolicy: types.GrantPolicy{Holder: h, Permission: perm},
					Method:      method,
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	return changes, nil
}
