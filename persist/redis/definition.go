package redis

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/redis/go-redis/v9"

	"github.com/supremind/olp/types"
)

var _ types.DefinitionPersister = (*definitionPersister)(nil)

// definitionPersister stores the permission universe in a Redis set and
// streams changes over a pub/sub channel
type definitionPersister struct {
	client  *redis.Client
	key     string
	channel string
	log     logr.Logger
}

// NewDefinitionPersister creates a DefinitionPersister upon the given client
func NewDefinitionPersister(client *redis.Client, opts ...Option) *definitionPersister {
	cfg := newConfig(opts...)
	return &definitionPersister{
		client:  client,
		key:     cfg.prefix + ":definitions",
		channel: cfg.prefix + ":definitions:changes",
		log:     cfg.log.WithName("definition"),
	}
}

// Insert adds a permission definition to the store
func (p *definitionPersister) Insert(perm types.Permission) error {
	ctx := context.Background()

	added, e := p.client.SAdd(ctx, p.key, perm.String()).Result()
	if e != nil {
		return e
	}
	if added == 0 {
		// already known, nothing to announce
		return nil
	}

	return p.client.Publish(ctx, p.channel, marshalChange(types.PersistInsert, perm.String())).Err()
}

// Remove a permission definition from the store
func (p *definitionPersister) Remove(perm types.Permission) error {
	ctx := context.Background()

	removed, e := p.client.SRem(ctx, p.key, perm.String()).Result()
	if e != nil {
		return e
	}
	if removed == 0 {
		return nil
	}

	return p.client.Publish(ctx, p.channel, marshalChange(types.PersistDelete, perm.String())).Err()
}

// List all definitions from the store
func (p *definitionPersister) List() ([]types.Permission, error) {
	members, e := p.client.SMembers(context.Background(), p.key).Result()
	if e != nil {
		return nil, e
	}

	perms := make([]types.Permission, 0, len(members))
	for _, member := range members {
		perm, e := types.ParsePermission(member)
		if e != nil {
			return nil, e
		}
		perms = append(perms, perm)
	}

	return perms, nil
}

// Watch definition changes published by other instances
func (p *definitionPersister) Watch(ctx context.Context) (<-chan types.DefinitionChange, error) {
	sub := p.client.Subscribe(ctx, p.channel)
	if _, e := sub.Receive(ctx); e != nil {
		return nil, e
	}

	changes := make(chan types.DefinitionChange)

	go func() {
		defer close(changes)
		defer sub.Close()

		for {
			select {
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}

				method, fields, e := unmarshalChange(msg.Payload, 1)
				if e != nil {
					p.log.Error(e, "unmarshal definition change")
					continue
				}
				perm, e := types.ParsePermission(fields[0])
				if e != nil {
					p.log.Error(e, "parse changed definition", "payload", msg.Payload)
					continue
				}

				changes <- types.DefinitionChange{Permission: perm, Method: method}

			case <-ctx.Done():
				return
			}
		}
	}()

	return changes, nil
}
