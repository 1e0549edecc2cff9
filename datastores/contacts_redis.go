package datastores

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ContactsRedis implements [ContactsStore] with one hash per contact and a
// sorted set of ids scored by a creation sequence.
type ContactsRedis struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ ContactsStore = (*ContactsRedis)(nil)

type ContactsRedisOption func(*ContactsRedis)

// WithRedisPrefix sets the key prefix, "contacts" by default.
func WithRedisPrefix(prefix string) ContactsRedisOption {
	return func(s *ContactsRedis) {
		if p := strings.Trim(prefix, ":"); p != "" {
			s.prefix = p
		}
	}
}

func NewContactsRedis(rdb redis.UniversalClient, opts ...ContactsRedisOption) *ContactsRedis {
	s := &ContactsRedis{rdb: rdb, prefix: ContactsCollection}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ContactsRedis) idsKey() string { return s.prefix + ":ids" }
func (s *ContactsRedis) seqKey() string { return s.prefix + ":seq" }
func (s *ContactsRedis) contactKey(id ContactID) string { return s.prefix + ":" + string(id) }

func contactFields(c *Contact) map[string]any {
	return map[string]any{
		"firstName":     c.FirstName,
		"lastName":      c.LastName,
		"email":         c.Email,
		"favoriteColor": c.FavoriteColor,
		"birthday":      c.Birthday,
	}
}

func contactFromFields(id ContactID, m map[string]string) *Contact {
	return &Contact{
		ID:            id,
		FirstName:     m["firstName"],
		LastName:      m["lastName"],
		Email:         m["email"],
		FavoriteColor: m["favoriteColor"],
		Birthday:      m["birthday"],
	}
}

func (s *ContactsRedis) List(ctx context.Context) ([]*Contact, error) {
	ids, err := s.rdb.ZRange(ctx, s.idsKey(), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "listing contact ids")
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, s.contactKey(ContactID(id)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "fetching contacts")
	}

	contacts := make([]*Contact, 0, len(ids))
	for i, cmd := range cmds {
		m := cmd.Val()
		if len(m) == 0 { // deleted between ZRANGE and HGETALL
			continue
		}
		contacts = append(contacts, contactFromFields(ContactID(ids[i]), m))
	}
	return contacts, nil
}

func (s *ContactsRedis) Get(ctx context.Context, id ContactID) (*Contact, error) {
	if !id.Valid() {
		return nil, wrapNotFound(id, nil)
	}

	m, err := s.rdb.HGetAll(ctx, s.contactKey(id)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "fetching contact '%s'", id)
	}
	if len(m) == 0 {
		return nil, wrapNotFound(id, nil)
	}
	return contactFromFields(id, m), nil
}

func (s *ContactsRedis) Create(ctx context.Context, c *Contact) (ContactID, error) {
	seq, err := s.rdb.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return "", errors.Wrap(err, "allocating contact sequence")
	}

	id := newContactID()
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.contactKey(id), contactFields(c))
		pipe.ZAdd(ctx, s.idsKey(), redis.Z{Score: float64(seq), Member: string(id)})
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "inserting contact")
	}
	return id, nil
}

func (s *ContactsRedis) Update(ctx context.Context, id ContactID, c *Contact) error {
	if !id.Valid() {
		return wrapNotFound(id, nil)
	}

	key := s.contactKey(id)
	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return wrapNotFound(id, nil)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, contactFields(c))
			return nil
		})
		return err
	}, key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrObjectNotFound):
		return err
	default:
		return errors.Wrapf(err, "replacing contact '%s'", id)
	}
}

func (s *ContactsRedis) Delete(ctx context.Context, id ContactID) error {
	if !id.Valid() {
		return wrapNotFound(id, nil)
	}

	var del *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.contactKey(id))
		pipe.ZRem(ctx, s.idsKey(), string(id))
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "deleting contact '%s'", id)
	}
	if del.Val() == 0 {
		return wrapNotFound(id, nil)
	}
	return nil
}

func (s *ContactsRedis) Ping(ctx context.Context) error {
	return errors.Wrap(s.rdb.Ping(ctx).Err(), "pinging redis")
}
