/*
Package redisstore provides a store for generated SAS programs backed
by a redis DB, so that the programs extracted from an ensemble can be
published for other processes to pick up.
*/
package redisstore

import (
	"context"
	"fmt"

	"gopkg.in/redis.v5"
)

/*
Store is an interface to manage a store where the SAS program of every
tree of an ensemble can be kept and retrieved by tree identifier.
*/
type Store interface {
	// Put stores the given program as the one extracted from the tree
	// with the given id, replacing any previous one. It returns an
	// error if the program cannot be stored.
	Put(ctx context.Context, treeID int, program string) error
	// Get returns the program stored for the tree with the given id,
	// or "" if none is stored, or an error if the store cannot be
	// queried.
	Get(ctx context.Context, treeID int) (string, error)
	// Close closes the store, freeing any resources in use.
	Close() error
}

type redisStore struct {
	rc     *redis.Client
	prefix string
}

// New builds a Store backed by a redis DB, keying programs as
// <prefix>:<treeID>.
func New(rc *redis.Client, prefix string) Store {
	return &redisStore{rc, prefix}
}

func (rs *redisStore) Put(ctx context.Context, treeID int, program string) error {
	_, err := rs.rc.Set(rs.keyFor(treeID), program, 0).Result()
	if err != nil {
		return fmt.Errorf("storing program for tree %d in redis: %v", treeID, err)
	}
	return nil
}

func (rs *redisStore) Get(ctx context.Context, treeID int) (string, error) {
	program, err := rs.rc.Get(rs.keyFor(treeID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("retrieving program for tree %d: %v", treeID, err)
	}
	return program, nil
}

func (rs *redisStore) Close() error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(treeID int) string {
	return fmt.Sprintf("%s:%d", rs.prefix, treeID)
}
