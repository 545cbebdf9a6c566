package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var ErrNotFound = errors.New("not found")

var (
	submissionsBucket = []byte("submissions")
	feedCacheBucket   = []byte("feed_cache")
)

type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) the database at dbPath. A non-positive timeout
// uses one second.
func NewStore(dbPath string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = 1 * time.Second
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{submissionsBucket, feedCacheBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveSubmission(sub *Submission) error {
	if sub.ID == "" {
		return fmt.Errorf("submission has no id")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(sub)
		if err != nil {
			return err
		}
		return tx.Bucket(submissionsBucket).Put([]byte(sub.ID), data)
	})
}

func (s *Store) GetSubmission(id string) (*Submission, error) {
	var sub Submission
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(submissionsBucket).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("submission %s: %w", id, ErrNotFound)
		}
		return json.Unmarshal(data, &sub)
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListSubmissions returns submissions newest first. limit <= 0 returns all.
func (s *Store) ListSubmissions(limit int) ([]*Submission, error) {
	var subs []*Submission
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(submissionsBucket).ForEach(func(_ []byte, v []byte) error {
			var sub Submission
			if err := json.Unmarshal(v, &sub); err != nil {
				return nil
			}
			subs = append(subs, &sub)
			return nil
		})
	})
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	if limit > 0 && len(subs) > limit {
		subs = subs[:limit]
	}
	return subs, err
}

func (s *Store) DeleteSubmission(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(submissionsBucket)
		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("submission %s: %w", id, ErrNotFound)
		}
		return b.Delete([]byte(id))
	})
}

func (s *Store) SaveFeedCache(cache *FeedCache) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(cache)
		if err != nil {
			return err
		}
		return tx.Bucket(feedCacheBucket).Put([]byte(cache.URL), data)
	})
}

func (s *Store) GetFeedCache(url string) (*FeedCache, error) {
	var cache FeedCache
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(feedCacheBucket).Get([]byte(url))
		if data == nil {
			return fmt.Errorf("feed cache %s: %w", url, ErrNotFound)
		}
		return json.Unmarshal(data, &cache)
	})
	if err != nil {
		return nil, err
	}
	return &cache, nil
}
