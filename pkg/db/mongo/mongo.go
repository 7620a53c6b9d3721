// Package mongo holds the helpers shared by the MongoDB repositories.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithTimeout bounds ctx by timeout, keeping an earlier deadline if ctx
// already has one.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

// Equality turns a field to value map into a bson filter. A nil map matches
// every document.
func Equality(fields map[string]any) bson.M {
	m := bson.M{}
	for k, v := range fields {
		m[k] = v
	}
	return m
}

var dupKeyIndexRegex = regexp.MustCompile(`index: (\S+) dup key`)

// DuplicateKeyIndex reports whether err is a duplicate key error and, when
// the server names it, which index was violated.
func DuplicateKeyIndex(err error) (string, bool) {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return "", false
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if m := dupKeyIndexRegex.FindStringSubmatch(e.Message); m != nil {
				return m[1], true
			}
		}
	}

	if m := dupKeyIndexRegex.FindStringSubmatch(err.Error()); m != nil {
		return m[1], true
	}
	return "", true
}

// EnsureIndexes creates the given indexes on coll. Existing indexes with the
// same definition are left alone by the server.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection, indexes []mongo.IndexModel) error {
	if len(indexes) == 0 {
		return nil
	}

	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
	}
	return nil
}
