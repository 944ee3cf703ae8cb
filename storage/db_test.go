package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func uniqueIndexKeys(t *testing.T, collection string) []bson.D {
	t.Helper()
	models, ok := indexModels()[collection]
	require.True(t, ok, "no indexes declared for %s", collection)
	var keys []bson.D
	for _, model := range models {
		if model.Options != nil && model.Options.Unique != nil && *model.Options.Unique {
			keys = append(keys, model.Keys.(bson.D))
		}
	}
	return keys
}

func TestUniqueEmailIndex(t *testing.T) {
	keys := uniqueIndexKeys(t, "users")
	require.Len(t, keys, 1)
	assert.Equal(t, bson.D{{Key: "email", Value: 1}}, keys[0])
}

// One cart per user: racing first-add upserts must collide on this index
// rather than create a second cart document.
func TestUniqueCartOwnerIndex(t *testing.T) {
	keys := uniqueIndexKeys(t, "carts")
	require.Len(t, keys, 1)
	assert.Equal(t, bson.D{{Key: "user_id", Value: 1}}, keys[0])
}
