package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestApplyTogglesSameReaction(t *testing.T) {
	u := bson.NewObjectID()
	var r Reactions

	v := r.Apply(u, ReactionLike)
	assert.Equal(t, ReactionView{Likes: 1, UserLiked: true}, v)

	v = r.Apply(u, ReactionLike)
	assert.Equal(t, ReactionView{}, v)
	assert.Empty(t, r.Likes)
}

func TestApplyMovesAcross(t *testing.T) {
	u := bson.NewObjectID()
	var r Reactions

	r.Apply(u, ReactionLike)
	v := r.Apply(u, ReactionDislike)

	assert.Equal(t, ReactionView{Likes: 0, Dislikes: 1, UserDisliked: true}, v)
	assert.False(t, r.Likes.Has(u))
	assert.True(t, r.Dislikes.Has(u))
}

func TestApplyKeepsOtherUsers(t *testing.T) {
	a, b := bson.NewObjectID(), bson.NewObjectID()
	var r Reactions

	r.Apply(a, ReactionLike)
	r.Apply(b, ReactionLike)
	v := r.Apply(a, ReactionDislike)

	assert.Equal(t, 1, v.Likes)
	assert.Equal(t, 1, v.Dislikes)
	assert.True(t, r.Likes.Has(b))

	// counts always equal set sizes and sets stay disjoint
	for _, id := range r.Likes {
		assert.False(t, r.Dislikes.Has(id))
	}
}

func TestViewAnonymous(t *testing.T) {
	u := bson.NewObjectID()
	r := Reactions{Likes: ReactorSet{u}}
	assert.Equal(t, ReactionView{Likes: 1}, r.View(bson.NilObjectID))
}

func TestParseReaction(t *testing.T) {
	k, err := ParseReaction("dislike")
	require.NoError(t, err)
	assert.Equal(t, ReactionDislike, k)

	_, err = ParseReaction("love")
	assert.Error(t, err)
}

func TestReactorSetDecodesLegacyShape(t *testing.T) {
	a, b := bson.NewObjectID(), bson.NewObjectID()
	raw, err := bson.Marshal(bson.M{
		"title":    "legacy",
		"likes":    bson.M{"count": 7, "users": bson.A{a, b, a}},
		"dislikes": "garbage",
	})
	require.NoError(t, err)

	var p Post
	require.NoError(t, bson.Unmarshal(raw, &p))

	assert.Equal(t, ReactorSet{a, b}, p.Likes)
	assert.Empty(t, p.Dislikes)
	assert.Equal(t, 2, p.View(a).Likes)
}

func TestReactorSetDecodesMissingField(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"title": "bare"})
	require.NoError(t, err)

	var p Post
	require.NoError(t, bson.Unmarshal(raw, &p))
	assert.Equal(t, 0, p.View(bson.NilObjectID).Likes)
}

func TestReactorSetEncodesEmptyAsArray(t *testing.T) {
	raw, err := bson.Marshal(Post{Title: "x"})
	require.NoError(t, err)

	val := bson.Raw(raw).Lookup("likes")
	assert.Equal(t, bson.TypeArray, val.Type)
}
