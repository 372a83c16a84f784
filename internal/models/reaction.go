package models

import (
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

func ParseReaction(s string) (Reaction, error) {
	switch Reaction(s) {
	case ReactionLike, ReactionDislike:
		return Reaction(s), nil
	}
	return "", fmt.Errorf("unknown reaction %q", s)
}

// ReactorSet is the set of users holding one kind of reaction on an item.
// The displayed count is always len(set).
type ReactorSet []bson.ObjectID

func (s ReactorSet) Has(id bson.ObjectID) bool {
	return slices.Contains(s, id)
}

func (s ReactorSet) Len() int { return len(s) }

func (s *ReactorSet) Add(id bson.ObjectID) bool {
	if s.Has(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

func (s *ReactorSet) Remove(id bson.ObjectID) bool {
	before := len(*s)
	*s = slices.DeleteFunc(*s, func(v bson.ObjectID) bool { return v == id })
	return len(*s) != before
}

// MarshalBSONValue always writes an array, never null.
func (s ReactorSet) MarshalBSONValue() (byte, []byte, error) {
	ids := []bson.ObjectID(s)
	if ids == nil {
		ids = []bson.ObjectID{}
	}
	t, data, err := bson.MarshalValue(ids)
	return byte(t), data, err
}

// UnmarshalBSONValue accepts the current array shape and the legacy
// {count, users} sub-document. Anything else decodes as an empty set.
func (s *ReactorSet) UnmarshalBSONValue(typ byte, data []byte) error {
	rv := bson.RawValue{Type: bson.Type(typ), Value: data}

	var ids []bson.ObjectID
	switch rv.Type {
	case bson.TypeArray:
		if err := rv.Unmarshal(&ids); err != nil {
			ids = nil
		}
	case bson.TypeEmbeddedDocument:
		var legacy struct {
			Users []bson.ObjectID `bson:"users"`
		}
		if err := rv.Unmarshal(&legacy); err == nil {
			ids = legacy.Users
		}
	}

	out := make(ReactorSet, 0, len(ids))
	for _, id := range ids {
		if !id.IsZero() {
			out.Add(id)
		}
	}
	*s = out
	return nil
}

type Reactions struct {
	Likes    ReactorSet `bson:"likes" json:"likes"`
	Dislikes ReactorSet `bson:"dislikes" json:"dislikes"`
}

type ReactionView struct {
	Likes        int  `json:"likes"`
	Dislikes     int  `json:"dislikes"`
	UserLiked    bool `json:"userLiked"`
	UserDisliked bool `json:"userDisliked"`
}

// Apply toggles userID's reaction. Re-applying the same reaction removes it;
// applying the opposite one moves the user across, so a user is never in
// both sets.
func (r *Reactions) Apply(userID bson.ObjectID, kind Reaction) ReactionView {
	target, opposite := &r.Likes, &r.Dislikes
	if kind == ReactionDislike {
		target, opposite = &r.Dislikes, &r.Likes
	}

	if target.Has(userID) {
		target.Remove(userID)
	} else {
		target.Add(userID)
		opposite.Remove(userID)
	}
	return r.View(userID)
}

// View reports counts and, for a non-zero viewer, their current reaction.
func (r Reactions) View(viewer bson.ObjectID) ReactionView {
	v := ReactionView{Likes: r.Likes.Len(), Dislikes: r.Dislikes.Len()}
	if !viewer.IsZero() {
		v.UserLiked = r.Likes.Has(viewer)
		v.UserDisliked = r.Dislikes.Has(viewer)
	}
	return v
}
