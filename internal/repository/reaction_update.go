package repository

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

// Reaction toggles run as single pipeline updates so that the read of the
// current sets and the write of the new ones happen inside one document
// write. Writes by other users to the same document are never overwritten.

// toggleFields returns the $set fields applying one toggle to the reaction
// sets under base ("$" for the document itself, "$$r." for a reply). Legacy
// shapes are rewritten as arrays on the way.
func toggleFields(base string, uid bson.ObjectID, kind models.Reaction) bson.M {
	target, opposite := "likes", "dislikes"
	if kind == models.ReactionDislike {
		target, opposite = opposite, target
	}
	tgt := reactorIDsAt(base + target)
	opp := reactorIDsAt(base + opposite)
	had := bson.M{"$in": bson.A{uid, tgt}}

	return bson.M{
		target: bson.M{"$cond": bson.A{
			had,
			without(tgt, uid),
			bson.M{"$concatArrays": bson.A{tgt, bson.A{uid}}},
		}},
		opposite: bson.M{"$cond": bson.A{had, opp, without(opp, uid)}},
	}
}

func without(set any, uid bson.ObjectID) bson.M {
	return bson.M{"$filter": bson.M{
		"input": set,
		"as":    "u",
		"cond":  bson.M{"$ne": bson.A{"$$u", uid}},
	}}
}

// reactPipeline toggles uid's reaction on the document.
func reactPipeline(uid bson.ObjectID, kind models.Reaction) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: toggleFields("$", uid, kind)}},
	}
}

// reactReplyPipeline toggles uid's reaction on one embedded reply and leaves
// the other replies as stored.
func reactReplyPipeline(replyID, uid bson.ObjectID, kind models.Reaction) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"replies": bson.M{"$map": bson.M{
				"input": arrayOrEmpty("replies"),
				"as":    "r",
				"in": bson.M{"$cond": bson.A{
					bson.M{"$eq": bson.A{"$$r._id", replyID}},
					bson.M{"$mergeObjects": bson.A{"$$r", toggleFields("$$r.", uid, kind)}},
					"$$r",
				}},
			}},
		}}},
	}
}

// replyFilter matches the parent document only when it holds the reply.
func replyFilter(id, replyID bson.ObjectID) bson.M {
	return bson.M{"_id": id, "replies._id": replyID}
}

func pushReplyUpdate(reply models.Reply) bson.M {
	return bson.M{
		"$push": bson.M{"replies": reply},
		"$set":  bson.M{"updated_at": reply.CreatedAt},
	}
}
