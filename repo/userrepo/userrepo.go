//go:generate mockgen -destination mock_userrepo/mock_userrepo.go github.com/fieldops/fieldops-push-server/repo/userrepo UserRepo

package userrepo

import (
	"context"
	"errors"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fieldops/fieldops-push-server/db"
	"github.com/fieldops/fieldops-push-server/domain"
)

const CName = "fieldops.userrepo"

const collName = "users"

func New() UserRepo {
	return new(userRepo)
}

type UserRepo interface {
	GetUser(ctx context.Context, userId string) (user domain.User, err error)
	// GetAudience returns the ids of approved users that have not been denied the permission.
	GetAudience(ctx context.Context, permission domain.Permission) (userIds []string, err error)
	app.Component
}

type userRepo struct {
	coll *mongo.Collection
}

func (r *userRepo) Init(a *app.App) (err error) {
	r.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (r *userRepo) Name() (name string) {
	return CName
}

type userDoc struct {
	Id       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	Approved bool               `bson:"approved"`
}

func (r *userRepo) GetUser(ctx context.Context, userId string) (user domain.User, err error) {
	oid, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return user, domain.ErrInvalidId
	}
	var doc userDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{"username": 1, "approved": 1})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user, domain.ErrNotFound
		}
		return
	}
	return domain.User{
		Id:       doc.Id.Hex(),
		Username: doc.Username,
		Approved: doc.Approved,
	}, nil
}

func (r *userRepo) GetAudience(ctx context.Context, permission domain.Permission) (userIds []string, err error) {
	filter := bson.M{"approved": true}
	filter["permissions."+string(permission)] = bson.M{"$ne": false}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	var docs []userDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	userIds = make([]string, len(docs))
	for i, d := range docs {
		userIds[i] = d.Id.Hex()
	}
	return userIds, nil
}
