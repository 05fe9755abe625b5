//go:generate mockgen -destination mock_tokenrepo/mock_tokenrepo.go github.com/fieldops/fieldops-push-server/repo/tokenrepo TokenRepo

package tokenrepo

import (
	"context"
	"errors"
	"time"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fieldops/fieldops-push-server/db"
	"github.com/fieldops/fieldops-push-server/domain"
)

const CName = "fieldops.tokenrepo"

const collName = "pushtokens"

func New() TokenRepo {
	return new(tokenRepo)
}

// TokenRepo is the token registry: one registration per user, last write wins.
type TokenRepo interface {
	Register(ctx context.Context, userId, token, deviceInfo string) (err error)
	Unregister(ctx context.Context, userId string) (err error)
	FindTokensForUsers(ctx context.Context, userIds []string) (regs []domain.PushRegistration, err error)
	List(ctx context.Context) (regs []domain.PushRegistration, err error)
	RemoveTokens(ctx context.Context, tokens []string) (err error)
	app.ComponentRunnable
}

type tokenRepo struct {
	coll *mongo.Collection
}

type registrationDoc struct {
	Id          primitive.ObjectID `bson:"_id,omitempty"`
	User        primitive.ObjectID `bson:"user"`
	Token       string             `bson:"token"`
	DeviceInfo  string             `bson:"deviceInfo,omitempty"`
	LastUpdated time.Time          `bson:"lastUpdated"`
}

func (d registrationDoc) domain() domain.PushRegistration {
	return domain.PushRegistration{
		UserId:      d.User.Hex(),
		Token:       d.Token,
		DeviceInfo:  d.DeviceInfo,
		LastUpdated: d.LastUpdated,
	}
}

func (t *tokenRepo) Init(a *app.App) (err error) {
	t.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (t *tokenRepo) Run(ctx context.Context) error {
	_, err := t.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{"user", 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (t *tokenRepo) Name() (name string) {
	return CName
}

func (t *tokenRepo) Register(ctx context.Context, userId, token, deviceInfo string) (err error) {
	if token == "" {
		return domain.ErrEmptyToken
	}
	user, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return domain.ErrInvalidId
	}
	set := bson.D{
		{"token", token},
		{"lastUpdated", time.Now()},
	}
	if deviceInfo != "" {
		set = append(set, bson.E{Key: "deviceInfo", Value: deviceInfo})
	}
	_, err = t.coll.UpdateOne(
		ctx,
		bson.D{{"user", user}},
		bson.D{{"$set", set}},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		// concurrent first registrations of the same user: the loser retries as a plain update
		_, err = t.coll.UpdateOne(ctx, bson.D{{"user", user}}, bson.D{{"$set", set}})
	}
	return
}

func (t *tokenRepo) Unregister(ctx context.Context, userId string) (err error) {
	user, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return domain.ErrInvalidId
	}
	_, err = t.coll.DeleteOne(ctx, bson.D{{"user", user}})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return
}

func (t *tokenRepo) FindTokensForUsers(ctx context.Context, userIds []string) (regs []domain.PushRegistration, err error) {
	users := make([]primitive.ObjectID, 0, len(userIds))
	for _, id := range userIds {
		oid, convErr := primitive.ObjectIDFromHex(id)
		if convErr != nil {
			continue
		}
		users = append(users, oid)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return t.find(ctx, bson.D{{"user", bson.D{{"$in", users}}}})
}

func (t *tokenRepo) List(ctx context.Context) (regs []domain.PushRegistration, err error) {
	return t.find(ctx, bson.D{})
}

func (t *tokenRepo) find(ctx context.Context, filter bson.D) (regs []domain.PushRegistration, err error) {
	cur, err := t.coll.Find(ctx, filter)
	if err != nil {
		return
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	var docs []registrationDoc
	if err = cur.All(ctx, &docs); err != nil {
		return
	}
	regs = make([]domain.PushRegistration, len(docs))
	for i, d := range docs {
		regs[i] = d.domain()
	}
	return
}

func (t *tokenRepo) RemoveTokens(ctx context.Context, tokens []string) (err error) {
	if len(tokens) == 0 {
		return nil
	}
	_, err = t.coll.DeleteMany(ctx, bson.D{{"token", bson.D{{"$in", tokens}}}})
	return
}

func (t *tokenRepo) Close(ctx context.Context) (err error) {
	return nil
}
