//go:generate mockgen -destination mock_itemrepo/mock_itemrepo.go github.com/fieldops/fieldops-push-server/repo/itemrepo ItemRepo

package itemrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldops/fieldops-push-server/db"
	"github.com/fieldops/fieldops-push-server/domain"
)

const CName = "fieldops.itemrepo"

const usersCollName = "users"

type collection struct {
	name       string
	labelField string
}

// collections are owned by the CRUD backend; this service only reads them.
var collections = map[domain.Kind]collection{
	domain.KindActivity:  {name: "activities", labelField: "subject"},
	domain.KindTask:      {name: "tasks", labelField: "title"},
	domain.KindNote:      {name: "notes", labelField: "subject"},
	domain.KindComplaint: {name: "complaints", labelField: "title"},
}

func New() ItemRepo {
	return new(itemRepo)
}

// ItemRepo reads shared entities with the creator's username populated.
type ItemRepo interface {
	// FindSharedUpdatedSince returns items of the kind updated strictly after since and shared with at least one user.
	FindSharedUpdatedSince(ctx context.Context, kind domain.Kind, since time.Time) (items []domain.SharedItem, err error)
	GetById(ctx context.Context, kind domain.Kind, id string) (item domain.SharedItem, err error)
	app.ComponentRunnable
}

type itemRepo struct {
	db *mongo.Database
}

func (r *itemRepo) Init(a *app.App) (err error) {
	r.db = a.MustComponent(db.CName).(db.Database).Db()
	return
}

func (r *itemRepo) Name() (name string) {
	return CName
}

func (r *itemRepo) Run(ctx context.Context) error {
	for _, kind := range domain.ScannedKinds {
		if _, err := r.db.Collection(collections[kind].name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{"updatedAt", 1}},
		}); err != nil {
			return err
		}
	}
	return nil
}

type itemDoc struct {
	Id         primitive.ObjectID   `bson:"_id"`
	Label      string               `bson:"label"`
	CreatedBy  primitive.ObjectID   `bson:"createdBy"`
	Creator    string               `bson:"creator"`
	SharedWith []primitive.ObjectID `bson:"sharedWith"`
	UpdatedAt  time.Time            `bson:"updatedAt"`
}

func (d itemDoc) domain(kind domain.Kind) domain.SharedItem {
	item := domain.SharedItem{
		Kind:  kind,
		Id:    d.Id.Hex(),
		Label: d.Label,
		CreatedBy: domain.UserRef{
			Username: d.Creator,
		},
		SharedWith: make([]string, 0, len(d.SharedWith)),
		UpdatedAt:  d.UpdatedAt,
	}
	if !d.CreatedBy.IsZero() {
		item.CreatedBy.Id = d.CreatedBy.Hex()
	}
	for _, u := range d.SharedWith {
		item.SharedWith = append(item.SharedWith, u.Hex())
	}
	return item
}

func (r *itemRepo) FindSharedUpdatedSince(ctx context.Context, kind domain.Kind, since time.Time) (items []domain.SharedItem, err error) {
	return r.find(ctx, kind, bson.D{
		{"updatedAt", bson.D{{"$gt", since}}},
		{"sharedWith.0", bson.D{{"$exists", true}}},
	})
}

func (r *itemRepo) GetById(ctx context.Context, kind domain.Kind, id string) (item domain.SharedItem, err error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return item, domain.ErrInvalidId
	}
	items, err := r.find(ctx, kind, bson.D{{"_id", oid}})
	if err != nil {
		return
	}
	if len(items) == 0 {
		return item, domain.ErrNotFound
	}
	return items[0], nil
}

func (r *itemRepo) find(ctx context.Context, kind domain.Kind, match bson.D) (items []domain.SharedItem, err error) {
	coll, ok := collections[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownKind, kind)
	}
	pipeline := mongo.Pipeline{
		{{"$match", match}},
		{{"$sort", bson.D{{"updatedAt", 1}}}},
		{{"$lookup", bson.D{
			{"from", usersCollName},
			{"localField", "createdBy"},
			{"foreignField", "_id"},
			{"as", "creator"},
		}}},
		{{"$project", bson.D{
			{"label", "$" + coll.labelField},
			{"createdBy", 1},
			{"sharedWith", 1},
			{"updatedAt", 1},
			{"creator", bson.D{{"$arrayElemAt", bson.A{"$creator.username", 0}}}},
		}}},
	}
	cur, err := r.db.Collection(coll.name).Aggregate(ctx, pipeline)
	if err != nil {
		return
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	var docs []itemDoc
	if err = cur.All(ctx, &docs); err != nil {
		return
	}
	items = make([]domain.SharedItem, len(docs))
	for i, d := range docs {
		items[i] = d.domain(kind)
	}
	return
}

func (r *itemRepo) Close(ctx context.Context) error {
	return nil
}
