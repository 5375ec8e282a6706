package mongorepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	activityDomain "github.com/davicafu/hexadmin/internal/activity/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/db/mongostore"
)

const collectionName = "activities"

var Fields = map[string]string{
	"id":                              "_id",
	activityDomain.FieldEventType:     "eventType",
	activityDomain.FieldAggregateType: "aggregateType",
	activityDomain.FieldAggregateID:   "aggregateId",
	activityDomain.FieldOccurredAt:    "occurredAt",
}

// --- Documento BSON ---
// Vive en el adapter para no poner tags bson en el dominio.

type activityDoc struct {
	ID            string    `bson:"_id"`
	EventType     string    `bson:"eventType"`
	AggregateType string    `bson:"aggregateType"`
	AggregateID   string    `bson:"aggregateId"`
	OccurredAt    time.Time `bson:"occurredAt"`
	Payload       string    `bson:"payload,omitempty"`
}

func toDoc(a *activityDomain.Activity) activityDoc {
	return activityDoc{
		ID:            a.ID,
		EventType:     a.EventType,
		AggregateType: a.AggregateType,
		AggregateID:   a.AggregateID,
		OccurredAt:    a.OccurredAt,
		Payload:       string(a.Payload),
	}
}

func toDomain(d activityDoc) *activityDomain.Activity {
	a := &activityDomain.Activity{
		ID:            d.ID,
		EventType:     d.EventType,
		AggregateType: d.AggregateType,
		AggregateID:   d.AggregateID,
		OccurredAt:    d.OccurredAt.UTC(),
	}
	if d.Payload != "" {
		a.Payload = []byte(d.Payload)
	}
	return a
}

// ActivityRepo guarda la actividad como documentos; la lectura paginada es mongostore.Collection.
type ActivityRepo struct {
	*mongostore.Collection[*activityDomain.Activity, activityDoc]
	coll *mongo.Collection
}

var _ activityDomain.ActivityRepository = (*ActivityRepo)(nil)

func NewActivityRepo(ctx context.Context, client *mongo.Client, dbName string) (*ActivityRepo, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	coll := client.Database(dbName).Collection(collectionName)
	return &ActivityRepo{
		Collection: mongostore.NewCollection[*activityDomain.Activity, activityDoc](coll, Fields, activityDomain.DefaultOrder, toDomain),
		coll:       coll,
	}, nil
}

// InitSchema crea los índices de consulta habituales.
func (r *ActivityRepo) InitSchema(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "occurredAt", Value: -1}}},
		{Keys: bson.D{{Key: "aggregateType", Value: 1}, {Key: "occurredAt", Value: -1}}},
		{Keys: bson.D{{Key: "eventType", Value: 1}}, Options: options.Index().SetSparse(true)},
	})
	return err
}

// Record usa el id del evento como _id, así un reenvío choca con la clave duplicada.
func (r *ActivityRepo) Record(ctx context.Context, a *activityDomain.Activity) error {
	if _, err := r.coll.InsertOne(ctx, toDoc(a)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &sharedDomain.DuplicateError{Field: "id"}
		}
		return err
	}
	return nil
}
