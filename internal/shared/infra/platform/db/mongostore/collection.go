package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
)

// Collection implementa pagination.Handle sobre una colección.
// D es el struct con tags bson; T el tipo de dominio.
type Collection[T any, D any] struct {
	coll         *mongo.Collection
	fields       map[string]string
	defaultOrder []sharedQuery.Sort
	toDomain     func(D) T
}

func NewCollection[T any, D any](coll *mongo.Collection, fields map[string]string, defaultOrder []sharedQuery.Sort, toDomain func(D) T) *Collection[T, D] {
	return &Collection[T, D]{coll: coll, fields: fields, defaultOrder: defaultOrder, toDomain: toDomain}
}

func (c *Collection[T, D]) Count(ctx context.Context, filter sharedDomain.Criteria) (int, error) {
	f, err := ToFilter(filter, c.fields)
	if err != nil {
		return 0, err
	}
	n, err := c.coll.CountDocuments(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.coll.Name(), err)
	}
	return int(n), nil
}

func (c *Collection[T, D]) FindMany(ctx context.Context, args pagination.FindArgs[sharedDomain.Criteria]) ([]T, error) {
	f, err := ToFilter(args.Filter, c.fields)
	if err != nil {
		return nil, err
	}
	if len(args.Include) > 0 {
		return nil, fmt.Errorf("%w: include %v", sharedDomain.ErrInvalidField, args.Include)
	}

	sorts := args.OrderBy
	if len(sorts) == 0 {
		sorts = c.defaultOrder
	}
	sortDoc, err := SortDoc(sorts, c.fields)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(sortDoc)
	if args.Skip > 0 {
		opts.SetSkip(int64(args.Skip))
	}
	if args.Take > 0 {
		opts.SetLimit(int64(args.Take))
	}

	cursor, err := c.coll.Find(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	for cursor.Next(ctx) {
		var doc D
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, c.toDomain(doc))
	}
	return items, cursor.Err()
}

// SortDoc traduce los órdenes; _id desempata para que la paginación sea estable.
func SortDoc(sorts []sharedQuery.Sort, fields map[string]string) (bson.D, error) {
	doc := bson.D{}
	hasID := false
	for _, s := range sorts {
		key, ok := fields[s.Field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", sharedDomain.ErrInvalidField, s.Field)
		}
		dir := 1 // Ascendente por defecto
		if s.Desc {
			dir = -1
		}
		if key == "_id" {
			hasID = true
		}
		doc = append(doc, bson.E{Key: key, Value: dir})
	}
	if !hasID {
		doc = append(doc, bson.E{Key: "_id", Value: 1})
	}
	return doc, nil
}
