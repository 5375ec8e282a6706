package mongostore

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
)

var activityFields = map[string]string{
	"id":             "_id",
	"event_type":     "eventType",
	"aggregate_type": "aggregateType",
	"occurred_at":    "occurredAt",
}

func TestToFilter_Search(t *testing.T) {
	f, err := ToFilter(sharedDomain.Search("blog", "event_type", "aggregate_type"), activityFields)

	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "eventType", Value: bson.M{"$regex": "^.*blog.*$", "$options": "i"}}},
		bson.D{{Key: "aggregateType", Value: bson.M{"$regex": "^.*blog.*$", "$options": "i"}}},
	}}}, f)
}

func TestToFilter_NestedAndOr(t *testing.T) {
	crit := sharedDomain.And(
		sharedDomain.Eq("aggregate_type", "product"),
		sharedDomain.Or(sharedDomain.Eq("event_type", "product.created"), sharedDomain.Eq("event_type", "product.deleted")),
	)

	f, err := ToFilter(crit, activityFields)

	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "$and", Value: bson.A{
		bson.D{{Key: "aggregateType", Value: bson.M{"$eq": "product"}}},
		bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "eventType", Value: bson.M{"$eq": "product.created"}}},
			bson.D{{Key: "eventType", Value: bson.M{"$eq": "product.deleted"}}},
		}}},
	}}}, f)
}

func TestToFilter_EmptyAndIn(t *testing.T) {
	f, err := ToFilter(sharedDomain.And(sharedDomain.Search(""), nil), activityFields)
	require.NoError(t, err)
	assert.Empty(t, f)

	f, err = ToFilter(sharedDomain.In("event_type", "a", "b"), activityFields)
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "eventType", Value: bson.M{"$in": bson.A{"a", "b"}}}}, f)
}

func TestToFilter_UnknownField(t *testing.T) {
	_, err := ToFilter(sharedDomain.Eq("payload.secret", 1), activityFields)
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidField)
}

func TestLikeToRegex(t *testing.T) {
	re := regexp.MustCompile(likeToRegex("%a.b_%"))

	assert.True(t, re.MatchString("xxa.bZyy"))
	assert.False(t, re.MatchString("xxaXbZyy"), "el punto literal no debe actuar como comodín")
}

func TestToFilter_SearchWildcardsAreLiteral(t *testing.T) {
	names := []string{"Gadget 01", "100% cotton", "snake_case"}
	cases := map[string][]string{
		"_":  {"snake_case"},
		"%":  {"100% cotton"},
		`\`:  nil,
		"0%": {"100% cotton"},
	}

	for term, want := range cases {
		f, err := ToFilter(sharedDomain.Search(term, "event_type"), activityFields)
		require.NoError(t, err)
		pattern := f[0].Value.(bson.M)["$regex"].(string)
		re := regexp.MustCompile(pattern)

		var got []string
		for _, n := range names {
			if re.MatchString(n) {
				got = append(got, n)
			}
		}
		assert.Equal(t, want, got, "término %q", term)
	}
}

func TestSortDoc(t *testing.T) {
	doc, err := SortDoc([]sharedQuery.Sort{sharedQuery.Desc("occurred_at")}, activityFields)
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "occurredAt", Value: -1}, {Key: "_id", Value: 1}}, doc)

	_, err = SortDoc([]sharedQuery.Sort{sharedQuery.Asc("nope")}, activityFields)
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidField)
}
