package catalog

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/supercomputers/shopd/internal/domain"
	"github.com/supercomputers/shopd/pkg/common"
)

type stubSettings struct{ strict bool }

func (s stubSettings) GetBool(category, name string) bool { return s.strict }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func createInput(t *testing.T, body string) CreateInput {
	t.Helper()
	var in CreateInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func updateInput(t *testing.T, body string) UpdateInput {
	t.Helper()
	var in UpdateInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestCreateSeedsPriceHistory(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	p, err := svc.Create(context.Background(), createInput(t,
		`{"title":"Laptop X","category":"computers","price":50000,"offerPercentage":10}`))
	require.NoError(t, err)

	assert.Equal(t, "Laptop X", p.Title)
	assert.Equal(t, 50000.0, p.Price)
	assert.Equal(t, 10.0, p.OfferPercentage)
	assert.Equal(t, 0, p.Stock)
	assert.False(t, p.HideProduct)
	require.Len(t, p.PriceHistory, 1)
	assert.Equal(t, 50000.0, p.PriceHistory[0].Price)
	assert.Equal(t, 10.0, p.PriceHistory[0].OfferPercentage)
}

func TestCreateRoundTrip(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	p, err := svc.Create(context.Background(), createInput(t,
		`{"title":"Phone Y","category":"mobiles","price":"19999","offerPercentage":45}`))
	require.NoError(t, err)

	var stored domain.Product
	require.NoError(t, svc.db.Where("id = ?", p.ID).First(&stored).Error)
	assert.Equal(t, 45.0, stored.OfferPercentage)
	assert.Equal(t, 19999.0, stored.Price)
	require.Len(t, stored.PriceHistory, 1)
	assert.Equal(t, 45.0, stored.PriceHistory[0].OfferPercentage)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newTestDB(t), nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing title", `{"category":"computers","price":100}`, "title"},
		{"missing category", `{"title":"A","price":100}`, "category"},
		{"bad category", `{"title":"A","category":"fridges","price":100}`, "category"},
		{"missing price", `{"title":"A","category":"computers"}`, "price"},
		{"empty price", `{"title":"A","category":"computers","price":""}`, "price"},
		{"non-numeric price", `{"title":"A","category":"computers","price":"abc"}`, "price"},
		{"negative price", `{"title":"A","category":"computers","price":-5}`, "price"},
		{"offer above range", `{"title":"A","category":"computers","price":100,"offerPercentage":95}`, "offerPercentage"},
		{"negative stock", `{"title":"A","category":"computers","price":100,"stock":-1}`, "stock"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Create(ctx, createInput(t, c.body))
			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, c.field, ve.Field)
		})
	}
}

func TestCreateOfferClampPolicy(t *testing.T) {
	svc := NewService(newTestDB(t), stubSettings{strict: false})

	p, err := svc.Create(context.Background(), createInput(t,
		`{"title":"A","category":"other","price":100,"offerPercentage":95}`))
	require.NoError(t, err)
	assert.Equal(t, 90.0, p.OfferPercentage)

	p, err = svc.Create(context.Background(), createInput(t,
		`{"title":"B","category":"other","price":100,"offerPercentage":-5}`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.OfferPercentage)
}

func TestCreateNormalizesImages(t *testing.T) {
	svc := NewService(newTestDB(t), nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, createInput(t,
		`{"title":"A","category":"other","price":100,"images":"/img/a.jpg"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/img/a.jpg"}, p.Images)

	p, err = svc.Create(ctx, createInput(t,
		`{"title":"B","category":"other","price":100,"images":["/img/a.jpg","/img/b.jpg"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/img/a.jpg", "/img/b.jpg"}, p.Images)

	p, err = svc.Create(ctx, createInput(t,
		`{"title":"C","category":"other","price":100}`))
	require.NoError(t, err)
	assert.Empty(t, p.Images)
}

func TestUpdatePriceChangeAppendsHistory(t *testing.T) {
	svc := NewService(newTestDB(t), nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, createInput(t,
		`{"title":"Laptop X","category":"computers","price":50000,"offerPercentage":10}`))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, updateInput(t, `{"price":45000}`))
	require.NoError(t, err)
	assert.Equal(t, 45000.0, updated.Price)
	require.Len(t, updated.PriceHistory, 2)
	last := updated.PriceHistory[1]
	assert.Equal(t, 45000.0, last.Price)
	assert.Equal(t, 10.0, last.OfferPercentage, "unchanged offer carried through")
}

func TestUpdateNoopAppendsNothing(t *testing.T) {
	svc := NewService(newTestDB(t), nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, createInput(t,
		`{"title":"A","category":"computers","price":1000,"offerPercentage":5}`))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, updateInput(t, `{"price":1000,"offerPercentage":5}`))
	require.NoError(t, err)
	assert.Len(t, updated.PriceHistory, 1)
}

func TestUpdateBothFieldsSingleHistoryEntry(t *testing.T) {
	svc := NewService(newTestDB(t), nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, createInput(t,
		`{"title":"A","category":"computers","price":1000,"offerPercentage":5}`))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, updateInput(t, `{"price":900,"offerPercentage":15}`))
	require.NoError(t, err)
	require.Len(t, updated.PriceHistory, 2)
	last := updated.PriceHistory[1]
	assert.Equal(t, 900.0, last.Price)
	assert.Equal(t, 15.0, last.OfferPercentage)
}

func TestUpdateEmptyStringPriceIsOmitted(t *testing.T) {
	svc := NewService(newTestDB(t), nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, createInput(t,
		`{"title":"A","category":"computers","price":1000}`))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, updateInput(t, `{"price":"","stock":7}`))
	require.NoError(t, err)
	assert.Equal(t, 1000.0, updated.Price)
	assert.Equal(t, 7, updated.Stock)
	assert.Len(t, updated.PriceHistory, 1)
}

func TestUpdateEmptyOfferMeansZero(t *testing.T) {
	svc := NewService(newTestDB(t), nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, createInput(t,
		`{"title":"A","category":"computers","price":1000,"offerPercentage":20}`))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, updateInput(t, `{"offerPercentage":""}`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.OfferPercentage)
	require.Len(t, updated.PriceHistory, 2)
	assert.Equal(t, 0.0, updated.PriceHistory[1].OfferPercentage)
}

func TestUpdateOfferExpiryClearAndSet(t *testing.T) {
	svc := NewService(newTestDB(t), nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, createInput(t,
		`{"title":"A","category":"computers","price":1000,"offerExpiry":"2030-06-01T00:00:00Z"}`))
	require.NoError(t, err)
	require.NotNil(t, p.OfferExpiry)

	updated, err := svc.Update(ctx, p.ID, updateInput(t, `{"offerExpiry":""}`))
	require.NoError(t, err)
	assert.Nil(t, updated.OfferExpiry)

	updated, err = svc.Update(ctx, p.ID, updateInput(t, `{"offerExpiry":"2031-01-15"}`))
	require.NoError(t, err)
	require.NotNil(t, updated.OfferExpiry)
	assert.Equal(t, 2031, updated.OfferExpiry.Year())
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	_, err := svc.Update(context.Background(), 424242, updateInput(t, `{"price":1}`))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateCoercionFailure(t *testing.T) {
	svc := NewService(newTestDB(t), nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, createInput(t,
		`{"title":"A","category":"computers","price":1000}`))
	require.NoError(t, err)

	_, err = svc.Update(ctx, p.ID, updateInput(t, `{"price":"not-a-number"}`))
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "price", ve.Field)
}

func TestListPublicHidesAndOrders(t *testing.T) {
	svc := NewService(newTestDB(t), nil)
	ctx := context.Background()

	for _, body := range []string{
		`{"title":"Zen Phone","category":"mobiles","price":100}`,
		`{"title":"Alpha Laptop","category":"computers","price":100}`,
		`{"title":"Beta Laptop","category":"computers","price":100}`,
		`{"title":"Hidden Mouse","category":"accessories","price":100,"hideProduct":true}`,
	} {
		_, err := svc.Create(ctx, createInput(t, body))
		require.NoError(t, err)
	}

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 3)
	assert.Equal(t, "Alpha Laptop", public[0].Title)
	assert.Equal(t, "Beta Laptop", public[1].Title)
	assert.Equal(t, "Zen Phone", public[2].Title)
	for _, p := range public {
		assert.False(t, p.HideProduct)
	}

	all, err := svc.ListAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Hidden Mouse", all[0].Title, "accessories sorts first")
}

func TestClearExpiredOffers(t *testing.T) {
	svc := NewService(newTestDB(t), nil)
	ctx := context.Background()

	expired, err := svc.Create(ctx, createInput(t,
		`{"title":"A","category":"other","price":100,"offerPercentage":30,"offerExpiry":"2020-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	live, err := svc.Create(ctx, createInput(t,
		`{"title":"B","category":"other","price":100,"offerPercentage":30,"offerExpiry":"2999-01-01T00:00:00Z"}`))
	require.NoError(t, err)

	n, err := svc.ClearExpiredOffers(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var got domain.Product
	require.NoError(t, svc.db.Where("id = ?", expired.ID).First(&got).Error)
	assert.Equal(t, 0.0, got.OfferPercentage)
	assert.Nil(t, got.OfferExpiry)
	require.Len(t, got.PriceHistory, 2)
	assert.Equal(t, 0.0, got.PriceHistory[1].OfferPercentage)

	got = domain.Product{}
	require.NoError(t, svc.db.Where("id = ?", live.ID).First(&got).Error)
	assert.Equal(t, 30.0, got.OfferPercentage)
	assert.Len(t, got.PriceHistory, 1)
}
