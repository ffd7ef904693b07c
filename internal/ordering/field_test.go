package ordering_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-catalog/internal/database/dbtest"
	"github.com/javajoker/storefront-catalog/internal/ordering"
)

type slot struct {
	ID     uint   `gorm:"primaryKey"`
	Bucket uint   `gorm:"not null"`
	Order  int    `gorm:"column:order;not null"`
	Label  string `gorm:"size:20"`
}

func setup(t *testing.T) (*gorm.DB, *ordering.Field) {
	t.Helper()

	db := dbtest.Open(t)
	require.NoError(t, db.AutoMigrate(&slot{}))

	field, err := ordering.New(&slot{}, "Order", "Bucket")
	require.NoError(t, err)
	return db, field
}

func insert(t *testing.T, db *gorm.DB, field *ordering.Field, s *slot) error {
	t.Helper()

	if err := field.Prepare(db, s); err != nil {
		return err
	}
	return db.Create(s).Error
}

func TestNew_Misconfigured(t *testing.T) {
	tests := []struct {
		name         string
		order, group string
	}{
		{"missing group", "Order", ""},
		{"unknown group", "Order", "Shelf"},
		{"unknown order", "Position", "Bucket"},
		{"non-integer order", "Label", "Bucket"},
		{"group is order", "Order", "Order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ordering.New(&slot{}, tt.order, tt.group)
			assert.ErrorIs(t, err, ordering.ErrMisconfigured)
		})
	}
}

func TestMustNew_PanicsOnMisconfiguration(t *testing.T) {
	assert.Panics(t, func() { ordering.MustNew(&slot{}, "Order", "Shelf") })
	assert.NotPanics(t, func() { ordering.MustNew(&slot{}, "Order", "Bucket") })
}

func TestNew_AcceptsColumnNames(t *testing.T) {
	db, _ := setup(t)
	field, err := ordering.New(&slot{}, "order", "bucket")
	require.NoError(t, err)

	s := &slot{Bucket: 3}
	require.NoError(t, insert(t, db, field, s))
	assert.Equal(t, 1, s.Order)
}

func TestPrepare_AssignsNextPerGroup(t *testing.T) {
	db, field := setup(t)

	a1 := &slot{Bucket: 1}
	a2 := &slot{Bucket: 1}
	b1 := &slot{Bucket: 2}
	a3 := &slot{Bucket: 1}
	for _, s := range []*slot{a1, a2, b1, a3} {
		require.NoError(t, insert(t, db, field, s))
	}

	assert.Equal(t, 1, a1.Order)
	assert.Equal(t, 2, a2.Order)
	assert.Equal(t, 3, a3.Order)
	assert.Equal(t, 1, b1.Order)
}

func TestPrepare_ContinuesAfterExplicitOrder(t *testing.T) {
	db, field := setup(t)

	require.NoError(t, insert(t, db, field, &slot{Bucket: 1, Order: 5}))

	next := &slot{Bucket: 1}
	require.NoError(t, insert(t, db, field, next))
	assert.Equal(t, 6, next.Order)
}

func TestPrepare_RejectsExplicitDuplicate(t *testing.T) {
	db, field := setup(t)

	require.NoError(t, insert(t, db, field, &slot{Bucket: 1, Order: 1}))

	err := insert(t, db, field, &slot{Bucket: 1, Order: 1})
	assert.ErrorIs(t, err, ordering.ErrDuplicateOrder)

	// The same order in another group is fine.
	assert.NoError(t, insert(t, db, field, &slot{Bucket: 2, Order: 1}))
}

func TestValidate_IgnoresTheRecordItself(t *testing.T) {
	db, field := setup(t)

	s := &slot{Bucket: 1}
	require.NoError(t, insert(t, db, field, s))

	s.Label = "renamed"
	assert.NoError(t, field.Validate(db, s))

	other := &slot{Bucket: 1}
	require.NoError(t, insert(t, db, field, other))
	other.Order = s.Order
	assert.ErrorIs(t, field.Validate(db, other), ordering.ErrDuplicateOrder)
}

func TestPrepare_RequiresGroup(t *testing.T) {
	db, field := setup(t)

	err := field.Prepare(db, &slot{})
	assert.ErrorIs(t, err, ordering.ErrMissingGroup)
}

func TestPrepare_RejectsForeignRecords(t *testing.T) {
	db, field := setup(t)

	type other struct{ ID uint }
	assert.Error(t, field.Prepare(db, &other{ID: 1}))
	assert.Error(t, field.Prepare(db, slot{Bucket: 1}))
}

func TestNext_EmptyGroupStartsAtOne(t *testing.T) {
	db, field := setup(t)

	next, err := field.Next(db, uint(7))
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}

func TestOrdersStayDistinct(t *testing.T) {
	db, field := setup(t)

	for i := 0; i < 10; i++ {
		require.NoError(t, insert(t, db, field, &slot{Bucket: uint(i%3 + 1)}))
	}

	var slots []slot
	require.NoError(t, db.Find(&slots).Error)

	seen := map[[2]int]bool{}
	for _, s := range slots {
		key := [2]int{int(s.Bucket), s.Order}
		assert.False(t, seen[key], "duplicate order %d in bucket %d", s.Order, s.Bucket)
		assert.Positive(t, s.Order)
		seen[key] = true
	}
}
