package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promoplace-backend/internal/domain"
)

var badgeTestColumns = []string{
	"id", "name", "description", "category", "priority", "rule", "has_expiration",
	"expiration_days", "active_count", "total_earned", "is_active", "created_on",
}

func TestBadgeRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewBadgeRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rule, err := json.Marshal(domain.BadgeRule{MinTrustScore: 80, RequireVerifiedKYC: true})
		require.NoError(t, err)
		rows := sqlmock.NewRows(badgeTestColumns).
			AddRow(1, "Excellence", "Top tier promoters", "quality", 1, rule, true,
				365, 12, 40, true, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM badges WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		b, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Excellence", b.Name)
		assert.Equal(t, int32(80), b.Rule.MinTrustScore)
		assert.True(t, b.Rule.RequireVerifiedKYC)
		assert.Equal(t, int32(12), b.ActiveCount)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM badges WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(badgeTestColumns))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBadgeRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewBadgeRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		b := &domain.Badge{
			Name:        "Reactive",
			Description: "Responds to leads quickly",
			Category:    "responsiveness",
			Priority:    2,
			Rule:        domain.BadgeRule{MinTrustScore: 60},
			IsActive:    true,
		}

		mock.ExpectQuery("INSERT INTO badges").
			WithArgs(b.Name, b.Description, b.Category, b.Priority, sqlmock.AnyArg(),
				b.HasExpiration, b.ExpirationDays, b.IsActive, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

		err := repo.Create(ctx, b)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), b.ID)
	})
}

func TestBadgeRepository_AdjustCounters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewBadgeRepository(db)
	ctx := context.Background()

	t.Run("FloorsActiveCountAtZero", func(t *testing.T) {
		// The floor lives in SQL: GREATEST(0, active_count + delta).
		mock.ExpectExec(`UPDATE badges SET active_count = GREATEST\(0, active_count \+ \$1\)`).
			WithArgs(int32(-1), int32(0), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AdjustCounters(ctx, 1, -1, 0)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownBadge", func(t *testing.T) {
		mock.ExpectExec(`UPDATE badges SET active_count = GREATEST\(0, active_count \+ \$1\)`).
			WithArgs(int32(1), int32(1), int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.AdjustCounters(ctx, 99, 1, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
