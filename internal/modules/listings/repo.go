package listings

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context) ([]Listing, error) {
	var out []Listing
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *Repo) GetByID(ctx context.Context, id string) (Listing, error) {
	var l Listing
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return l, err
}

func (r *Repo) Create(ctx context.Context, l *Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *Repo) ListReviews(ctx context.Context, listingID string) ([]Review, error) {
	var out []Review
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *Repo) CreateReview(ctx context.Context, rv *Review) error {
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return ErrDuplicateReview
		}
		return err
	}
	return nil
}
