package product

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

// ErrAlreadyReviewed is returned when a user reviews a product twice.
var ErrAlreadyReviewed = errors.New("product already reviewed")

// Service exposes catalog reads, admin CRUD and customer reviews.
type Service struct {
	repo   productrepo.Repository
	logger *zap.Logger
}

func New(repo productrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

type Input struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Brand        string   `json:"brand"`
	Category     string   `json:"category"`
	PriceCents   int64    `json:"-"`
	Currency     string   `json:"currency"`
	CountInStock int      `json:"countInStock"`
	Images       []string `json:"images"`
	Featured     bool     `json:"featuredProduct"`
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, productFromInput(in))
	if err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.String("product_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	p := productFromInput(in)
	p.ID = id
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

// AddReview records a review and recomputes the derived mean rating. A user
// may review a given product once.
func (s *Service) AddReview(ctx context.Context, productID string, reviewer domain.User, in ReviewInput) (*domain.Product, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	for _, rev := range p.Reviews {
		if rev.UserID == reviewer.ID {
			return nil, ErrAlreadyReviewed
		}
	}

	review := domain.Review{
		ProductID: productID,
		UserID:    reviewer.ID,
		UserName:  reviewer.Name,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
	}
	reviews := append(p.Reviews, review)
	rating := domain.MeanRating(reviews)

	if err := s.repo.AddReview(ctx, review, rating, len(reviews)); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return s.repo.GetByID(ctx, productID)
}

func validate(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name required")
	}
	if in.PriceCents < 0 {
		return errors.New("price must not be negative")
	}
	if in.CountInStock < 0 {
		return errors.New("countInStock must not be negative")
	}
	return nil
}

func productFromInput(in Input) domain.Product {
	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "usd"
	}
	return domain.Product{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Brand:        in.Brand,
		Category:     in.Category,
		PriceCents:   in.PriceCents,
		Currency:     currency,
		CountInStock: in.CountInStock,
		Images:       in.Images,
		Featured:     in.Featured,
	}
}
