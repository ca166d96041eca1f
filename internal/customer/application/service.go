package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/akshatjain02/ecommerce-backend/internal/customer/domain"
	"github.com/akshatjain02/ecommerce-backend/pkg/auth"
	"github.com/akshatjain02/ecommerce-backend/pkg/errs"
)

type Service struct {
	log    *slog.Logger
	repo   Repository
	tokens *auth.Tokens
}

func NewService(log *slog.Logger, repo Repository, tokens *auth.Tokens) *Service {
	return &Service{log: log, repo: repo, tokens: tokens}
}

type SignUpInput struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	BillingAddress  string
	ShippingAddress string
}

// SignUp registers a customer and returns a signed token for the new
// identity.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (domain.Customer, string, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		return domain.Customer{}, "", fmt.Errorf("%w: email and password are required", errs.ErrValidation)
	}

	if _, err := s.repo.ByEmail(ctx, in.Email); err == nil {
		return domain.Customer{}, "", fmt.Errorf("%w: email in use", errs.ErrValidation)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return domain.Customer{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Customer{}, "", fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Customer{
		Email:           in.Email,
		PasswordHash:    string(hash),
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		BillingAddress:  in.BillingAddress,
		ShippingAddress: in.ShippingAddress,
	})
	if err != nil {
		return domain.Customer{}, "", err
	}

	token, err := s.tokens.Issue(identity(created))
	if err != nil {
		return domain.Customer{}, "", err
	}
	s.log.Info("customer created", "customer_id", created.ID)
	return created, token, nil
}

// SignIn verifies credentials and returns a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (domain.Customer, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	c, err := s.repo.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return domain.Customer{}, "", fmt.Errorf("%w: invalid credentials", errs.ErrUnauthorized)
		}
		return domain.Customer{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return domain.Customer{}, "", fmt.Errorf("%w: invalid credentials", errs.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(identity(c))
	if err != nil {
		return domain.Customer{}, "", err
	}
	return c, token, nil
}

type UpdateInput struct {
	FirstName       string
	LastName        string
	BillingAddress  string
	ShippingAddress string
}

func (s *Service) Update(ctx context.Context, who auth.Identity, in UpdateInput) error {
	c, err := s.repo.ByEmail(ctx, who.Email)
	if err != nil {
		return err
	}
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.BillingAddress = in.BillingAddress
	c.ShippingAddress = in.ShippingAddress
	return s.repo.Update(ctx, c)
}

func (s *Service) Customers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.All(ctx)
}

func identity(c domain.Customer) auth.Identity {
	return auth.Identity{ID: c.ID, Email: c.Email, IsAdmin: c.IsAdmin}
}
