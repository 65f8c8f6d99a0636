// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ozgesarac/ceyizdiz/internal/core"
)

var (
	ErrTokenAlreadyUsed = errors.New("purchase token already used")
	ErrNotEntitled      = errors.New("purchase is not in an entitling state")
)

// EntitlementProvider applies and reverts purchase effects on the user
// record. Satisfied by user.Service.
type EntitlementProvider interface {
	GrantAdFree(ctx context.Context, userID string, until time.Time) error
	RevokeAdFree(ctx context.Context, userID string) error
	GrantExtraCategories(ctx context.Context, userID string) error
	RevokeExtraCategories(ctx context.Context, userID string) error
	AdStatus(
		ctx context.Context,
		userID string,
	) (bool, *time.Time, int, error)
}

type Service struct {
	repo         Repository
	verifier     Verifier
	entitlements EntitlementProvider
	logger       *slog.Logger
}

func NewService(
	repo Repository,
	verifier Verifier,
	entitlements EntitlementProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:         repo,
		verifier:     verifier,
		entitlements: entitlements,
		logger:       logger,
	}
}

// VerifyPurchase validates the token with the billing backend, records
// the purchase, and applies its effect. A token already recorded for
// any user is rejected without reapplying the effect.
func (s *Service) VerifyPurchase(
	ctx context.Context,
	userID string,
	req VerifyPurchaseRequest,
) (*Purchase, error) {
	state, err := s.verifier.Verify(ctx, req.ProductID, req.PurchaseToken)
	if err != nil {
		return nil, fmt.Errorf("verify purchase: %w", err)
	}

	if state != StateActive {
		return nil, ErrNotEntitled
	}

	purchase := &Purchase{
		ID:            uuid.New().String(),
		UserID:        userID,
		PurchaseToken: req.PurchaseToken,
		ProductID:     req.ProductID,
		OrderID:       req.OrderID,
		State:         StateActive,
	}

	if err := s.repo.Create(ctx, purchase); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrTokenAlreadyUsed
		}
		return nil, err
	}

	if err := s.applyEffect(ctx, userID, req.ProductID); err != nil {
		return nil, fmt.Errorf("apply purchase effect: %w", err)
	}

	s.logger.Info("purchase verified",
		"user_id", userID,
		"product_id", req.ProductID,
		"purchase_id", purchase.ID,
	)

	return purchase, nil
}

func (s *Service) Status(
	ctx context.Context,
	userID string,
) (*StatusResponse, error) {
	adFree, until, limit, err := s.entitlements.AdStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get entitlement status: %w", err)
	}

	purchases, err := s.repo.ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &StatusResponse{
		AdFree:        adFree,
		AdFreeUntil:   until,
		CategoryLimit: limit,
		Purchases:     ToPurchaseResponseList(purchases),
	}, nil
}

func (s *Service) applyEffect(
	ctx context.Context,
	userID, productID string,
) error {
	switch productID {
	case ProductRemoveAds:
		until := time.Now().Add(adFreeDuration)
		return s.entitlements.GrantAdFree(ctx, userID, until)
	case ProductExtraCategories:
		return s.entitlements.GrantExtraCategories(ctx, userID)
	default:
		return fmt.Errorf("unknown product %q", productID)
	}
}

func (s *Service) revertEffect(
	ctx context.Context,
	userID, productID string,
) error {
	switch productID {
	case ProductRemoveAds:
		return s.entitlements.RevokeAdFree(ctx, userID)
	case ProductExtraCategories:
		return s.entitlements.RevokeExtraCategories(ctx, userID)
	default:
		return fmt.Errorf("unknown product %q", productID)
	}
}
