package domain

import (
	"context"
	"errors"
	"fmt"
)

// Gate is the precondition check every premium operation runs first. It has
// no side effects when it rejects.
type Gate interface {
	Require(ctx context.Context, userID int64, feature FeatureID) error
}

type Service interface {
	Gate
	Has(ctx context.Context, userID int64, feature FeatureID) (bool, error)
	Grant(ctx context.Context, userID int64, feature FeatureID) (*GrantResult, error)
	FeaturesOf(ctx context.Context, userID int64) ([]FeatureID, error)
	Shop(ctx context.Context, userID int64) ([]ShopItem, error)
	Catalog() *Catalog
}

type GrantResult struct {
	Feature      Feature
	AlreadyOwned bool
}

type ShopItem struct {
	Feature
	Owned bool
}

var (
	ErrInvalidUser       = errors.New("invalid_user")
	ErrUnknownFeature    = errors.New("unknown_feature")
	ErrEntitlementDenied = errors.New("entitlement_denied")
)

// DeniedError carries what the user needs to buy to proceed.
type DeniedError struct {
	Feature  Feature
	Currency string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEntitlementDenied, e.Feature.ID)
}

func (e *DeniedError) Is(target error) bool {
	return target == ErrEntitlementDenied
}
