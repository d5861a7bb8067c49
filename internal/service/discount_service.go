package service

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"gymhub/internal/domain"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

var (
	ErrCodeNotFound     = errors.New("discount code not found")
	ErrCodeInactive     = errors.New("discount code is inactive")
	ErrCodeNotStarted   = errors.New("discount code is not active yet")
	ErrCodeExpired      = errors.New("discount code has expired")
	ErrCodeUsageLimit   = errors.New("discount code usage limit reached")
	ErrCodePerUserLimit = errors.New("discount code already used the maximum times by this user")
)

var hundred = decimal.NewFromInt(100)

// DiscountResult carries the purchase split after a code is applied.
// The funding asymmetry is the central rule: admin-sourced codes reduce
// the platform's commission and leave the owner's share whole;
// club-sourced codes reduce the owner's net and leave the commission
// whole.
type DiscountResult struct {
	Code             *models.DiscountCode
	DiscountAmount   decimal.Decimal
	FinalAmount      decimal.Decimal
	CommissionAmount decimal.Decimal
	NetAmount        decimal.Decimal
}

type DiscountService struct {
	discounts *repository.DiscountRepository
}

func NewDiscountService(discounts *repository.DiscountRepository) *DiscountService {
	return &DiscountService{discounts: discounts}
}

// ValidateAndApply checks a code against its activity window and usage
// caps, then computes the discounted split for the package. Each check
// fails with its own sentinel so callers can surface a precise reason.
func (s *DiscountService) ValidateAndApply(code string, pkg *models.Package, userID uint) (*DiscountResult, error) {
	d, err := s.discounts.GetByCode(code)
	if err != nil {
		return nil, ErrCodeNotFound
	}
	now := time.Now()
	if !d.IsActive {
		return nil, ErrCodeInactive
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return nil, ErrCodeNotStarted
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return nil, ErrCodeExpired
	}
	if d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit {
		return nil, ErrCodeUsageLimit
	}
	if d.PerUserLimit != nil {
		used, err := s.discounts.CountUsageByUser(d.ID, userID)
		if err != nil {
			return nil, err
		}
		if used >= int64(*d.PerUserLimit) {
			return nil, ErrCodePerUserLimit
		}
	}
	res := Apply(d, pkg)
	return res, nil
}

// Apply computes the split for a validated code. Pure; no persistence.
func Apply(d *models.DiscountCode, pkg *models.Package) *DiscountResult {
	total := pkg.Price
	rate := decimal.NewFromFloat(pkg.CommissionRate)
	nominalCommission := total.Mul(rate).Round(2)

	var discount decimal.Decimal
	switch d.DiscountType {
	case domain.DiscountTypePercent:
		pct := d.Value
		if d.SourceType == domain.SourceAdmin {
			// A platform discount can never exceed the platform's own
			// commission percentage.
			if maxPct := rate.Mul(hundred); pct.GreaterThan(maxPct) {
				pct = maxPct
			}
		}
		discount = total.Mul(pct).Div(hundred).Round(2)
	default: // amount
		discount = d.Value
		if d.SourceType == domain.SourceAdmin && discount.GreaterThan(nominalCommission) {
			discount = nominalCommission
		}
	}

	final := total.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	commission := nominalCommission
	var net decimal.Decimal
	if d.SourceType == domain.SourceAdmin {
		commission = nominalCommission.Sub(discount)
		if commission.IsNegative() {
			commission = decimal.Zero
		}
		net = total.Sub(commission)
	} else {
		net = total.Sub(commission).Sub(discount)
		if net.IsNegative() {
			net = decimal.Zero
		}
	}

	return &DiscountResult{
		Code:             d,
		DiscountAmount:   discount,
		FinalAmount:      final,
		CommissionAmount: commission,
		NetAmount:        net,
	}
}
