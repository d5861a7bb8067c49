package repository

import (
	"time"

	"gorm.io/gorm"

	"gymhub/internal/domain"
	"gymhub/internal/models"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(tx *gorm.DB, p *models.Purchase) error {
	return tx.Create(p).Error
}

func (r *PurchaseRepository) GetByID(id uint) (*models.Purchase, error) {
	var p models.Purchase
	if err := r.db.Preload("Package").Preload("Package.Gym").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepository) GetByIDForUser(id, userID uint) (*models.Purchase, error) {
	var p models.Purchase
	err := r.db.Preload("Package").Preload("Package.Gym").
		Where("id = ? AND user_id = ?", id, userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ClaimPayment flips payment_status pending -> paid and stamps the
// buyer code in one compare-and-set, so concurrent confirmations of the
// same purchase cannot both win.
func (r *PurchaseRepository) ClaimPayment(tx *gorm.DB, id uint, buyerCode string) (bool, error) {
	res := tx.Model(&models.Purchase{}).
		Where("id = ? AND payment_status = ?", id, domain.PaymentPending).
		Updates(map[string]interface{}{
			"payment_status": domain.PaymentPaid,
			"buyer_code":     buyerCode,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindVerifiableByBuyerCode matches a buyer code only while the
// purchase is paid and still awaiting verification. Settled or hijacked
// codes fall through to not-found.
func (r *PurchaseRepository) FindVerifiableByBuyerCode(code string) (*models.Purchase, error) {
	var p models.Purchase
	err := r.db.Preload("Package").Preload("Package.Gym").
		Where("buyer_code = ? AND payment_status = ? AND verification_status = ?",
			code, domain.PaymentPaid, domain.VerificationPending).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ClaimVerification flips verification_status pending -> verified for a
// paid purchase. Returns false when another request already claimed it.
func (r *PurchaseRepository) ClaimVerification(tx *gorm.DB, id, verifierID uint, at time.Time) (bool, error) {
	res := tx.Model(&models.Purchase{}).
		Where("id = ? AND payment_status = ? AND verification_status = ?",
			id, domain.PaymentPaid, domain.VerificationPending).
		Updates(map[string]interface{}{
			"verification_status": domain.VerificationVerified,
			"verified_at":         at,
			"verified_by_id":      verifierID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PurchaseRepository) BuyerCodeExists(code string) (bool, error) {
	var n int64
	err := r.db.Model(&models.Purchase{}).Where("buyer_code = ?", code).Count(&n).Error
	return n > 0, err
}

func (r *PurchaseRepository) ListByUserID(userID uint, limit, offset int) ([]models.Purchase, error) {
	var ps []models.Purchase
	err := r.db.Where("user_id = ?", userID).
		Order("purchase_date DESC").Limit(limit).Offset(offset).Find(&ps).Error
	return ps, err
}

// ListSalesByOwnerID returns purchases of packages belonging to the
// owner's gyms (the verification worklist).
func (r *PurchaseRepository) ListSalesByOwnerID(ownerID uint, limit, offset int) ([]models.Purchase, error) {
	var ps []models.Purchase
	err := r.db.
		Joins("JOIN packages ON packages.id = purchases.package_id").
		Joins("JOIN gyms ON gyms.id = packages.gym_id").
		Where("gyms.owner_id = ?", ownerID).
		Order("purchases.purchase_date DESC").Limit(limit).Offset(offset).
		Find(&ps).Error
	return ps, err
}

// HasVerifiedPurchase reports whether the user holds a verified
// purchase at the gym (drives the review "buyer" badge).
func (r *PurchaseRepository) HasVerifiedPurchase(userID, gymID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.Purchase{}).
		Joins("JOIN packages ON packages.id = purchases.package_id").
		Where("purchases.user_id = ? AND packages.gym_id = ? AND purchases.verification_status = ?",
			userID, gymID, domain.VerificationVerified).
		Count(&n).Error
	return n > 0, err
}
