package service

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gymhub/internal/domain"
	"gymhub/internal/models"
	"gymhub/internal/repository"
	"gymhub/pkg/payment"
)

// Alphabet for buyer codes: upper-case base32 without easily confused
// characters, since the code is read out in person at the gym desk.
const buyerCodeAlphabet = "ABCDEFGHJKMNPQRSTVWXYZ23456789"
const buyerCodeLength = 10

// PurchaseService drives a purchase through its two lifecycle axes:
// payment (pending/paid/failed/refunded) and verification
// (pending/verified/rejected). Monetary fields are fixed at creation.
type PurchaseService struct {
	db           *gorm.DB
	packages     *repository.PackageRepository
	purchases    *repository.PurchaseRepository
	transactions *repository.TransactionRepository
	wallets      *repository.WalletRepository
	discounts    *DiscountService
	discountRepo *repository.DiscountRepository
	settlement   *SettlementService
	verifier     payment.Verifier
}

func NewPurchaseService(
	db *gorm.DB,
	packages *repository.PackageRepository,
	purchases *repository.PurchaseRepository,
	transactions *repository.TransactionRepository,
	wallets *repository.WalletRepository,
	discounts *DiscountService,
	discountRepo *repository.DiscountRepository,
	settlement *SettlementService,
	verifier payment.Verifier,
) *PurchaseService {
	return &PurchaseService{
		db:           db,
		packages:     packages,
		purchases:    purchases,
		transactions: transactions,
		wallets:      wallets,
		discounts:    discounts,
		discountRepo: discountRepo,
		settlement:   settlement,
		verifier:     verifier,
	}
}

// CreatePending computes the purchase split (applying a discount code
// when given), persists the purchase in payment_status=pending, and
// writes the ledger placeholder transaction for the amount the buyer
// owes. Returns the purchase and the placeholder.
func (s *PurchaseService) CreatePending(userID, packageID uint, discountCode string) (*models.Purchase, *models.Transaction, error) {
	pkg, err := s.packages.GetByID(packageID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: package %d", domain.ErrNotFound, packageID)
	}

	total := pkg.Price
	commission := total.Mul(decimal.NewFromFloat(pkg.CommissionRate)).Round(2)
	net := total.Sub(commission)
	final := total

	var applied *DiscountResult
	if discountCode != "" {
		applied, err = s.discounts.ValidateAndApply(discountCode, pkg, userID)
		if err != nil {
			return nil, nil, err
		}
		commission = applied.CommissionAmount
		net = applied.NetAmount
		final = applied.FinalAmount
	}

	p := &models.Purchase{
		UserID:             userID,
		PackageID:          packageID,
		PaymentStatus:      domain.PaymentPending,
		VerificationStatus: domain.VerificationPending,
		TotalAmount:        total,
		CommissionAmount:   commission,
		NetAmount:          net,
		FinalAmount:        final,
	}
	if applied != nil {
		p.DiscountID = &applied.Code.ID
	}

	var placeholder *models.Transaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.purchases.Create(tx, p); err != nil {
			return err
		}
		if applied != nil {
			if err := s.discountRepo.RecordUsage(tx, applied.Code.ID, userID); err != nil {
				return err
			}
		}
		// The placeholder records what the buyer owes and references no
		// account; it stays pending because no money has moved yet. The
		// ledger entry for the payment itself is the admin wallet credit
		// written on confirmation.
		placeholder = &models.Transaction{
			PurchaseID:  &p.ID,
			Amount:      final,
			Type:        domain.TxnCredit,
			Status:      domain.TxnStatusPending,
			Description: fmt.Sprintf("Pending payment for package %q", pkg.Title),
		}
		return s.transactions.Create(tx, placeholder)
	})
	if err != nil {
		return nil, nil, err
	}
	return p, placeholder, nil
}

// ConfirmPayment finalizes a pending purchase once the gateway confirms
// the transaction: assigns a fresh buyer code, flips the purchase to
// paid, and credits the full amount to the admin wallet. The owner's
// share is only released later, on in-person verification.
func (s *PurchaseService) ConfirmPayment(ctx context.Context, userID, transactionID uint) (*models.Purchase, error) {
	t, err := s.transactions.GetByID(transactionID)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction %d", domain.ErrNotFound, transactionID)
	}
	if t.PurchaseID == nil {
		return nil, fmt.Errorf("%w: transaction has no purchase", domain.ErrValidation)
	}
	p, err := s.purchases.GetByIDForUser(*t.PurchaseID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: purchase %d", domain.ErrNotFound, *t.PurchaseID)
	}
	if p.PaymentStatus != domain.PaymentPending {
		return nil, fmt.Errorf("%w: purchase is %s, not pending", domain.ErrInvalidState, p.PaymentStatus)
	}

	ok, err := s.verifier.VerifyPayment(ctx, fmt.Sprintf("txn-%d", transactionID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: payment verification failed", domain.ErrInvalidState)
	}

	code, err := s.newBuyerCode()
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		claimed, err := s.purchases.ClaimPayment(tx, p.ID, code)
		if err != nil {
			return err
		}
		if !claimed {
			return fmt.Errorf("%w: purchase is no longer pending", domain.ErrInvalidState)
		}
		aw, err := s.wallets.EnsureAdminWallet(tx)
		if err != nil {
			return err
		}
		_, err = s.settlement.Deposit(tx, p.TotalAmount, AdminAccount(aw.ID), &p.ID,
			fmt.Sprintf("Payment received for purchase #%d", p.ID))
		return err
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"purchase_id": p.ID, "user_id": userID}).Info("payment confirmed")
	return s.purchases.GetByID(p.ID)
}

// Verify settles a paid purchase in favor of the gym owner: the owner
// presents the buyer's code, the net share moves from the admin wallet
// to the owner's wallet, and the purchase is marked verified. Only the
// owner of the package's gym may verify, and a code only matches while
// verification is still pending.
func (s *PurchaseService) Verify(ownerID uint, buyerCode string) (*models.Purchase, error) {
	p, err := s.purchases.FindVerifiableByBuyerCode(buyerCode)
	if err != nil {
		return nil, fmt.Errorf("%w: no pending purchase for this code", domain.ErrNotFound)
	}
	if p.Package.Gym.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: not the owner of this gym", domain.ErrPermissionDenied)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		claimed, err := s.purchases.ClaimVerification(tx, p.ID, ownerID, nowFunc())
		if err != nil {
			return err
		}
		if !claimed {
			// A concurrent verify got there first.
			return fmt.Errorf("%w: purchase already processed", domain.ErrNotFound)
		}
		aw, err := s.wallets.EnsureAdminWallet(tx)
		if err != nil {
			return err
		}
		w, err := s.wallets.GetOrCreate(tx, ownerID)
		if err != nil {
			return err
		}
		// The admin wallet should always hold the full payment at this
		// point; the guard protects against double-settlement races.
		_, _, err = s.settlement.Transfer(tx, p.NetAmount, AdminAccount(aw.ID), WalletAccount(w.ID), &p.ID,
			fmt.Sprintf("Owner share released for purchase #%d", p.ID))
		return err
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"purchase_id": p.ID, "owner_id": ownerID}).Info("purchase verified")
	return s.purchases.GetByID(p.ID)
}

// newBuyerCode draws a random code and retries on the unlikely
// collision with an existing purchase. Bytes at or above the largest
// multiple of the alphabet size are rejected to keep the draw uniform.
func (s *PurchaseService) newBuyerCode() (string, error) {
	const limit = byte(256 - 256%len(buyerCodeAlphabet))
	for i := 0; i < 5; i++ {
		code := make([]byte, 0, buyerCodeLength)
		for len(code) < buyerCodeLength {
			buf := make([]byte, buyerCodeLength)
			if _, err := rand.Read(buf); err != nil {
				return "", err
			}
			for _, b := range buf {
				if b >= limit {
					continue
				}
				code = append(code, buyerCodeAlphabet[int(b)%len(buyerCodeAlphabet)])
				if len(code) == buyerCodeLength {
					break
				}
			}
		}
		exists, err := s.purchases.BuyerCodeExists(string(code))
		if err != nil {
			return "", err
		}
		if !exists {
			return string(code), nil
		}
	}
	return "", fmt.Errorf("could not generate a unique buyer code")
}
