package variants

import (
	"context"
	"errors"
	"fmt"

	"github.com/wovenlabs/store-api/models"
)

// ErrValidation wraps rejected reconciliation input.
var ErrValidation = errors.New("invalid variant input")

// SubmittedVariant is one desired variant row as sent by the variants form.
// ID is set when the client believes the row already exists.
type SubmittedVariant struct {
	ID       string `json:"id"`
	SizeID   string `json:"sizeId"`
	ColorID  string `json:"colorId"`
	Quantity int    `json:"quantity"`
}

// Reconciler brings a product's persisted variant set in line with a
// submitted one: matched ids are updated in place, unmatched submissions
// become new variants, and live variants missing from the submission are
// archived. The whole pass runs in one transaction.
type Reconciler struct {
	store models.VariantStore
}

func NewReconciler(store models.VariantStore) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile applies the submitted set to the product's variants and returns
// the refreshed variant list, archived rows included.
func (r *Reconciler) Reconcile(ctx context.Context, productID string, submitted []SubmittedVariant) ([]models.Variant, error) {
	if err := validateSubmission(submitted); err != nil {
		return nil, err
	}

	var result []models.Variant
	err := r.store.InTx(ctx, func(tx models.VariantStore) error {
		if _, err := tx.FindProduct(ctx, productID); err != nil {
			return err
		}

		existing, err := tx.VariantsByProduct(ctx, productID)
		if err != nil {
			return err
		}

		// Archived rows are already tombstoned; only live rows can be
		// matched or archived by this submission.
		live := make(map[string]models.Variant, len(existing))
		for _, v := range existing {
			if !v.IsArchived {
				live[v.ID] = v
			}
		}

		submittedIDs := make(map[string]struct{}, len(submitted))
		for _, s := range submitted {
			if _, ok := live[s.ID]; ok {
				submittedIDs[s.ID] = struct{}{}
				if err := tx.UpdateVariant(ctx, &models.Variant{
					ID:       s.ID,
					SizeID:   s.SizeID,
					ColorID:  s.ColorID,
					Quantity: s.Quantity,
				}); err != nil {
					return err
				}
				continue
			}
			if err := tx.CreateVariant(ctx, &models.Variant{
				ProductID: productID,
				SizeID:    s.SizeID,
				ColorID:   s.ColorID,
				Quantity:  s.Quantity,
			}); err != nil {
				return err
			}
		}

		for id := range live {
			if _, ok := submittedIDs[id]; !ok {
				if err := tx.ArchiveVariant(ctx, id); err != nil {
					return err
				}
			}
		}

		result, err = tx.VariantsByProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func validateSubmission(submitted []SubmittedVariant) error {
	for i, s := range submitted {
		if s.SizeID == "" {
			return fmt.Errorf("%w: variant %d: sizeId is required", ErrValidation, i)
		}
		if s.ColorID == "" {
			return fmt.Errorf("%w: variant %d: colorId is required", ErrValidation, i)
		}
		if s.Quantity < 0 {
			return fmt.Errorf("%w: variant %d: quantity must be zero or greater", ErrValidation, i)
		}
	}
	return nil
}
