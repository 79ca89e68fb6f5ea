package cart

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Flags holds the two one-shot "just purchased" markers checkout leaves
// for the dashboard's next load. They live next to the cart in Redis
// because both play the role the browser's local storage played for the
// old storefront.
type Flags struct {
	Client *redis.Client
}

func NewFlags(client *redis.Client) *Flags {
	return &Flags{Client: client}
}

func purchasedKey(authID int64) string {
	return fmt.Sprintf("purchased:%d", authID)
}

func successKey(authID int64) string {
	return fmt.Sprintf("purchase_success:%d", authID)
}

// SetPurchased marks both flags after a successful checkout.
func (f *Flags) SetPurchased(ctx context.Context, authID int64) error {
	if err := f.Client.Set(ctx, purchasedKey(authID), "1", 0).Err(); err != nil {
		return err
	}
	return f.Client.Set(ctx, successKey(authID), "1", 0).Err()
}

// ConsumePurchased reads and clears both flags in one pass. Returns true
// only for the first call after a purchase.
func (f *Flags) ConsumePurchased(ctx context.Context, authID int64) (bool, error) {
	a, err := f.Client.GetDel(ctx, purchasedKey(authID)).Result()
	if err != nil && err != redis.Nil {
		return false, err
	}
	b, err := f.Client.GetDel(ctx, successKey(authID)).Result()
	if err != nil && err != redis.Nil {
		return false, err
	}
	return a == "1" && b == "1", nil
}
