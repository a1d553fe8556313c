package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	coupon "github.com/light-bringer/storefront-service/internal/app/coupon/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_cart"
	"github.com/light-bringer/storefront-service/internal/models/m_cart_item"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

// CartRepo implements CartRepository for Spanner.
type CartRepo struct {
	client    *spanner.Client
	cartModel *m_cart.Model
	itemModel *m_cart_item.Model
	clock     clock.Clock
}

// NewCartRepo creates a new CartRepo.
func NewCartRepo(client *spanner.Client, clk clock.Clock) contracts.CartRepository {
	return &CartRepo{
		client:    client,
		cartModel: m_cart.NewModel(),
		itemModel: m_cart_item.NewModel(),
		clock:     clk,
	}
}

// SaveMuts creates mutations for the dirty parts of the cart. A dirty item
// list is rewritten whole: delete every line, then insert the current ones.
// The version column is bumped on every save for optimistic locking.
func (r *CartRepo) SaveMuts(cart *domain.Cart) ([]*spanner.Mutation, error) {
	changes := cart.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	muts := make([]*spanner.Mutation, 0, len(cart.Items())+2)

	couponJSON, err := couponToJSON(cart.Coupon())
	if err != nil {
		return nil, err
	}

	if cart.Version() == 0 {
		muts = append(muts, r.cartModel.InsertMut(&m_cart.Data{
			CartID:    cart.ID(),
			Coupon:    couponJSON,
			Version:   1,
			CreatedAt: cart.CreatedAt(),
		}))
	} else {
		updates := map[string]interface{}{
			m_cart.Version: cart.Version() + 1,
		}
		if changes.Dirty(domain.FieldCoupon) {
			updates[m_cart.Coupon] = couponJSON
		}
		muts = append(muts, r.cartModel.UpdateMut(cart.ID(), updates))
	}

	if changes.Dirty(domain.FieldItems) {
		muts = append(muts, r.itemModel.DeleteAllMut(cart.ID()))
		for i, item := range cart.Items() {
			data, err := itemToData(cart.ID(), int64(i), item)
			if err != nil {
				return nil, err
			}
			muts = append(muts, r.itemModel.InsertMut(data))
		}
	}

	return muts, nil
}

// DeleteMut removes a cart; lines are removed by ON DELETE CASCADE.
func (r *CartRepo) DeleteMut(cartID string) *spanner.Mutation {
	return r.cartModel.DeleteMut(cartID)
}

// GetByID loads the cart row and its lines in one read-only transaction.
func (r *CartRepo) GetByID(ctx context.Context, cartID string) (*domain.Cart, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_cart.TableName, spanner.Key{cartID}, m_cart.AllColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var data m_cart.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse cart: %w", err)
	}

	items := make([]domain.CartItem, 0)
	iter := txn.Read(ctx, m_cart_item.TableName, spanner.Key{cartID}.AsPrefix(), m_cart_item.AllColumns)
	defer iter.Stop()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read cart items: %w", err)
		}
		var itemData m_cart_item.Data
		if err := row.ToStruct(&itemData); err != nil {
			return nil, fmt.Errorf("failed to parse cart item: %w", err)
		}
		item, err := dataToItem(&itemData)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	applied, err := couponFromJSON(data.Coupon)
	if err != nil {
		return nil, err
	}

	return domain.ReconstructCart(data.CartID, items, applied, data.Version, data.CreatedAt, data.UpdatedAt, r.clock), nil
}

// ListStale returns ids of carts untouched since before, oldest first.
func (r *CartRepo) ListStale(ctx context.Context, before time.Time, limit int) ([]string, error) {
	stmt := query.From(m_cart.TableName).
		Select(m_cart.CartID).
		Where(query.Lt(m_cart.UpdatedAt, before)).
		OrderBy(m_cart.UpdatedAt, query.Asc).
		Limit(int64(limit)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	ids := make([]string, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query stale carts: %w", err)
		}
		var id string
		if err := row.Column(0, &id); err != nil {
			return nil, fmt.Errorf("failed to parse cart id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CountStale counts carts untouched since before.
func (r *CartRepo) CountStale(ctx context.Context, before time.Time) (int64, error) {
	stmt := query.From(m_cart.TableName).
		Where(query.Lt(m_cart.UpdatedAt, before)).
		Count().
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count stale carts: %w", err)
	}
	var count int64
	if err := row.Column(0, &count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}

func itemToData(cartID string, lineNo int64, item domain.CartItem) (*m_cart_item.Data, error) {
	data := &m_cart_item.Data{
		CartID:        cartID,
		LineNo:        lineNo,
		ProductID:     item.ProductID,
		SKU:           item.SKU,
		Name:          item.Name,
		Active:        item.Active,
		Quantity:      int64(item.Quantity),
		UnitPrice:     *item.UnitPrice.Rat(),
		Thumbnail:     item.Thumbnail,
		ProductCode:   item.ProductCode,
		CategoryID:    item.CategoryID,
		CategoryName:  item.CategoryName,
		HasVariations: item.HasVariations,
		MaxQuantity:   int64(item.MaxQuantity),
	}
	if item.UpdatedPrice != nil {
		data.DiscountedPrice = spanner.NullNumeric{Numeric: *item.UpdatedPrice.Rat(), Valid: true}
	}
	if item.Variation != nil {
		data.VariationID = spanner.NullString{StringVal: item.Variation.ID, Valid: true}
		data.Variation = spanner.NullJSON{Value: item.Variation, Valid: true}
	}
	return data, nil
}

func dataToItem(data *m_cart_item.Data) (domain.CartItem, error) {
	item := domain.CartItem{
		ProductID:     data.ProductID,
		SKU:           data.SKU,
		Name:          data.Name,
		Active:        data.Active,
		Quantity:      int(data.Quantity),
		UnitPrice:     money.FromRat(&data.UnitPrice),
		Thumbnail:     data.Thumbnail,
		ProductCode:   data.ProductCode,
		CategoryID:    data.CategoryID,
		CategoryName:  data.CategoryName,
		HasVariations: data.HasVariations,
		MaxQuantity:   int(data.MaxQuantity),
	}
	if data.DiscountedPrice.Valid {
		p := money.FromRat(&data.DiscountedPrice.Numeric)
		item.UpdatedPrice = &p
	}
	if data.Variation.Valid {
		var v domain.Variation
		if err := remarshal(data.Variation.Value, &v); err != nil {
			return domain.CartItem{}, fmt.Errorf("failed to parse variation: %w", err)
		}
		item.Variation = &v
	}
	item.Recompute()
	return item, nil
}

func couponToJSON(c *coupon.Coupon) (spanner.NullJSON, error) {
	if c == nil {
		return spanner.NullJSON{}, nil
	}
	return spanner.NullJSON{Value: c, Valid: true}, nil
}

func couponFromJSON(v spanner.NullJSON) (*coupon.Coupon, error) {
	if !v.Valid || v.Value == nil {
		return nil, nil
	}
	var c coupon.Coupon
	if err := remarshal(v.Value, &c); err != nil {
		return nil, fmt.Errorf("failed to parse coupon: %w", err)
	}
	return &c, nil
}

// remarshal decodes a JSON column value, which the client hands back as
// generic maps, into a typed struct.
func remarshal(in interface{}, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
