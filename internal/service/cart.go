package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/events"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

type CartLine struct {
	ItemID    uint                `json:"item_id"`
	ProductID uint                `json:"product_id"`
	Name      string              `json:"name"`
	ImageURL  string              `json:"image_url"`
	Quantity  int                 `json:"quantity"`
	Price     decimal.NullDecimal `json:"price"`
	LineTotal decimal.Decimal     `json:"line_total"`
	Available bool                `json:"available"`
}

// Totals is the sum over cart lines. Lines without a price add nothing and
// are listed by product id in MissingPrices.
type Totals struct {
	Total         decimal.Decimal `json:"total"`
	MissingPrices []uint          `json:"missing_prices"`
}

type CartView struct {
	CartID uint       `json:"cart_id"`
	Lines  []CartLine `json:"lines"`
	Totals
}

func Total(lines []models.CartItem, prices map[uint]decimal.NullDecimal) Totals {
	t := Totals{Total: decimal.Zero, MissingPrices: []uint{}}
	for _, line := range lines {
		price, ok := prices[line.ProductID]
		if !ok || !price.Valid {
			t.MissingPrices = append(t.MissingPrices, line.ProductID)
			continue
		}
		t.Total = t.Total.Add(price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return t
}

func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, productID uint, qty int) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add", "user_id", userID, "product_id", productID)

	if productID == 0 {
		return nil, fmt.Errorf("product id is required: %w", ErrValidation)
	}
	if qty < 0 {
		return nil, fmt.Errorf("quantity cannot be negative: %w", ErrValidation)
	}
	if qty == 0 {
		qty = 1
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return nil, storeErr("get product", err)
	}
	cart, err := s.Repo.EnsureCart(ctx, userID)
	if err != nil {
		return nil, storeErr("ensure cart", err)
	}

	item, raced, err := s.Repo.AddToCart(ctx, cart.ID, productID, qty)
	if err != nil {
		l.Error("add_to_cart_failed", "error", err)
		return nil, storeErr("add to cart", err)
	}
	if raced {
		l.Warn("add_to_cart_raced", "reason", "concurrent insert applied as increment", "cart_id", cart.ID)
	}

	publish(ctx, s.Events, events.TopicCart, userID.String(), map[string]any{
		"type":      "cart_item_added",
		"userID":    userID.String(),
		"productID": productID,
		"quantity":  qty,
	})
	return item, nil
}

// SetQuantity clamps qty to at least one. Removing a line is RemoveItem.
func (s *CartService) SetQuantity(ctx context.Context, userID uuid.UUID, itemID uint, qty int) (*models.CartItem, error) {
	if qty < 1 {
		qty = 1
	}
	cart, err := s.Repo.EnsureCart(ctx, userID)
	if err != nil {
		return nil, storeErr("ensure cart", err)
	}
	item, err := s.Repo.SetCartItemQuantity(ctx, cart.ID, itemID, qty)
	if err != nil {
		return nil, storeErr("set quantity", err)
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, itemID uint) error {
	cart, err := s.Repo.EnsureCart(ctx, userID)
	if err != nil {
		return storeErr("ensure cart", err)
	}
	if err := s.Repo.DeleteCartItem(ctx, cart.ID, itemID); err != nil {
		return storeErr("remove cart item", err)
	}

	publish(ctx, s.Events, events.TopicCart, userID.String(), map[string]any{
		"type":   "cart_item_removed",
		"userID": userID.String(),
		"itemID": itemID,
	})
	return nil
}

func (s *CartService) View(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	cart, err := s.Repo.EnsureCart(ctx, userID)
	if err != nil {
		return nil, storeErr("ensure cart", err)
	}
	items, err := s.Repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, storeErr("cart items", err)
	}

	ids := make([]uint, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	products, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr("cart products", err)
	}

	prices := make(map[uint]decimal.NullDecimal, len(products))
	view := &CartView{CartID: cart.ID, Lines: make([]CartLine, 0, len(items))}
	for _, it := range items {
		line := CartLine{ItemID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity, LineTotal: decimal.Zero}
		if p, ok := products[it.ProductID]; ok {
			line.Name = p.Name
			line.ImageURL = p.ImageURL
			line.Price = p.EffectivePrice()
			line.Available = true
			prices[it.ProductID] = line.Price
			if line.Price.Valid {
				line.LineTotal = line.Price.Decimal.Mul(decimal.NewFromInt(int64(it.Quantity)))
			}
		}
		view.Lines = append(view.Lines, line)
	}
	view.Totals = Total(items, prices)
	return view, nil
}

// Checkout turns the cart into a pending order in one transaction and empties
// the cart. The cart row stays locked for the whole transaction, so a repeated
// submit finds the cart empty instead of placing a second order. The cart row
// itself is kept.
func (s *CartService) Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "cart.checkout", "user_id", userID)

	var order *models.Order
	err := s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		cart, err := tx.EnsureCart(ctx, userID)
		if err != nil {
			return err
		}
		if err := tx.LockCart(ctx, cart.ID); err != nil {
			return err
		}
		items, err := tx.GetCartItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("cart is empty: %w", ErrValidation)
		}

		ids := make([]uint, len(items))
		for i, it := range items {
			ids[i] = it.ProductID
		}
		products, err := tx.ProductsByIDs(ctx, ids)
		if err != nil {
			return err
		}

		lines := make([]models.OrderItem, 0, len(items))
		total := decimal.Zero
		for _, it := range items {
			p, ok := products[it.ProductID]
			if !ok {
				return fmt.Errorf("product %d is no longer available: %w", it.ProductID, ErrValidation)
			}
			price := p.EffectivePrice()
			if !price.Valid {
				return fmt.Errorf("product %d has no price: %w", it.ProductID, ErrValidation)
			}
			lineTotal := price.Decimal.Mul(decimal.NewFromInt(int64(it.Quantity)))
			total = total.Add(lineTotal)
			lines = append(lines, models.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Quantity:  it.Quantity,
				Price:     price.Decimal,
				LineTotal: lineTotal,
			})
		}

		order, err = tx.CreateOrder(ctx, &models.Order{
			UserID: userID,
			Total:  total,
			Status: models.OrderStatusPending,
			Items:  lines,
		})
		if err != nil {
			return err
		}
		cleared, err := tx.ClearCart(ctx, cart.ID)
		if err != nil {
			return err
		}
		if cleared != int64(len(items)) {
			return fmt.Errorf("cart changed during checkout: %w", ErrConflict)
		}
		return nil
	})
	if err != nil {
		l.Warn("checkout_failed", "error", err)
		return nil, storeErr("checkout", err)
	}

	publish(ctx, s.Events, events.TopicOrders, strconv.FormatUint(uint64(order.ID), 10), map[string]any{
		"type":    "order_placed",
		"orderID": order.ID,
		"userID":  userID.String(),
		"total":   order.Total.StringFixed(2),
		"items":   len(order.Items),
	})
	return order, nil
}
