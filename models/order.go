package models

import (
	"fmt"
	"sort"
	"strings"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed via checkout
	OrderStatusProcessing OrderStatus = "processing" // accepted by seller
	OrderStatusShipped    OrderStatus = "shipped"    // out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // terminal
	OrderStatusCancelled  OrderStatus = "cancelled"  // terminal
)

// orderTransitions is the forward-only state machine. Terminal states have
// no entry, so nothing leaves delivered or cancelled.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch strings.ToLower(s) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusProcessing):
		return OrderStatusProcessing, nil
	case string(OrderStatusShipped):
		return OrderStatusShipped, nil
	case string(OrderStatusDelivered):
		return OrderStatusDelivered, nil
	case string(OrderStatusCancelled):
		return OrderStatusCancelled, nil
	default:
		return "", fmt.Errorf("invalid order status %q, choose from: pending, processing, shipped, delivered, cancelled", s)
	}
}

// CanTransition reports whether an order may move from one status to
// another under the forward-only machine.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the legal targets from a status, for error messages.
func NextStatuses(from OrderStatus) []string {
	nexts := orderTransitions[from]
	out := make([]string, 0, len(nexts))
	for _, s := range nexts {
		out = append(out, string(s))
	}
	sort.Strings(out)
	return out
}

// Order is immutable after checkout except for Status.
type Order struct {
	Base
	CustomID    string      `gorm:"uniqueIndex" json:"custom_id"`
	UserID      string      `gorm:"size:36;not null;index" json:"user_id"`
	User        *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	Status      OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
}

type OrderItem struct {
	Base
	OrderID         string   `gorm:"size:36;not null;index" json:"order_id"`
	ProductID       string   `gorm:"size:36;not null" json:"product_id"`
	Product         *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity        int      `gorm:"not null" json:"quantity"`
	PriceAtPurchase float64  `gorm:"not null" json:"price_at_purchase"` // snapshot, never recomputed
}
