package models

import "testing"

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("Shipped")
	if err != nil {
		t.Fatalf("ParseOrderStatus: %v", err)
	}
	if status != OrderStatusShipped {
		t.Errorf("expected shipped, got %s", status)
	}

	if _, err := ParseOrderStatus("returned"); err == nil {
		t.Error("expected an error for an unknown status")
	}
}

func TestCanTransition_Forward(t *testing.T) {
	allowed := [][2]OrderStatus{
		{OrderStatusPending, OrderStatusProcessing},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusProcessing, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusDelivered},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Errorf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}
}

func TestCanTransition_BackwardAndTerminal(t *testing.T) {
	rejected := [][2]OrderStatus{
		{OrderStatusProcessing, OrderStatusPending},
		{OrderStatusShipped, OrderStatusProcessing},
		{OrderStatusDelivered, OrderStatusPending},
		{OrderStatusDelivered, OrderStatusShipped},
		{OrderStatusCancelled, OrderStatusPending},
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusCancelled},
	}
	for _, pair := range rejected {
		if CanTransition(pair[0], pair[1]) {
			t.Errorf("expected %s -> %s to be rejected", pair[0], pair[1])
		}
	}
}

func TestNextStatuses_Terminal(t *testing.T) {
	if nexts := NextStatuses(OrderStatusDelivered); len(nexts) != 0 {
		t.Errorf("expected no transitions out of delivered, got %v", nexts)
	}
	if nexts := NextStatuses(OrderStatusPending); len(nexts) != 2 {
		t.Errorf("expected two transitions out of pending, got %v", nexts)
	}
}
