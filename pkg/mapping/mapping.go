package mapping

import (
	"github.com/festhq/gatekeeper/pkg/api"
	"github.com/festhq/gatekeeper/pkg/models"
)

// ToApiOrder converts a domain Order model to an API Order model.
func ToApiOrder(order *models.Order) *api.Order {
	items := make([]api.OrderItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = api.OrderItem{
			TicketTypeId: item.TicketTypeId,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
		}
	}
	return &api.Order{
		Id:            order.Id,
		EventId:       order.EventId,
		BuyerId:       order.BuyerId,
		Items:         items,
		Subtotal:      order.Subtotal,
		Fees:          order.Fees,
		Total:         order.Total,
		Status:        string(order.Status),
		Method:        string(order.Method),
		ReservedUntil: order.ReservedUntil,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

// ToDomainNewOrder converts a reservation request into an unpriced domain
// Order. Prices, totals, status and the hold deadline are filled in by the
// storage layer.
func ToDomainNewOrder(req *api.NewReservation, buyerID string) *models.Order {
	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.OrderItem{
			TicketTypeId: item.TicketTypeId.String(),
			Quantity:     item.Quantity,
		}
	}
	order := &models.Order{
		EventId: req.EventId.String(),
		BuyerId: buyerID,
		Items:   items,
		Method:  models.PAY_GATEWAY,
	}
	if req.Method != nil {
		order.Method = models.PaymentMethod(*req.Method)
	}
	if req.AccountId != nil {
		order.AccountId = req.AccountId.String()
	}
	return order
}

// ToApiTicket converts a domain Ticket to its API view. The credential is
// stripped unless the requester owns the ticket.
func ToApiTicket(ticket *models.Ticket, includeCredential bool) *api.Ticket {
	t := &api.Ticket{
		Id:         ticket.Id,
		OrderId:    ticket.OrderId,
		EventId:    ticket.EventId,
		OwnerId:    ticket.OwnerId,
		Status:     string(ticket.Status),
		Gate:       ticket.Gate,
		RedeemedAt: ticket.RedeemedAt,
	}
	if includeCredential {
		t.Credential = ticket.Credential
	}
	return t
}

// ToApiAccount converts a domain Account model to an API Account model.
func ToApiAccount(account *models.Account) *api.Account {
	return &api.Account{
		Id:        account.Id,
		OwnerId:   account.OwnerId,
		Kind:      string(account.Kind),
		Balance:   account.Balance,
		Status:    string(account.Status),
		CreatedAt: account.CreatedAt,
	}
}

// ToDomainNewAccount converts an API NewAccount model to a domain Account model.
func ToDomainNewAccount(req *api.NewAccount) *models.Account {
	return &models.Account{
		OwnerId: req.OwnerId,
		Kind:    models.AccountKind(req.Kind),
		Status:  models.ACCOUNT_ACTIVE,
	}
}

// ToApiLedgerEntry converts a domain LedgerEntry model to an API LedgerEntry model.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	return &api.LedgerEntry{
		EntryId:        entry.EntryId,
		AccountId:      entry.AccountId,
		Type:           string(entry.Type),
		Amount:         entry.Amount,
		BalanceAfter:   entry.BalanceAfter,
		RelatedOrderId: entry.RelatedOrderId,
		Description:    entry.Description,
		CreatedAt:      entry.CreatedAt,
	}
}

// ToApiEvent converts a domain Event model to an API Event model.
func ToApiEvent(event *models.Event) *api.Event {
	return &api.Event{
		Id:             event.Id,
		Name:           event.Name,
		Published:      event.Published,
		StartsAt:       event.StartsAt,
		AllowLateEntry: event.AllowLateEntry,
	}
}

// ToDomainNewEvent converts an API NewEvent model to a domain Event model.
func ToDomainNewEvent(req *api.NewEvent) *models.Event {
	return &models.Event{
		Name:           req.Name,
		Published:      req.Published,
		StartsAt:       req.StartsAt,
		AllowLateEntry: req.AllowLateEntry,
	}
}

// ToApiTicketType converts a domain TicketType model to an API TicketType model.
func ToApiTicketType(tt *models.TicketType) *api.TicketType {
	return &api.TicketType{
		Id:          tt.Id,
		EventId:     tt.EventId,
		Name:        tt.Name,
		Price:       tt.Price,
		Total:       tt.Total,
		Sold:        tt.Sold,
		Reserved:    tt.Reserved,
		Available:   tt.Available(),
		MaxPerOrder: tt.MaxPerOrder,
		SaleStart:   tt.SaleStart,
		SaleEnd:     tt.SaleEnd,
	}
}

// ToDomainNewTicketType converts an API NewTicketType model to a domain
// TicketType model.
func ToDomainNewTicketType(req *api.NewTicketType) *models.TicketType {
	return &models.TicketType{
		EventId:     req.EventId.String(),
		Name:        req.Name,
		Price:       req.Price,
		Total:       req.Total,
		MaxPerOrder: req.MaxPerOrder,
		SaleStart:   req.SaleStart,
		SaleEnd:     req.SaleEnd,
	}
}
