package services

import (
	"fmt"
	"strings"

	"github.com/dineline/dineline-backend/internal/models"
)

// Order flow steps
const (
	orderStepCategory = 2  // pick a menu category
	orderStepItem     = 3  // pick an item in that category
	orderStepQuantity = 4  // how many
	orderStepAddMore  = 5  // loop back to categories or check out
	orderStepType     = 6  // delivery or pickup
	orderStepAddress  = 7  // delivery address (delivery only)
	orderStepName     = 8  // customer name
	orderStepPhone    = 9  // contact number
	orderStepConfirm  = 10 // confirm or cancel
)

// Order flow reply texts
const (
	msgInvalidCategory = "Invalid selection. Please enter a valid category number."
	msgInvalidItem     = "Invalid selection. Please enter a valid item number."
	msgInvalidQuantity = "Please enter a valid quantity (a positive number)."

	msgAddMore         = "Would you like to add more items to your order?\n\nReply with 'yes' to add more items or 'no' to proceed to checkout."
	msgInvalidAddMore  = "Please reply with 'yes' to add more items or 'no' to proceed to checkout."
	msgInvalidType     = "Invalid selection. Please reply with '1' for Delivery or '2' for Pickup."
	msgAskAddress      = "Please provide your delivery address."
	msgEmptyAddress    = "Please provide a valid delivery address."
	msgAskOrderName    = "Please provide your name for the order."
	msgAskPickupName   = "Please provide your name for the pickup order."
	msgEmptyName       = "Please provide a valid name."
	msgAskOrderPhone   = "Please provide your phone number for order updates."
	msgEmptyPhone      = "Please provide a valid phone number."
	msgOrderReconfirm  = "Please reply with 'confirm' to place your order or 'cancel' to start over."
	msgOrderCancelled  = "Your order has been cancelled. Type 'menu' to start over."
)

// handleOrderFlow walks the customer through steps 2-10 of the order
// flow. Invalid input re-prompts without advancing; catalog and
// persistence failures bubble up with the session untouched.
func (c *ConversationService) handleOrderFlow(sess *Session, text string) (string, error) {
	switch sess.Step {

	case orderStepCategory:
		menu, err := c.store.GetMenu(sess.RestaurantID)
		if err != nil {
			return "", err
		}
		idx, ok := parseIndex(text, len(menu))
		if !ok {
			return msgInvalidCategory, nil
		}
		category := menu[idx-1]

		draft := sess.Order
		draft.Category = category.Category
		if draft.Items == nil {
			draft.Items = []models.OrderItem{}
		}
		sess.Order = draft
		sess.Step = orderStepItem
		return categoryItemsMessage(category), nil

	case orderStepItem:
		menu, err := c.store.GetMenu(sess.RestaurantID)
		if err != nil {
			return "", err
		}
		category, found := findCategory(menu, sess.Order.Category)
		if !found {
			return "", fmt.Errorf("category %q no longer on the menu", sess.Order.Category)
		}
		idx, ok := parseIndex(text, len(category.Items))
		if !ok {
			return msgInvalidItem, nil
		}
		item := category.Items[idx-1]

		draft := sess.Order
		draft.Selected = item
		sess.Order = draft
		sess.Step = orderStepQuantity
		return fmt.Sprintf("You selected: %s - $%.2f\n\nHow many would you like to order?", item.Name, item.Price), nil

	case orderStepQuantity:
		quantity, ok := parseQuantity(text)
		if !ok {
			return msgInvalidQuantity, nil
		}

		draft := sess.Order
		draft.Items = append(append([]models.OrderItem{}, draft.Items...), models.OrderItem{
			Name:     draft.Selected.Name,
			Quantity: quantity,
			Price:    draft.Selected.Price,
		})
		draft.Selected = models.MenuItem{}
		sess.Order = draft
		sess.Step = orderStepAddMore
		return msgAddMore, nil

	case orderStepAddMore:
		switch {
		case isYes(text):
			menu, err := c.store.GetMenu(sess.RestaurantID)
			if err != nil {
				return "", err
			}
			sess.Step = orderStepCategory
			return menuCategoriesMessage(menu), nil

		case isNo(text):
			draft := sess.Order
			draft.Total = orderTotal(draft.Items)
			sess.Order = draft
			sess.Step = orderStepType
			return orderSummaryMessage(draft), nil

		default:
			return msgInvalidAddMore, nil
		}

	case orderStepType:
		switch normalize(text) {
		case "1", "delivery":
			draft := sess.Order
			draft.OrderType = models.OrderTypeDelivery
			sess.Order = draft
			sess.Step = orderStepAddress
			return msgAskAddress, nil

		case "2", "pickup":
			draft := sess.Order
			draft.OrderType = models.OrderTypePickup
			sess.Order = draft
			sess.Step = orderStepName
			return msgAskPickupName, nil

		default:
			return msgInvalidType, nil
		}

	case orderStepAddress:
		address, ok := nonEmpty(text)
		if !ok {
			return msgEmptyAddress, nil
		}
		draft := sess.Order
		draft.Address = address
		sess.Order = draft
		sess.Step = orderStepName
		return msgAskOrderName, nil

	case orderStepName:
		name, ok := nonEmpty(text)
		if !ok {
			return msgEmptyName, nil
		}
		draft := sess.Order
		draft.Name = name
		sess.Order = draft
		sess.Step = orderStepPhone
		return msgAskOrderPhone, nil

	case orderStepPhone:
		phone, ok := nonEmpty(text)
		if !ok {
			return msgEmptyPhone, nil
		}
		draft := sess.Order
		draft.Phone = phone
		sess.Order = draft
		sess.Step = orderStepConfirm
		return orderConfirmationMessage(draft), nil

	case orderStepConfirm:
		switch {
		case isConfirm(text):
			order, err := c.store.CreateOrder(&models.Order{
				RestaurantID: sess.RestaurantID,
				Customer: models.Customer{
					Name:    sess.Order.Name,
					Phone:   sess.Order.Phone,
					Address: sess.Order.Address,
				},
				Items:     sess.Order.Items,
				OrderType: sess.Order.OrderType,
				Total:     sess.Order.Total,
				Status:    models.OrderStatusNew,
			})
			if err != nil {
				return "", err
			}
			sess.ended = true
			return fmt.Sprintf("✅ Your order has been confirmed! Order #%s\n\nYou will receive updates on your order status. Thank you for ordering with us!", order.Reference()), nil

		case isCancel(text):
			sess.ended = true
			return msgOrderCancelled, nil

		default:
			return msgOrderReconfirm, nil
		}
	}

	return msgFallback, nil
}

// findCategory looks a category up by name
func findCategory(menu []models.MenuCategory, name string) (models.MenuCategory, bool) {
	for _, cat := range menu {
		if cat.Category == name {
			return cat, true
		}
	}
	return models.MenuCategory{}, false
}

// orderTotal sums price times quantity over the collected items
func orderTotal(items []models.OrderItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// categoryItemsMessage lists one category's items with prices
func categoryItemsMessage(category models.MenuCategory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ *%s Menu*\n\n", category.Category)
	for i, item := range category.Items {
		fmt.Fprintf(&b, "%d. %s - $%.2f\n", i+1, item.Name, item.Price)
	}
	b.WriteString("\nPlease reply with the number of the item you'd like to order.")
	return b.String()
}

// orderSummaryMessage itemizes the draft and asks for the order type
func orderSummaryMessage(draft OrderDraft) string {
	var b strings.Builder
	b.WriteString("🧾 *Order Summary*\n\n")
	for i, item := range draft.Items {
		fmt.Fprintf(&b, "%d. %s x%d - $%.2f\n", i+1, item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\n*Total: $%.2f*\n\nPlease select your order type:\n1. Delivery\n2. Pickup", draft.Total)
	return b.String()
}

// orderConfirmationMessage renders the full order for final approval
func orderConfirmationMessage(draft OrderDraft) string {
	var b strings.Builder
	b.WriteString("📝 *Order Confirmation*\n\n")
	fmt.Fprintf(&b, "Name: %s\n", draft.Name)
	fmt.Fprintf(&b, "Phone: %s\n", draft.Phone)
	if draft.OrderType == models.OrderTypeDelivery {
		fmt.Fprintf(&b, "Address: %s\n", draft.Address)
	}
	orderType := "Pickup"
	if draft.OrderType == models.OrderTypeDelivery {
		orderType = "Delivery"
	}
	fmt.Fprintf(&b, "Order Type: %s\n\n", orderType)
	for i, item := range draft.Items {
		fmt.Fprintf(&b, "%d. %s x%d - $%.2f\n", i+1, item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\n*Total: $%.2f*\n\nPlease confirm your order by replying with 'confirm' or 'cancel' to start over.", draft.Total)
	return b.String()
}
