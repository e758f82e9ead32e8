package notification

import (
	"fmt"
	"html"
	"strings"

	"bakehub/internal/domain/model"
)

func itemsHTML(items []model.OrderItem) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "<li>%s x %d = %s</li>", html.EscapeString(it.Name), it.Qty, it.Subtotal().StringFixed(2))
	}
	return b.String()
}

func OrderPlacedCustomer(to string, customerName string, bakeryName string, o model.Order) Message {
	return Message{
		To:      to,
		Subject: "BakeHub: your order is confirmed",
		HTML: fmt.Sprintf(
			"<h2>Hello %s,</h2><p>Your order has been placed.</p><ul>%s</ul><p><strong>Total:</strong> %s</p><p><strong>Delivery address:</strong> %s</p><p>Thank you for ordering from <strong>%s</strong>.</p>",
			html.EscapeString(customerName), itemsHTML(o.Items), o.Total.StringFixed(2), html.EscapeString(o.Address), html.EscapeString(bakeryName),
		),
	}
}

func OrderPlacedOwner(to string, customerName string, o model.Order) Message {
	return Message{
		To:      to,
		Subject: "BakeHub: new order received",
		HTML: fmt.Sprintf(
			"<h2>New order from %s</h2><ul>%s</ul><p><strong>Total:</strong> %s</p><p><strong>Delivery address:</strong> %s</p><p>Please update the order status in your dashboard.</p>",
			html.EscapeString(customerName), itemsHTML(o.Items), o.Total.StringFixed(2), html.EscapeString(o.Address),
		),
	}
}

func RegisterOTP(to string, code string) Message {
	return Message{
		To:      to,
		Subject: "BakeHub: your verification code",
		HTML:    fmt.Sprintf("<p>Your BakeHub verification code is <strong>%s</strong>.</p><p>It expires in 5 minutes.</p>", code),
	}
}

func PasswordReset(to string, link string) Message {
	return Message{
		To:      to,
		Subject: "BakeHub: reset your password",
		HTML:    fmt.Sprintf("<p>Click the link below to reset your password. It is valid for 1 hour.</p><p><a href=\"%s\">%s</a></p>", html.EscapeString(link), html.EscapeString(link)),
	}
}

func MessageReply(to string, name string, original string, reply string) Message {
	return Message{
		To:      to,
		Subject: "BakeHub support: reply to your message",
		HTML: fmt.Sprintf(
			"<p>Hello %s,</p><p>%s</p><hr><p><em>Your message:</em></p><blockquote>%s</blockquote>",
			html.EscapeString(name), html.EscapeString(reply), html.EscapeString(original),
		),
	}
}
