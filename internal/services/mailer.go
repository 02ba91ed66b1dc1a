package services

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/example/ozme/internal/config"
	"github.com/example/ozme/internal/models"
)

// SMTPMailer sends transactional email over SMTP.
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// NewSMTPMailer creates a mailer from configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.EmailFrom,
	}
}

func (m *SMTPMailer) configured() bool {
	return m.host != "" && m.user != "" && m.password != ""
}

// SendOrderConfirmation emails the customer an order summary.
func (m *SMTPMailer) SendOrderConfirmation(order *models.Order, user *models.User) error {
	if !m.configured() {
		log.Println("[Mail] SMTP not configured, skipping order confirmation")
		return nil
	}
	if user.Email == "" {
		return fmt.Errorf("user %s has no email address", user.ID)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "OZME Support")
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmed - %s", order.OrderNumber))
	msg.SetBody("text/html", orderConfirmationBody(order, user))

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}

	log.Printf("[Mail] order confirmation sent for %s to %s", order.OrderNumber, user.Email)
	return nil
}

func orderConfirmationBody(order *models.Order, user *models.User) string {
	var b strings.Builder

	name := user.Name
	if name == "" {
		name = order.ShippingAddress.Name
	}

	fmt.Fprintf(&b, "<h2>Thank you for your order, %s!</h2>", name)
	fmt.Fprintf(&b, "<p>Your order <b>%s</b> has been placed successfully.</p>", order.OrderNumber)

	b.WriteString("<table border=\"0\" cellpadding=\"4\"><tr><th align=\"left\">Item</th><th>Qty</th><th align=\"right\">Price</th></tr>")
	for _, item := range order.Items {
		itemName := item.Size
		if item.Product != nil {
			itemName = fmt.Sprintf("%s (%s)", item.Product.Name, item.Size)
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td align=\"center\">%d</td><td align=\"right\">%s</td></tr>",
			itemName, item.Quantity, FormatAmount(item.Price*float64(item.Quantity)))
	}
	b.WriteString("</table>")

	if order.DiscountAmount > 0 {
		fmt.Fprintf(&b, "<p>Discount: -%s</p>", FormatAmount(order.DiscountAmount))
	}
	fmt.Fprintf(&b, "<p><b>Total: %s</b></p>", FormatAmount(order.TotalAmount))
	fmt.Fprintf(&b, "<p>Payment: %s &middot; Status: %s</p>", order.PaymentMethod, order.OrderStatus)

	addr := order.ShippingAddress
	fmt.Fprintf(&b, "<p>Shipping to:<br>%s<br>%s<br>%s, %s %s<br>%s</p>",
		addr.Name, addr.Address, addr.City, addr.State, addr.Pincode, addr.Country)

	return b.String()
}

// FormatAmount renders a rupee amount with thousand separators.
func FormatAmount(amount float64) string {
	intPart := int64(amount)
	str := fmt.Sprintf("%d", intPart)

	var result strings.Builder
	length := len(str)
	for i, digit := range str {
		if i > 0 && (length-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}

	return fmt.Sprintf("₹%s.%02d", result.String(), int64(amount*100)%100)
}
