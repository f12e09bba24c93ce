package domain

import "github.com/shopspring/decimal"

// ItemSummary describes one banner line for the business mailbox.
type ItemSummary struct {
	WidthCm    int
	HeightCm   int
	Material   string
	Grommets   bool
	Lamination bool
	Price      decimal.Decimal
}

// OrderSummary carries everything the message body needs about a
// committed order.
type OrderSummary struct {
	OrderID       string
	CustomerName  string
	CustomerEmail string
	ContactNumber string
	TotalPrice    decimal.Decimal
	Items         []ItemSummary
}

// Attachment is one customer design file, already buffered. Attachments
// are matched to items by original submission order.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// OrderNotification is the unit of dispatch.
type OrderNotification struct {
	Summary     OrderSummary
	Attachments []Attachment
}
