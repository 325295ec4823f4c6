// Package invoice renders order invoices as PDF documents.
package invoice

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Item is a single invoice line.
type Item struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// ShopInfo is the letterhead printed on every invoice.
type ShopInfo struct {
	Name     string
	Address1 string
	Address2 string
	Phone    string
}

// Order is everything the renderer needs for one invoice.
type Order struct {
	ID        string
	Timestamp string
	Items     []Item
	Subtotal  float64
	Shop      ShopInfo
}

// FormatINR formats an amount with Indian 2,2,3 digit grouping, e.g.
// 1234567.5 -> "Rs. 12,34,567.50". Whole amounts drop the paise part.
func FormatINR(v float64) string {
	neg := v < 0
	v = math.Abs(v)
	rupees := int64(v)
	paise := int64(math.Round((v - float64(rupees)) * 100))
	if paise == 100 {
		rupees++
		paise = 0
	}

	s := fmt.Sprintf("%d", rupees)
	var parts []string
	if len(s) > 3 {
		parts = append(parts, s[len(s)-3:])
		s = s[:len(s)-3]
		for len(s) > 2 {
			parts = append(parts, s[len(s)-2:])
			s = s[:len(s)-2]
		}
	}
	parts = append(parts, s)
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	out := "Rs. " + strings.Join(parts, ",")
	if paise > 0 {
		out += fmt.Sprintf(".%02d", paise)
	}
	if neg {
		return "-" + out
	}
	return out
}

// Render writes the invoice PDF for an order.
func Render(w io.Writer, o Order) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 10, o.Shop.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{o.Shop.Address1, o.Shop.Address2, "Phone: " + o.Shop.Phone} {
		pdf.CellFormat(0, 5, line, "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)
	pageW, _ := pdf.GetPageSize()
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Order Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Order ID : "+o.ID, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date     : "+o.Timestamp, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "BU", 12)
	pdf.CellFormat(0, 6, "Items:", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	for i, item := range o.Items {
		line := fmt.Sprintf("%d. %s  -  %s x %d  =  %s",
			i+1, item.Title, FormatINR(item.Price), item.Qty, FormatINR(item.Price*float64(item.Qty)))
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Subtotal: "+FormatINR(o.Subtotal), "", 1, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Thank you for shopping with "+o.Shop.Name+".", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "For any support, please contact: "+o.Shop.Phone, "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
