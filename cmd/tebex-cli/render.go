package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ilkoid/tebex-headless/pkg/tebex"
)

// descriptionWidth — ширина переноса описаний пакетов и категорий.
const descriptionWidth = 72

// ===== STYLES =====

// titleStyle возвращает стиль для заголовков.
func titleStyle(str string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")). // Cyan
		Bold(true).
		Render(str)
}

// mutedStyle возвращает стиль для второстепенного текста.
func mutedStyle(str string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("242")). // Серый
		Render(str)
}

// successStyle возвращает стиль для успешных ответов.
func successStyle(str string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")). // Green
		Bold(true).
		Render(str)
}

// errorStyle возвращает стиль для ошибок.
func errorStyle(str string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")). // Red
		Bold(true).
		Render(str)
}

// indent сдвигает каждую строку на два пробела.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

func wrapDescription(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return indent(mutedStyle(wordwrap.String(s, descriptionWidth))) + "\n"
}

// renderJSON — вывод для флага -raw.
func renderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal output: %w", err)
	}
	return string(data) + "\n", nil
}

func renderWebstore(w *tebex.Webstore) string {
	var b strings.Builder
	b.WriteString(titleStyle(w.Name) + " " + mutedStyle(fmt.Sprintf("#%d", w.ID)) + "\n")
	fmt.Fprintf(&b, "  URL:      %s\n", w.WebstoreURL)
	fmt.Fprintf(&b, "  Currency: %s\n", w.Currency)
	fmt.Fprintf(&b, "  Language: %s\n", w.Lang)
	fmt.Fprintf(&b, "  Platform: %s\n", w.PlatformType)
	b.WriteString(wrapDescription(w.Description))
	return b.String()
}

func renderPages(pages []tebex.Page) string {
	var b strings.Builder
	b.WriteString(titleStyle(fmt.Sprintf("Pages (%d)", len(pages))) + "\n")
	for _, p := range pages {
		flags := ""
		if p.Hidden || p.Private || p.Disabled {
			flags = mutedStyle(fmt.Sprintf(" hidden=%t private=%t disabled=%t", p.Hidden, p.Private, p.Disabled))
		}
		fmt.Fprintf(&b, "  #%d %s /%s%s\n", p.ID, p.Title, p.Slug, flags)
	}
	return b.String()
}

func renderCategories(categories []tebex.Category) string {
	var b strings.Builder
	b.WriteString(titleStyle(fmt.Sprintf("Categories (%d)", len(categories))) + "\n")
	for _, c := range categories {
		b.WriteString(renderCategoryLine(c))
	}
	return b.String()
}

func renderCategoryLine(c tebex.Category) string {
	line := fmt.Sprintf("  #%d %s", c.ID, c.Name)
	if c.Parent != nil {
		line += mutedStyle(fmt.Sprintf(" (in %s)", c.Parent.Name))
	}
	if len(c.Packages) > 0 {
		line += mutedStyle(fmt.Sprintf(" [%d packages]", len(c.Packages)))
	}
	return line + "\n"
}

func renderCategory(c *tebex.Category) string {
	var b strings.Builder
	b.WriteString(titleStyle(c.Name) + " " + mutedStyle(fmt.Sprintf("#%d %s", c.ID, c.DisplayType)) + "\n")
	b.WriteString(wrapDescription(c.Description))
	for _, p := range c.Packages {
		b.WriteString(renderPackageLine(p))
	}
	return b.String()
}

func renderPackageLine(p tebex.Package) string {
	return fmt.Sprintf("  #%d %s %s %s\n", p.ID, p.Name, p.TotalPrice.StringFixed(2), p.Currency)
}

func renderPackages(packages []tebex.Package) string {
	var b strings.Builder
	b.WriteString(titleStyle(fmt.Sprintf("Packages (%d)", len(packages))) + "\n")
	for _, p := range packages {
		b.WriteString(renderPackageLine(p))
	}
	return b.String()
}

func renderPackage(p *tebex.Package) string {
	var b strings.Builder
	b.WriteString(titleStyle(p.Name) + " " + mutedStyle(fmt.Sprintf("#%d %s", p.ID, p.Type)) + "\n")
	fmt.Fprintf(&b, "  Category: %s\n", p.Category.Name)
	fmt.Fprintf(&b, "  Price:    %s + %s tax = %s %s\n",
		p.BasePrice.StringFixed(2), p.SalesTax.StringFixed(2), p.TotalPrice.StringFixed(2), p.Currency)
	if !p.Discount.IsZero() {
		fmt.Fprintf(&b, "  Discount: %s\n", p.Discount.StringFixed(2))
	}
	if p.ExpirationDate != nil {
		fmt.Fprintf(&b, "  Expires:  %s\n", *p.ExpirationDate)
	}
	b.WriteString(wrapDescription(p.Description))
	return b.String()
}

func renderBasket(basket *tebex.Basket) string {
	var b strings.Builder
	b.WriteString(titleStyle("Basket "+basket.Ident) + "\n")
	if basket.Username != nil {
		fmt.Fprintf(&b, "  Username: %s\n", *basket.Username)
	}
	fmt.Fprintf(&b, "  Total:    %s %s\n", basket.TotalPrice.StringFixed(2), basket.Currency)
	for _, p := range basket.Packages {
		line := fmt.Sprintf("  #%d %s x%d", p.ID, p.Name, p.InBasket.Quantity)
		if p.InBasket.GiftUsernameID != nil {
			line += mutedStyle(" gift for " + *p.InBasket.GiftUsernameID)
		}
		b.WriteString(line + "\n")
	}
	for _, c := range basket.Coupons {
		fmt.Fprintf(&b, "  Coupon:   %s\n", c.Code)
	}
	for _, g := range basket.GiftCards {
		fmt.Fprintf(&b, "  Giftcard: %s\n", g.CardNumber)
	}
	if basket.CreatorCode != "" {
		fmt.Fprintf(&b, "  Creator:  %s\n", basket.CreatorCode)
	}
	if checkout := basket.CheckoutURL(); checkout != "" {
		fmt.Fprintf(&b, "  Checkout: %s\n", checkout)
	}
	return b.String()
}

func renderMessage(kind tebex.CodeKind, msg *tebex.Message) string {
	prefix := mutedStyle(string(kind) + ": ")
	if msg.Success {
		return prefix + successStyle(msg.Message) + "\n"
	}
	return prefix + errorStyle(msg.Message) + "\n"
}

func renderAuthURLs(urls []tebex.AuthURL) string {
	var b strings.Builder
	b.WriteString(titleStyle("Auth URLs") + "\n")
	for _, u := range urls {
		fmt.Fprintf(&b, "  %s: %s\n", u.Name, u.URL)
	}
	return b.String()
}

// renderError выводит ошибку с классификацией и человекочитаемым сообщением.
func renderError(err error) string {
	errType := tebex.ClassifyError(err)
	return errorStyle("Error ["+errType.String()+"]: ") + err.Error() + "\n" +
		mutedStyle(errType.HumanMessage()) + "\n"
}
