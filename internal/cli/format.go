package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/evcraddock/realstate-api/internal/image"
	"github.com/evcraddock/realstate-api/internal/owner"
	"github.com/evcraddock/realstate-api/internal/property"
	"github.com/evcraddock/realstate-api/internal/trace"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printProperty prints a property in text format.
func printProperty(w io.Writer, p *property.Property) {
	fmt.Fprintf(w, "Property %s\n", p.ID)
	fmt.Fprintf(w, "  Name:     %s\n", p.Name)
	fmt.Fprintf(w, "  Address:  %s\n", p.Address)
	fmt.Fprintf(w, "  Price:    $%s\n", formatPrice(p.Price))
	fmt.Fprintf(w, "  Code:     %s\n", p.CodeInternal)
	fmt.Fprintf(w, "  Year:     %d\n", p.Year)
	fmt.Fprintf(w, "  Owner:    %s\n", p.IDOwner)
}

// printImage prints an image record in text format.
func printImage(w io.Writer, img *image.PropertyImage) {
	fmt.Fprintf(w, "Image %s\n", img.ID)
	fmt.Fprintf(w, "  Property: %s\n", img.IDProperty)
	fmt.Fprintf(w, "  File:     %s\n", img.File)
	fmt.Fprintf(w, "  Enabled:  %t\n", img.Enable)
}

// printOwner prints an owner in text format.
func printOwner(w io.Writer, o *owner.Owner) {
	fmt.Fprintf(w, "Owner %s\n", o.ID)
	fmt.Fprintf(w, "  Name:     %s\n", o.Name)
	fmt.Fprintf(w, "  Address:  %s\n", o.Address)
	fmt.Fprintf(w, "  Birthday: %s\n", o.Birthday)
	if o.Photo != nil {
		fmt.Fprintf(w, "  Photo:    %s\n", *o.Photo)
	}
}

// printTrace prints a sale record in text format.
func printTrace(w io.Writer, pt *trace.PropertyTrace) {
	fmt.Fprintf(w, "Sale %s\n", pt.ID)
	fmt.Fprintf(w, "  Property: %s\n", pt.IDProperty)
	fmt.Fprintf(w, "  Name:     %s\n", pt.Name)
	fmt.Fprintf(w, "  Date:     %s\n", pt.DateSale)
	fmt.Fprintf(w, "  Value:    $%s\n", formatPrice(pt.Value))
	fmt.Fprintf(w, "  Tax:      $%s\n", formatPrice(pt.Tax))
}

// formatPrice formats an amount with thousands separators, keeping cents
// only when present.
func formatPrice(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")

	// Add commas
	var parts []string
	for len(whole) > 3 {
		parts = append([]string{whole[len(whole)-3:]}, parts...)
		whole = whole[:len(whole)-3]
	}
	parts = append([]string{whole}, parts...)

	out := strings.Join(parts, ",")
	if frac != "00" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
