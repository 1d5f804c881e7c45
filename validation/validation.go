// Package validation contains the pure field and draft checks shared by
// the conversation flow and any batch import path. Functions return a
// normalized value plus a reason string; an empty reason means valid.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"uykelishuv_bot/database"
	"uykelishuv_bot/regions"
)

const (
	MinPrice = 0.01
	MaxPrice = 1_000_000.0

	MinTitleLen       = 5
	MaxTitleLen       = 255
	MaxDescriptionLen = 2000

	MinRooms = 1
	MaxRooms = 10
)

const priceFormatHint = "Noto'g'ri narx format!\n\nTo'g'ri formatlar:\n• 100-500 (oralik)\n• 500+ (500 dan yuqori)\n• 500 (aniq narx)"

// Price parses a positive decimal within [MinPrice, MaxPrice].
// Non-numeric input and out-of-range values get distinct reasons.
func Price(text string) (float64, string) {
	price, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, "Noto'g'ri narx format!\n\nFaqat raqam kiriting (masalan: 500)"
	}
	if price < MinPrice {
		return 0, fmt.Sprintf("Narx %v dan kam bo'lmasligi kerak", MinPrice)
	}
	if price > MaxPrice {
		return 0, fmt.Sprintf("Narx %v dan ko'p bo'lmasligi kerak", MaxPrice)
	}
	return price, ""
}

// PriceRange holds a parsed price constraint. A nil Max means the bound
// is open-ended.
type PriceRange struct {
	Min *float64
	Max *float64
}

// PriceRangeText parses the three accepted grammars: "A-B" (range, A<B),
// "A+" (open upper bound) and "A" (exact, both bounds A).
func PriceRangeText(text string) (PriceRange, string) {
	text = strings.TrimSpace(text)

	switch {
	case strings.Contains(text, "-"):
		parts := strings.SplitN(text, "-", 3)
		if len(parts) != 2 {
			return PriceRange{}, "Noto'g'ri narx oralig'i format"
		}
		min, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		max, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return PriceRange{}, priceFormatHint
		}
		if min >= max {
			return PriceRange{}, "Minimal narx maksimal narxdan kam bo'lishi kerak"
		}
		if min < MinPrice || max > MaxPrice {
			return PriceRange{}, fmt.Sprintf("Narx %v dan %v gacha bo'lishi kerak", MinPrice, MaxPrice)
		}
		return PriceRange{Min: &min, Max: &max}, ""

	case strings.HasSuffix(text, "+"):
		min, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(text, "+")), 64)
		if err != nil {
			return PriceRange{}, priceFormatHint
		}
		if min < MinPrice {
			return PriceRange{}, fmt.Sprintf("Narx %v dan kam bo'lmasligi kerak", MinPrice)
		}
		return PriceRange{Min: &min}, ""

	default:
		price, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return PriceRange{}, priceFormatHint
		}
		if price < MinPrice || price > MaxPrice {
			return PriceRange{}, fmt.Sprintf("Narx %v dan %v gacha bo'lishi kerak", MinPrice, MaxPrice)
		}
		return PriceRange{Min: &price, Max: &price}, ""
	}
}

// Title trims and checks length bounds.
func Title(text string) (string, string) {
	title := strings.TrimSpace(text)
	if title == "" {
		return "", "Sarlavha bo'sh bo'lmasligi kerak"
	}
	if n := len([]rune(title)); n < MinTitleLen {
		return "", fmt.Sprintf("Sarlavha kamida %d ta belgi bo'lishi kerak", MinTitleLen)
	} else if n > MaxTitleLen {
		return "", fmt.Sprintf("Sarlavha maksimum %d ta belgi bo'lishi kerak", MaxTitleLen)
	}
	return title, ""
}

// Description is optional; empty input is valid and normalizes to "".
func Description(text string) (string, string) {
	desc := strings.TrimSpace(text)
	if len([]rune(desc)) > MaxDescriptionLen {
		return "", fmt.Sprintf("Tavsif maksimum %d ta belgi bo'lishi kerak", MaxDescriptionLen)
	}
	return desc, ""
}

func Rooms(rooms int) string {
	if rooms < MinRooms || rooms > MaxRooms {
		return fmt.Sprintf("Xonalar soni %d dan %d gacha bo'lishi kerak", MinRooms, MaxRooms)
	}
	return ""
}

func RegionCode(code string) string {
	if !regions.Valid(code) {
		return "Noto'g'ri viloyat kodi"
	}
	return ""
}

// Draft is the composite whole-record check run before a create. It
// short-circuits on the first failure.
func Draft(d database.ListingDraft) string {
	switch {
	case d.RegionCode == "":
		return "Kerakli maydon topilmadi: region_code"
	case d.CityName == "":
		return "Kerakli maydon topilmadi: city_name"
	case d.Type == "":
		return "Kerakli maydon topilmadi: type"
	case d.Rooms == 0:
		return "Kerakli maydon topilmadi: rooms"
	case d.Price == 0:
		return "Kerakli maydon topilmadi: price"
	case d.Title == "":
		return "Kerakli maydon topilmadi: title"
	}

	if reason := RegionCode(d.RegionCode); reason != "" {
		return reason
	}
	if reason := Rooms(d.Rooms); reason != "" {
		return reason
	}
	if _, reason := Price(strconv.FormatFloat(d.Price, 'f', -1, 64)); reason != "" {
		return reason
	}
	if _, reason := Title(d.Title); reason != "" {
		return reason
	}
	if d.Description != nil {
		if _, reason := Description(*d.Description); reason != "" {
			return reason
		}
	}
	return ""
}
