package finance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	appErrors "github.com/Egor603/curswork1/errors"
)

// TransfersCategory is the category reserved for person-to-person transfers.
const TransfersCategory = "Переводы"

var (
	// A Russian phone number inside a description: +7/8 prefix, then a
	// 10-digit subscriber number with optional spaces, hyphens or parens,
	// e.g. "+7 999 123-45-67".
	phoneRegex = regexp.MustCompile(`(\+7|8)[\s\-(]*\d{3}[\s\-)]*\d{3}[\s\-]*\d{2}[\s\-]*\d{2}`)

	// A personal name: capitalized surname plus one or more single-letter
	// initials with periods ("Иванов И.", "Петров П. С."). Single words
	// such as organization names do not match.
	personRegex = regexp.MustCompile(`^[А-ЯЁA-Z][а-яёa-z]+(\s[А-ЯЁA-Z]\.)+$`)

	monthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// SimpleSearch returns a pretty-printed JSON array of the transactions whose
// description or category contains query, case-insensitively. No matches
// yield the literal "[]".
func SimpleSearch(query string, transactions []Transaction) (string, error) {
	loweredQuery := strings.ToLower(query)

	matched := []Transaction{}
	for _, t := range transactions {
		if strings.Contains(strings.ToLower(t.Description), loweredQuery) ||
			strings.Contains(strings.ToLower(t.Category), loweredQuery) {
			matched = append(matched, t)
		}
	}
	return renderTransactions(matched)
}

// PhoneSearch returns the transactions whose description contains a phone
// number, as pretty-printed JSON.
func PhoneSearch(transactions []Transaction) (string, error) {
	matched := []Transaction{}
	for _, t := range transactions {
		if phoneRegex.MatchString(t.Description) {
			matched = append(matched, t)
		}
	}
	return renderTransactions(matched)
}

// PeopleTransferSearch returns the transactions that are transfers to a
// person: the category is the transfers category and the description looks
// like "Surname I.". Transfers to organizations stay out.
func PeopleTransferSearch(transactions []Transaction) (string, error) {
	matched := []Transaction{}
	for _, t := range transactions {
		if strings.EqualFold(t.Category, TransfersCategory) &&
			personRegex.MatchString(t.Description) {
			matched = append(matched, t)
		}
	}
	return renderTransactions(matched)
}

// renderTransactions serializes matches for direct display. HTML escaping
// is off so "+7" and Cyrillic text survive verbatim.
func renderTransactions(matched []Transaction) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(matched); err != nil {
		return "", fmt.Errorf("failed to serialize transactions: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// InvestmentBank computes the total spare change for the given month if
// every spending in it were rounded up to the next multiple of limit.
// limit must be 10, 50 or 100; month must look like "2024-05".
func InvestmentBank(month string, transactions []Transaction, limit int) (float64, error) {
	if !monthRegex.MatchString(month) {
		return 0, fmt.Errorf("%w: month must be in 'YYYY-MM' format, got: %q", appErrors.ErrInvalidInput, month)
	}
	if limit != 10 && limit != 50 && limit != 100 {
		return 0, fmt.Errorf("%w: limit must be 10, 50 or 100, got: %d", appErrors.ErrInvalidInput, limit)
	}

	limitFloat := float64(limit)
	var total float64
	for _, t := range transactions {
		if !strings.HasPrefix(t.Date, month) {
			continue
		}
		// Refunds and zero amounts leave no spare change.
		if t.Amount <= 0 {
			continue
		}
		roundedUp := math.Ceil(t.Amount/limitFloat) * limitFloat
		total += roundedUp - t.Amount
	}

	// Keep kopecks exact: the sum is money, not raw float noise.
	return math.Round(total*100) / 100, nil
}
